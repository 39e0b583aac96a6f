package comment

import "errors"

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidComment  = errors.New("invalid comment input")
	ErrNotCommentOwner = errors.New("not the comment owner")
)
