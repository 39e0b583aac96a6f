package activitylog

import "time"

// Entry is one recorded user action. Entries are append-only.
type Entry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ListFilter struct {
	UserID *int64
	Action string
	Limit  int
	Page   int
}
