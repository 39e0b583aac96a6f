package comment

import "time"

// Comment is a product review left by a customer. Username and
// UserEmail are joined from users on read; they are never stored here.
type Comment struct {
	ID        int64      `json:"id"`
	ProductID int64      `json:"product_id"`
	UserID    int64      `json:"user_id"`
	Username  string     `json:"username"`
	UserEmail string     `json:"user_email"`
	Rating    int        `json:"rating"`
	Body      string     `json:"comment"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Filled only on admin listings.
	ProductName string `json:"product_name,omitempty"`
}

type NewCommentInput struct {
	Rating int    `json:"rating"`
	Body   string `json:"comment"`
}

type ListFilter struct {
	ProductID *int64
	Limit     int
	Skip      int
}
