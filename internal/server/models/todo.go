package models

import "time"

// Todo is a single todo item owned by one user.
type Todo struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoUpdate carries a partial update: nil fields are left unchanged.
type TodoUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}
