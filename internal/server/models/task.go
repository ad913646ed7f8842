package models

import "time"

// Task is a todo item owned by exactly one user. UserID is set at creation
// and never changes; every mutation refreshes UpdatedAt.
type Task struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
