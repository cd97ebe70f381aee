package domain

import (
	"errors"
	"time"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Task is the core aggregate. OwnerID is set at creation and never
// reassigned; every read or mutation must be scoped to the owner by the
// caller — the repository itself looks up purely by id.
//
// JSON field names follow the wire contract the browser client expects.
type Task struct {
	ID          string    `json:"_id"`
	OwnerID     string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
