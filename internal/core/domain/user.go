package domain

import "time"

// User models a registered account. The bcrypt hash must never reach a
// client; the json:"-" tag keeps it out of every serialized response.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
