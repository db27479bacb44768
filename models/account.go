package models

import "time"

type Account struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // Plaintext by design of the original system; never exposed in API responses.
}
