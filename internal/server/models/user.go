package models

import "time"

// User is an account record. PasswordHash is a salted bcrypt hash and is
// never serialized.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
