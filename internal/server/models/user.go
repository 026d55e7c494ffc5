// Package models defines the persistent entities of the todo service.
package models

import "time"

// User is a registered account. Username is the token subject and is unique.
// Only the argon2id hash of the password is ever stored.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
