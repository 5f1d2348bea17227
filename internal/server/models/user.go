// Package models holds the server-side domain records.
package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and must never
// leave the server.
type User struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
