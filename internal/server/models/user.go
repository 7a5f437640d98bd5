// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account that owns job records.
type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
