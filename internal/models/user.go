package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can obtain a bearer token.
type User struct {
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	ID           uuid.UUID `db:"id" json:"id"`
	IsStaff      bool      `db:"is_staff" json:"is_staff"`
}
