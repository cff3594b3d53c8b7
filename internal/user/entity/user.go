package entity

import "time"

// User represents an account row in the `users` table. Reservations
// reference it but never own it.
type User struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	MobileNumber string    `db:"mobile_number"`
	PasswordHash string    `db:"password_hash"`
	PasswordAlgo string    `db:"password_algo"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Contact is the projection the identity middleware needs.
type Contact struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	MobileNumber string `db:"mobile_number"`
}
