package models

import "time"

// User is an account of the meal planner. Salt and Verifier come from the
// password-derived key; the plaintext password is never stored.
type User struct {
	ID        string
	UserName  string
	Salt      []byte
	Verifier  []byte
	MealTimes MealTimes
	CreatedAt time.Time
}
