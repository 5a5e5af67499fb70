package models

import "time"

// User represents a registered account.
//
// PasswordHash carries the bcrypt hash of the user's password. It is never
// serialized; every handler path that returns a User relies on the json:"-"
// tag to keep the hash out of responses.
type User struct {
	UID          string    `gorm:"primaryKey" json:"uid"`
	FirstName    string    `gorm:"index" json:"first_name"`
	LastName     string    `gorm:"index" json:"last_name"`
	PhoneNumber  string    `json:"phone_number"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
