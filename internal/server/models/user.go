// Package models holds the records shared by the repositories and services.
package models

// User is a registered identity. ID is assigned by the store on creation.
// PasswordHash never holds the raw password.
type User struct {
	ID           int64  `db:"id" json:"user_id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	Email        string `db:"email" json:"email"`
	Verified     bool   `db:"verify_status" json:"verify_status"`
}

// UserProfile is what the fetch-current-user operation reports.
type UserProfile struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}
