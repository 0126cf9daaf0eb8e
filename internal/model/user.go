package model

import "strings"

// swagger:model User
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// UserInfo is the public part of a user returned to clients.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u *User) Info() UserInfo {
	return UserInfo{ID: u.ID, Email: u.Email}
}

// CanonicalEmail trims and lower-cases an address so that lookups are case-insensitive.
func CanonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
