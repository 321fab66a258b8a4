package models

import "time"

// User is an account in the credentials table.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Session is an authenticated session resolved from the cookie token.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired checks if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// DashboardStats are the counters shown on the dashboard landing page.
type DashboardStats struct {
	ProductCount   int `json:"productCount"`
	CustomerCount  int `json:"customerCount"`
	OpenOrderCount int `json:"openOrderCount"`
	OpenTaskCount  int `json:"openTaskCount"`
	NoteCount      int `json:"noteCount"`
}
