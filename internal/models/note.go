package models

import "time"

// Note is a customer note. CustomerName falls back to "Onbekende Klant" when
// the linked customer no longer resolves.
type Note struct {
	ID           string       `json:"id" db:"id"`
	CustomerID   string       `json:"customer_id" db:"customer_id"`
	NoteTitle    string       `json:"note_title" db:"note_title"`
	NoteText     string       `json:"note_text" db:"note_text"`
	Location     *string      `json:"location" db:"location"`
	UserID       string       `json:"user_id" db:"user_id"`
	Customer     *CustomerRef `json:"customer,omitempty"`
	CustomerName string       `json:"customer_name,omitempty"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

// NewNote is the payload for creating a note on a customer.
type NewNote struct {
	NoteTitle string  `json:"note_title"`
	NoteText  string  `json:"note_text"`
	Location  *string `json:"location"`
	UserID    string  `json:"user_id"`
}
