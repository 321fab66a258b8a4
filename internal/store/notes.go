package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"backoffice/internal/models"

	"github.com/google/uuid"
)

// unknownCustomerName is the display fallback when a note's customer no
// longer resolves.
const unknownCustomerName = "Onbekende Klant"

// ListNotes returns all notes, newest first, joined with their customer and
// carrying the company-or-name display fallback.
func (s *Store) ListNotes(ctx context.Context) ([]*models.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT n.id, n.customer_id, n.note_title, n.note_text, n.location,
		       n.user_id, n.created_at, c.id, c.name, c.company
		FROM customer_notes n
		LEFT JOIN customers c ON c.id = n.customer_id
		ORDER BY n.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []*models.Note{}
	for rows.Next() {
		var n models.Note
		var custID, custName, custCompany sql.NullString
		err := rows.Scan(&n.ID, &n.CustomerID, &n.NoteTitle, &n.NoteText,
			&n.Location, &n.UserID, &n.CreatedAt, &custID, &custName, &custCompany)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		switch {
		case custCompany.Valid && custCompany.String != "":
			n.CustomerName = custCompany.String
		case custName.Valid && custName.String != "":
			n.CustomerName = custName.String
		default:
			n.CustomerName = unknownCustomerName
		}
		if custID.Valid {
			ref := &models.CustomerRef{ID: custID.String, Name: custName.String}
			if custCompany.Valid {
				company := custCompany.String
				ref.Company = &company
			}
			n.Customer = ref
		}
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}

// ListCustomerNotes returns one customer's notes, newest first.
func (s *Store) ListCustomerNotes(ctx context.Context, customerID string) ([]*models.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, customer_id, note_title, note_text, location, user_id, created_at
		FROM customer_notes
		WHERE customer_id = $1
		ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer notes: %w", err)
	}
	defer rows.Close()

	notes := []*models.Note{}
	for rows.Next() {
		var n models.Note
		err := rows.Scan(&n.ID, &n.CustomerID, &n.NoteTitle, &n.NoteText,
			&n.Location, &n.UserID, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}

// CreateNote inserts a note on a customer and returns the stored record.
func (s *Store) CreateNote(ctx context.Context, customerID string, n *models.NewNote) (*models.Note, error) {
	id := uuid.New().String()
	var note models.Note
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO customer_notes (id, customer_id, note_title, note_text, location, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, customer_id, note_title, note_text, location, user_id, created_at`,
		id, customerID, n.NoteTitle, n.NoteText, n.Location, n.UserID, time.Now().UTC()).
		Scan(&note.ID, &note.CustomerID, &note.NoteTitle, &note.NoteText,
			&note.Location, &note.UserID, &note.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return &note, nil
}

// UpdateNote overwrites a note's title, text and location.
func (s *Store) UpdateNote(ctx context.Context, customerID, noteID string, n *models.NewNote) (*models.Note, error) {
	var note models.Note
	err := s.db.QueryRowContext(ctx, `
		UPDATE customer_notes SET note_title = $3, note_text = $4, location = $5
		WHERE id = $2 AND customer_id = $1
		RETURNING id, customer_id, note_title, note_text, location, user_id, created_at`,
		customerID, noteID, n.NoteTitle, n.NoteText, n.Location).
		Scan(&note.ID, &note.CustomerID, &note.NoteTitle, &note.NoteText,
			&note.Location, &note.UserID, &note.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update note %s: %w", noteID, err)
	}
	return &note, nil
}

// DeleteNote removes a note from a customer.
func (s *Store) DeleteNote(ctx context.Context, customerID, noteID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM customer_notes WHERE id = $2 AND customer_id = $1`, customerID, noteID)
	if err != nil {
		return fmt.Errorf("delete note %s: %w", noteID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
