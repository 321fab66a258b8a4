package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var noteJoinColumns = []string{
	"id", "customer_id", "note_title", "note_text", "location", "user_id",
	"created_at", "c_id", "c_name", "c_company",
}

func TestListNotes_CustomerNameFallback(t *testing.T) {
	st, mock, done := newTestStore(t)
	defer done()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(noteJoinColumns).
		AddRow("n1", "cust-1", "Bezoek", "Gesproken over offerte", nil, "user-1", now,
			"cust-1", "Jansen", "Jansen BV").
		AddRow("n2", "cust-2", "Bellen", "Terugbelverzoek", nil, "user-1", now,
			"cust-2", "De Vries", nil).
		AddRow("n3", "cust-gone", "Oud", "Klant verwijderd", nil, "user-1", now,
			nil, nil, nil)
	mock.ExpectQuery(`FROM customer_notes n`).WillReturnRows(rows)

	notes, err := st.ListNotes(context.Background())

	assert.NoError(t, err)
	assert.Len(t, notes, 3)
	assert.Equal(t, "Jansen BV", notes[0].CustomerName)
	assert.Equal(t, "De Vries", notes[1].CustomerName)
	assert.Equal(t, "Onbekende Klant", notes[2].CustomerName)
	assert.Nil(t, notes[2].Customer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardStats(t *testing.T) {
	st, mock, done := newTestStore(t)
	defer done()

	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"p", "c", "o", "t", "n"}).
			AddRow(12, 4, 2, 7, 9))

	stats, err := st.DashboardStats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 12, stats.ProductCount)
	assert.Equal(t, 4, stats.CustomerCount)
	assert.Equal(t, 2, stats.OpenOrderCount)
	assert.Equal(t, 7, stats.OpenTaskCount)
	assert.Equal(t, 9, stats.NoteCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
