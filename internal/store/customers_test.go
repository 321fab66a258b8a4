package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"backoffice/internal/common/logger"
	"backoffice/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	return New(db, logger.NewTestLogger(t)), mock, func() { db.Close() }
}

func strPtr(s string) *string { return &s }

func customerRows(id, name, company string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "company", "email", "phone", "created_at"}).
		AddRow(id, name, company, nil, nil, time.Now().UTC())
}

func TestFindCustomerByCompany_Match(t *testing.T) {
	st, mock, done := newTestStore(t)
	defer done()

	mock.ExpectQuery(`SELECT (.+) FROM customers WHERE LOWER\(company\) = LOWER\(\$1\)`).
		WithArgs("jansen bv").
		WillReturnRows(customerRows("cust-1", "Jansen BV", "Jansen BV"))

	c, err := st.FindCustomerByCompany(context.Background(), "jansen bv")

	assert.NoError(t, err)
	assert.NotNil(t, c)
	assert.Equal(t, "cust-1", c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCustomerByCompany_NoMatch(t *testing.T) {
	st, mock, done := newTestStore(t)
	defer done()

	// The no-rows case must come back as (nil, nil), not as an error.
	mock.ExpectQuery(`SELECT (.+) FROM customers WHERE LOWER\(company\) = LOWER\(\$1\)`).
		WithArgs("Onbekend BV").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "company", "email", "phone", "created_at"}))

	c, err := st.FindCustomerByCompany(context.Background(), "Onbekend BV")

	assert.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCustomer(t *testing.T) {
	st, mock, done := newTestStore(t)
	defer done()

	mock.ExpectQuery(`INSERT INTO customers`).
		WithArgs(sqlmock.AnyArg(), "Jansen BV", "Jansen BV", nil, nil, sqlmock.AnyArg()).
		WillReturnRows(customerRows("cust-1", "Jansen BV", "Jansen BV"))

	c, err := st.CreateCustomer(context.Background(), &models.NewCustomer{
		Name:    "Jansen BV",
		Company: strPtr("Jansen BV"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "cust-1", c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCustomer_UniqueViolation(t *testing.T) {
	st, mock, done := newTestStore(t)
	defer done()

	mock.ExpectQuery(`INSERT INTO customers`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := st.CreateCustomer(context.Background(), &models.NewCustomer{Name: "Jansen BV"})

	assert.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCustomer_NotFound(t *testing.T) {
	st, mock, done := newTestStore(t)
	defer done()

	mock.ExpectExec(`DELETE FROM customers WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := st.DeleteCustomer(context.Background(), "missing")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation_OtherError(t *testing.T) {
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
}
