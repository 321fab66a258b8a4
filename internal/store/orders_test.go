package store

import (
	"context"
	"errors"
	"testing"

	"backoffice/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCreateOrder_CommitsOrderAndItems(t *testing.T) {
	st, mock, done := newTestStore(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WithArgs(sqlmock.AnyArg(), "cust-1", "pending", nil, 59.90, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(sqlmock.AnyArg(), "prod-1", 2, 29.95).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	order, err := st.CreateOrder(context.Background(), &models.NewOrder{
		CustomerID: "cust-1",
		Total:      59.90,
		Items: []models.NewOrderItem{
			{ProductID: "prod-1", Quantity: 2, PriceAtTime: 29.95},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "pending", order.Status)
	assert.Len(t, order.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_RollsBackOnItemFailure(t *testing.T) {
	st, mock, done := newTestStore(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO order_items`).
		WillReturnError(errors.New("foreign key violation"))
	mock.ExpectRollback()

	_, err := st.CreateOrder(context.Background(), &models.NewOrder{
		CustomerID: "cust-1",
		Total:      10,
		Items: []models.NewOrderItem{
			{ProductID: "missing", Quantity: 1, PriceAtTime: 10},
		},
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_RequiresItems(t *testing.T) {
	st, _, done := newTestStore(t)
	defer done()

	_, err := st.CreateOrder(context.Background(), &models.NewOrder{
		CustomerID: "cust-1",
	})

	assert.Error(t, err)
	assert.True(t, IsInvalidInput(err))
}
