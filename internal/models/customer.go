package models

import "time"

// Customer is a customer record. Company is the case-insensitive lookup key
// used by the task-intake resolver; the store enforces uniqueness on
// LOWER(company).
type Customer struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Company   *string   `json:"company" db:"company"`
	Email     *string   `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Ref returns the joined-projection view of the customer.
func (c *Customer) Ref() *CustomerRef {
	return &CustomerRef{ID: c.ID, Name: c.Name, Company: c.Company}
}

// NewCustomer is the payload for creating or updating a customer.
type NewCustomer struct {
	Name    string  `json:"name"`
	Company *string `json:"company"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
}
