package models

import (
	"fmt"
	"time"
)

// Priority is the closed set of task priorities.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is the closed set of task statuses.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParsePriority converts a raw string into a Priority.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(raw)
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q", raw)
	}
	return p, nil
}

// ParseStatus converts a raw string into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", raw)
	}
	return s, nil
}

// Task is a unit of work, optionally linked to a customer. DueDate is
// free-form text ("morgen", "eind van de week"); WeekNumber is an ISO week.
// By convention at most one of the two is set.
type Task struct {
	ID          string       `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	Description *string      `json:"description" db:"description"`
	CustomerID  *string      `json:"customer_id" db:"customer_id"`
	Priority    Priority     `json:"priority" db:"priority"`
	DueDate     *string      `json:"due_date" db:"due_date"`
	WeekNumber  *int         `json:"week_number" db:"week_number"`
	Status      Status       `json:"status" db:"status"`
	Tags        []string     `json:"tags" db:"tags"`
	Customer    *CustomerRef `json:"customer,omitempty"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// CustomerRef is the customer projection joined onto tasks and notes.
type CustomerRef struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Company *string `json:"company"`
}

// NewTask is the payload for creating a task.
type NewTask struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	CustomerID  *string  `json:"customer_id"`
	Priority    Priority `json:"priority"`
	DueDate     *string  `json:"due_date"`
	WeekNumber  *int     `json:"week_number"`
	Status      Status   `json:"status"`
	Tags        []string `json:"tags"`
}

// ApplyDefaults fills the creation defaults: medium priority, todo status,
// empty tag list.
func (n *NewTask) ApplyDefaults() {
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	if n.Status == "" {
		n.Status = StatusTodo
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
}

// Validate checks the enumerated fields after defaults are applied.
func (n *NewTask) Validate() error {
	if n.Title == "" {
		return fmt.Errorf("title is required")
	}
	if !n.Priority.Valid() {
		return fmt.Errorf("unknown priority %q", n.Priority)
	}
	if !n.Status.Valid() {
		return fmt.Errorf("unknown status %q", n.Status)
	}
	return nil
}
