package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"backoffice/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// taskSelect joins each task with its linked customer's id/name/company,
// ordered the way the task board expects: due date first, then priority.
const taskSelect = `
	SELECT t.id, t.title, t.description, t.customer_id, t.priority, t.due_date,
	       t.week_number, t.status, t.tags, t.created_at, t.updated_at,
	       c.id, c.name, c.company
	FROM tasks t
	LEFT JOIN customers c ON c.id = t.customer_id`

const taskOrder = `
	ORDER BY t.due_date ASC NULLS LAST,
	         CASE t.priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END`

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*models.Task, error) {
	var t models.Task
	var custID, custName, custCompany sql.NullString
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.CustomerID, &t.Priority, &t.DueDate,
		&t.WeekNumber, &t.Status, pq.Array(&t.Tags), &t.CreatedAt, &t.UpdatedAt,
		&custID, &custName, &custCompany,
	)
	if err != nil {
		return nil, err
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if custID.Valid {
		ref := &models.CustomerRef{ID: custID.String, Name: custName.String}
		if custCompany.Valid {
			company := custCompany.String
			ref.Company = &company
		}
		t.Customer = ref
	}
	return &t, nil
}

// TaskFilter narrows ListTasks. Zero values mean "no filter".
type TaskFilter struct {
	Status     models.Status
	CustomerID string
	Week       *int
}

// ListTasks returns tasks matching the filter with their customer join.
func (s *Store) ListTasks(ctx context.Context, filter TaskFilter) ([]*models.Task, error) {
	query := taskSelect
	where := ""
	args := []interface{}{}

	appendCond := func(cond string, arg interface{}) {
		args = append(args, arg)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, len(args))
	}

	if filter.Status != "" {
		appendCond("t.status = $%d", string(filter.Status))
	}
	if filter.CustomerID != "" {
		appendCond("t.customer_id = $%d", filter.CustomerID)
	}
	if filter.Week != nil {
		appendCond("t.week_number = $%d", *filter.Week)
	}

	rows, err := s.db.QueryContext(ctx, query+where+taskOrder, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask fetches one task with its customer join.
func (s *Store) GetTask(ctx context.Context, id string) (*models.Task, error) {
	t, err := scanTask(s.db.QueryRowContext(ctx, taskSelect+` WHERE t.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return t, nil
}

// CreateTask inserts a task and returns the stored record joined with its
// linked customer.
func (s *Store) CreateTask(ctx context.Context, n *models.NewTask) (*models.Task, error) {
	n.ApplyDefaults()
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, customer_id, priority,
		                   due_date, week_number, status, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		id, n.Title, n.Description, n.CustomerID, n.Priority,
		n.DueDate, n.WeekNumber, n.Status, pq.Array(n.Tags), now)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return s.GetTask(ctx, id)
}

// UpdateTask patches the supported mutable fields. Supported keys: title,
// description, customer_id, priority, due_date, week_number, status, tags.
func (s *Store) UpdateTask(ctx context.Context, id string, updates map[string]interface{}) (*models.Task, error) {
	setClause := "updated_at = $1"
	args := []interface{}{time.Now().UTC()}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		setClause += fmt.Sprintf(", %s = $%d", column, len(args))
	}

	for key, value := range updates {
		switch key {
		case "title", "description", "customer_id", "due_date":
			addSet(key, value)
		case "week_number":
			addSet(key, value)
		case "priority":
			raw, _ := value.(string)
			p, err := models.ParsePriority(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			addSet(key, string(p))
		case "status":
			raw, _ := value.(string)
			st, err := models.ParseStatus(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			addSet(key, string(st))
		case "tags":
			tags, err := toStringSlice(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			addSet(key, pq.Array(tags))
		default:
			return nil, fmt.Errorf("%w: unsupported field %q", ErrInvalidInput, key)
		}
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d`, setClause, len(args)), args...)
	if err != nil {
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	return s.GetTask(ctx, id)
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListTags returns the distinct non-empty tags across all tasks, sorted.
func (s *Store) ListTags(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT u.tag
		FROM (SELECT unnest(tags) AS tag FROM tasks) u
		WHERE btrim(u.tag) <> ''
		ORDER BY u.tag`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func toStringSlice(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("tags must be strings, got %T", item)
			}
			out = append(out, str)
		}
		return out, nil
	case nil:
		return []string{}, nil
	default:
		return nil, fmt.Errorf("tags must be an array, got %T", value)
	}
}
