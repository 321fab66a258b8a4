package intake

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	stderrors "backoffice/internal/common/errors"
	"backoffice/internal/common/logger"
	"backoffice/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

type stubExtractor struct {
	raw string
	err error
}

func (s *stubExtractor) Extract(ctx context.Context, message string) (string, error) {
	return s.raw, s.err
}

type stubCustomerStore struct {
	existing  map[string]*models.Customer
	createErr error
	findErr   error
	created   []*models.NewCustomer
}

func (s *stubCustomerStore) FindCustomerByCompany(ctx context.Context, company string) (*models.Customer, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for key, c := range s.existing {
		if strings.EqualFold(key, company) {
			return c, nil
		}
	}
	return nil, nil
}

func (s *stubCustomerStore) CreateCustomer(ctx context.Context, n *models.NewCustomer) (*models.Customer, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, n)
	c := &models.Customer{ID: "cust-new", Name: n.Name, Company: n.Company, CreatedAt: time.Now().UTC()}
	if s.existing == nil {
		s.existing = map[string]*models.Customer{}
	}
	s.existing[n.Name] = c
	return c, nil
}

type stubTaskStore struct {
	err     error
	created []*models.NewTask
}

func (s *stubTaskStore) CreateTask(ctx context.Context, n *models.NewTask) (*models.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, n)
	n.ApplyDefaults()
	return &models.Task{
		ID:         "task-1",
		Title:      n.Title,
		CustomerID: n.CustomerID,
		Priority:   n.Priority,
		DueDate:    n.DueDate,
		WeekNumber: n.WeekNumber,
		Status:     n.Status,
		Tags:       n.Tags,
	}, nil
}

func newTestService(t *testing.T, extractor Extractor, customers CustomerStore, tasks TaskStore) *Service {
	return NewService(extractor, customers, tasks, nil, logger.NewTestLogger(t))
}

func TestProcess_LinksExistingCustomerCaseInsensitive(t *testing.T) {
	extractor := &stubExtractor{
		raw: `{"taakOmschrijving": "offerte nasturen", "bedrijfsnaam": "JANSEN bv", "deadlineString": null, "weeknummer": null}`,
	}
	customers := &stubCustomerStore{
		existing: map[string]*models.Customer{
			"Jansen BV": {ID: "cust-1", Name: "Jansen BV"},
		},
	}
	tasks := &stubTaskStore{}

	task, err := newTestService(t, extractor, customers, tasks).
		Process(context.Background(), "offerte nasturen naar JANSEN bv")

	assert.NoError(t, err)
	assert.NotNil(t, task.CustomerID)
	assert.Equal(t, "cust-1", *task.CustomerID)
	// An existing match must never spawn a duplicate customer.
	assert.Empty(t, customers.created)
}

func TestProcess_CreatesCustomerForNewCompany(t *testing.T) {
	extractor := &stubExtractor{
		raw: `{"taakOmschrijving": "kennismaken", "bedrijfsnaam": "Reints", "deadlineString": null, "weeknummer": 45}`,
	}
	customers := &stubCustomerStore{}
	tasks := &stubTaskStore{}

	task, err := newTestService(t, extractor, customers, tasks).
		Process(context.Background(), "kennismaken met Reints in week 45")

	assert.NoError(t, err)
	assert.Len(t, customers.created, 1)
	assert.Equal(t, "Reints", customers.created[0].Name)
	assert.Equal(t, "Reints", *customers.created[0].Company)
	assert.Equal(t, "cust-new", *task.CustomerID)
	assert.Equal(t, 45, *task.WeekNumber)
}

func TestProcess_NilCompanyLeavesTaskUnlinked(t *testing.T) {
	extractor := &stubExtractor{
		raw: `{"taakOmschrijving": "nieuwe blogpost schrijven", "bedrijfsnaam": null, "deadlineString": null, "weeknummer": null}`,
	}
	customers := &stubCustomerStore{}
	tasks := &stubTaskStore{}

	task, err := newTestService(t, extractor, customers, tasks).
		Process(context.Background(), "nieuwe blogpost schrijven")

	assert.NoError(t, err)
	assert.Nil(t, task.CustomerID)
	assert.Empty(t, customers.created)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, models.StatusTodo, task.Status)
}

func TestProcess_EmptyMessage(t *testing.T) {
	tasks := &stubTaskStore{}
	svc := newTestService(t, &stubExtractor{}, &stubCustomerStore{}, tasks)

	for _, message := range []string{"", "   ", "\n\t"} {
		_, err := svc.Process(context.Background(), message)

		stdErr, ok := err.(*stderrors.StandardError)
		assert.True(t, ok)
		assert.Equal(t, stderrors.ErrCodeInvalidInput, stdErr.Code)
	}
	assert.Empty(t, tasks.created)
}

func TestProcess_MalformedExtractionWritesNothing(t *testing.T) {
	extractor := &stubExtractor{raw: `Sorry, dat kan ik niet.`}
	customers := &stubCustomerStore{}
	tasks := &stubTaskStore{}

	_, err := newTestService(t, extractor, customers, tasks).
		Process(context.Background(), "doe iets")

	stdErr, ok := err.(*stderrors.StandardError)
	assert.True(t, ok)
	assert.Equal(t, stderrors.ErrCodeMalformedExtraction, stdErr.Code)
	assert.Empty(t, tasks.created)
	assert.Empty(t, customers.created)
}

func TestProcess_ExtractorFailurePropagates(t *testing.T) {
	extractor := &stubExtractor{err: stderrors.NewUpstreamUnavailableError(503, errors.New("overloaded"))}
	tasks := &stubTaskStore{}

	_, err := newTestService(t, extractor, &stubCustomerStore{}, tasks).
		Process(context.Background(), "doe iets")

	stdErr, ok := err.(*stderrors.StandardError)
	assert.True(t, ok)
	assert.Equal(t, stderrors.ErrCodeUpstreamUnavailable, stdErr.Code)
	assert.Empty(t, tasks.created)
}

func TestProcess_CustomerResolutionFailureStillStoresTask(t *testing.T) {
	extractor := &stubExtractor{
		raw: `{"taakOmschrijving": "bellen", "bedrijfsnaam": "Jansen BV", "deadlineString": null, "weeknummer": null}`,
	}
	customers := &stubCustomerStore{findErr: errors.New("connection refused")}
	tasks := &stubTaskStore{}

	task, err := newTestService(t, extractor, customers, tasks).
		Process(context.Background(), "Jansen BV bellen")

	assert.NoError(t, err)
	assert.Nil(t, task.CustomerID)
	assert.Len(t, tasks.created, 1)
}

func TestProcess_UniqueViolationRefetchesWinner(t *testing.T) {
	extractor := &stubExtractor{
		raw: `{"taakOmschrijving": "bellen", "bedrijfsnaam": "Jansen BV", "deadlineString": null, "weeknummer": null}`,
	}
	// First lookup misses, the create loses the race, the second lookup
	// finds the concurrent winner.
	customers := &raceCustomerStore{
		winner: &models.Customer{ID: "cust-winner", Name: "Jansen BV"},
	}
	tasks := &stubTaskStore{}

	task, err := newTestService(t, extractor, customers, tasks).
		Process(context.Background(), "Jansen BV bellen")

	assert.NoError(t, err)
	assert.NotNil(t, task.CustomerID)
	assert.Equal(t, "cust-winner", *task.CustomerID)
}

type raceCustomerStore struct {
	winner  *models.Customer
	lookups int
}

func (s *raceCustomerStore) FindCustomerByCompany(ctx context.Context, company string) (*models.Customer, error) {
	s.lookups++
	if s.lookups == 1 {
		return nil, nil
	}
	return s.winner, nil
}

func (s *raceCustomerStore) CreateCustomer(ctx context.Context, n *models.NewCustomer) (*models.Customer, error) {
	return nil, &pq.Error{Code: "23505"}
}

func TestProcess_UniqueViolationRelookupMissStoresUnlinked(t *testing.T) {
	extractor := &stubExtractor{
		raw: `{"taakOmschrijving": "bellen", "bedrijfsnaam": "Jansen BV", "deadlineString": null, "weeknummer": null}`,
	}
	// The create loses the race and the second lookup also comes back
	// empty. The task must still land, unlinked.
	customers := &raceCustomerStore{winner: nil}
	tasks := &stubTaskStore{}

	task, err := newTestService(t, extractor, customers, tasks).
		Process(context.Background(), "Jansen BV bellen")

	assert.NoError(t, err)
	assert.Nil(t, task.CustomerID)
	assert.Len(t, tasks.created, 1)
}

func TestProcess_TaskPersistenceFailure(t *testing.T) {
	extractor := &stubExtractor{
		raw: `{"taakOmschrijving": "bellen", "bedrijfsnaam": null, "deadlineString": null, "weeknummer": null}`,
	}
	tasks := &stubTaskStore{err: errors.New("deadlock detected")}

	_, err := newTestService(t, extractor, &stubCustomerStore{}, tasks).
		Process(context.Background(), "bellen")

	stdErr, ok := err.(*stderrors.StandardError)
	assert.True(t, ok)
	assert.Equal(t, stderrors.ErrCodePersistenceError, stdErr.Code)
}
