// Package intake turns a free-text message into a persisted task. The
// pipeline extracts structured fields with the language model, validates the
// shape of the response, resolves the named company to a customer row, and
// writes the task.
package intake

import (
	"context"
	"strings"
	"time"

	"backoffice/internal/ai"
	"backoffice/internal/common/errors"
	"backoffice/internal/common/logger"
	"backoffice/internal/common/metrics"
	"backoffice/internal/common/observability"
	"backoffice/internal/models"
	"backoffice/internal/store"
)

// Extractor produces the raw model output for a message.
type Extractor interface {
	Extract(ctx context.Context, message string) (string, error)
}

// CustomerStore is the slice of the store used for customer resolution.
type CustomerStore interface {
	FindCustomerByCompany(ctx context.Context, company string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, n *models.NewCustomer) (*models.Customer, error)
}

// TaskStore persists the assembled task.
type TaskStore interface {
	CreateTask(ctx context.Context, n *models.NewTask) (*models.Task, error)
}

// Service runs the intake pipeline.
type Service struct {
	extractor Extractor
	customers CustomerStore
	tasks     TaskStore
	obs       *observability.Observability
	logger    logger.Logger
}

func NewService(extractor Extractor, customers CustomerStore, tasks TaskStore, obs *observability.Observability, log logger.Logger) *Service {
	return &Service{
		extractor: extractor,
		customers: customers,
		tasks:     tasks,
		obs:       obs,
		logger:    log.WithFields(map[string]interface{}{"component": "intake"}),
	}
}

// Process runs a message through extraction, validation, customer resolution
// and task creation. Customer resolution failures do not fail the pipeline:
// the task is stored without a customer link.
func (s *Service) Process(ctx context.Context, message string) (*models.Task, error) {
	start := time.Now()

	task, err := s.process(ctx, message)

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	metrics.IntakeRequestsTotal.WithLabelValues(outcome).Inc()
	if s.obs != nil {
		s.obs.RecordIntakeProcessed(ctx, outcome)
		s.obs.RecordIntakeDuration(ctx, time.Since(start), outcome)
	}
	return task, err
}

func (s *Service) process(ctx context.Context, message string) (*models.Task, error) {
	if strings.TrimSpace(message) == "" {
		return nil, errors.NewInvalidInputError("Bericht is vereist")
	}

	raw, err := s.extractor.Extract(ctx, message)
	if err != nil {
		s.logger.WithError(err).Error("extraction request failed", nil)
		return nil, err
	}

	extraction, err := ai.ParseExtraction(raw)
	if err != nil {
		metrics.IntakeExtractionFailures.WithLabelValues(string(errors.ErrCodeMalformedExtraction)).Inc()
		s.logger.WithError(err).Error("extraction response rejected", map[string]interface{}{
			"rawResponse": raw,
		})
		return nil, err
	}

	customerID := s.resolveCustomer(ctx, extraction.Company)

	newTask := &models.NewTask{
		Title:      extraction.Description,
		CustomerID: customerID,
		DueDate:    extraction.Deadline,
		WeekNumber: extraction.WeekNumber,
	}

	task, err := s.tasks.CreateTask(ctx, newTask)
	if err != nil {
		s.logger.WithError(err).Error("failed to store task", nil)
		return nil, errors.NewPersistenceError(err)
	}

	s.logger.Info("task created from message", map[string]interface{}{
		"taskId":     task.ID,
		"linked":     customerID != nil,
		"weekNumber": task.WeekNumber,
	})
	return task, nil
}

// resolveCustomer maps a company name to a customer id, creating the
// customer when no row matches case-insensitively. Every failure is logged
// and swallowed so the task still gets stored.
func (s *Service) resolveCustomer(ctx context.Context, company *string) *string {
	if company == nil || strings.TrimSpace(*company) == "" {
		return nil
	}
	name := strings.TrimSpace(*company)

	existing, err := s.customers.FindCustomerByCompany(ctx, name)
	if err != nil {
		s.logger.WithError(err).Warn("customer lookup failed", map[string]interface{}{
			"company": name,
		})
		return nil
	}
	if existing != nil {
		return &existing.ID
	}

	created, err := s.customers.CreateCustomer(ctx, &models.NewCustomer{
		Name:    name,
		Company: &name,
	})
	if err != nil {
		// A concurrent request may have inserted the same company first.
		// The unique index on LOWER(company) surfaces that as 23505, in
		// which case the winner's row is the one to link.
		if store.IsUniqueViolation(err) {
			winner, lookupErr := s.customers.FindCustomerByCompany(ctx, name)
			if lookupErr == nil && winner != nil {
				return &winner.ID
			}
			if lookupErr != nil {
				err = lookupErr
			}
		}
		s.logger.WithError(err).Warn("customer creation failed", map[string]interface{}{
			"company": name,
		})
		return nil
	}

	metrics.IntakeCustomersCreated.Inc()
	s.logger.Info("customer created from intake", map[string]interface{}{
		"customerId": created.ID,
		"company":    name,
	})
	return &created.ID
}
