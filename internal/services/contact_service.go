package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"remontzbt.dev/internal/models"
)

// ErrInvalidContact indicates a contact form with required fields missing
var ErrInvalidContact = errors.New("invalid contact form")

// ValidationError lists the required fields that were left empty
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrInvalidContact, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidContact
}

// Submitter delivers a validated contact ticket somewhere a human will see it
type Submitter interface {
	Submit(ctx context.Context, ticket models.ContactTicket) error
}

// ContactService validates contact forms and hands them to a Submitter
type ContactService struct {
	submitter Submitter
	log       logrus.FieldLogger
	newID     func() string
}

// NewContactService creates a new ContactService
func NewContactService(submitter Submitter, log logrus.FieldLogger) *ContactService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ContactService{submitter: submitter, log: log, newID: uuid.NewString}
}

// Validate checks that name, email and message are present
func Validate(form models.ContactForm) error {
	form = form.Trimmed()
	var missing []string
	if form.Name == "" {
		missing = append(missing, "name")
	}
	if form.Email == "" {
		missing = append(missing, "email")
	}
	if form.Message == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Submit validates form and delivers it. Validation failures are returned
// before anything is sent.
func (s *ContactService) Submit(ctx context.Context, form models.ContactForm) (models.ContactTicket, error) {
	if err := Validate(form); err != nil {
		return models.ContactTicket{}, err
	}

	ticket := models.ContactTicket{ID: s.newID(), Form: form.Trimmed()}
	log := s.log.WithField("ticket", ticket.ID)

	if err := s.submitter.Submit(ctx, ticket); err != nil {
		log.WithError(err).Error("contact submission failed")
		return ticket, fmt.Errorf("submit contact ticket %s: %w", ticket.ID, err)
	}
	log.Info("contact submission delivered")
	return ticket, nil
}

// SimulatedSubmitter waits a fixed delay in place of a real delivery
type SimulatedSubmitter struct {
	Delay time.Duration
}

// Submit implements Submitter. It only fails when ctx ends first.
func (s SimulatedSubmitter) Submit(ctx context.Context, _ models.ContactTicket) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
