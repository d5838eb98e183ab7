// Package contact validates and sends the contact form.
package contact

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/api"
)

const (
	SuccessMessage        = "Dziękujemy! Wiadomość została wysłana."
	GenericFailureMessage = "Nie udało się wysłać wiadomości. Spróbuj ponownie."
)

// MissingFieldsError lists required fields left blank.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("fill in all required fields: %s", strings.Join(e.Fields, ", "))
}

// ConsentError means the data processing consent was not given.
type ConsentError struct{}

func (ConsentError) Error() string {
	return "consent to data processing is required"
}

// Form is the contact form as entered.
type Form struct {
	Name    string
	Email   string
	Message string
	// Website is the honeypot field. It is forwarded as is.
	Website string
	Consent bool
}

// Payload returns the request body with trimmed values.
func (f *Form) Payload() api.ContactMessage {
	return api.ContactMessage{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Message: strings.TrimSpace(f.Message),
		Website: f.Website,
	}
}

// Validate requires name, email and message, then consent.
func Validate(f *Form) error {
	msg := f.Payload()

	missing := make([]string, 0, 3)
	if msg.Name == "" {
		missing = append(missing, "name")
	}
	if msg.Email == "" {
		missing = append(missing, "email")
	}
	if msg.Message == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}

	if !f.Consent {
		return ConsentError{}
	}

	return nil
}

// Backend is the part of the API client used here.
type Backend interface {
	Contact(ctx context.Context, msg *api.ContactMessage) error
}

type Sender struct {
	backend Backend
	logger  *zap.Logger
}

func NewSender(backend Backend, logger *zap.Logger) *Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sender{backend: backend, logger: logger}
}

// Send validates the form and posts it.
func (s *Sender) Send(ctx context.Context, f *Form) error {
	if err := Validate(f); err != nil {
		return err
	}

	msg := f.Payload()
	s.logger.Info("sending contact message", zap.Int("message_length", len(msg.Message)), zap.Bool("honeypot_filled", msg.Website != ""))

	return s.backend.Contact(ctx, &msg)
}
