package document

import (
	"context"
	"fmt"
	"maps"

	"billbook/internal/domain"
	"billbook/internal/validator"
)

// ValidateAll runs the validation engine and settles the state in valid or invalid. The
// field-keyed error map of the report replaces the store's validation errors.
func (s *Store) ValidateAll(ctx context.Context) (*validator.Report, error) {
	switch s.state.ValidationState {
	case domain.ValidationStatePristine, domain.ValidationStateValid, domain.ValidationStateInvalid:
	default:
		return nil, fmt.Errorf("validate from %s: %w", s.state.ValidationState, domain.ErrInvalidTransition)
	}

	s.state.ValidationState = domain.ValidationStateValidating
	report := s.engine.ValidateDocument(ctx, &s.state.Document)

	s.state.ValidationErrors = maps.Clone(report.Errors)
	if report.HasErrors() {
		s.state.ValidationState = domain.ValidationStateInvalid
	} else {
		s.state.ValidationState = domain.ValidationStateValid
	}
	return report, nil
}

// BeginSubmit moves a valid document into submitting.
func (s *Store) BeginSubmit() error {
	if s.state.ValidationState != domain.ValidationStateValid {
		return fmt.Errorf("submit from %s: %w", s.state.ValidationState, domain.ErrInvalidTransition)
	}
	s.state.ValidationState = domain.ValidationStateSubmitting
	s.state.IsSubmitting = true
	return nil
}

// EndSubmit settles a submission. On success the document is marked submitted and the
// state returns to pristine; a failure is recorded under the "submit" key.
func (s *Store) EndSubmit(err error) error {
	if s.state.ValidationState != domain.ValidationStateSubmitting {
		return fmt.Errorf("end submit from %s: %w", s.state.ValidationState, domain.ErrInvalidTransition)
	}
	s.state.IsSubmitting = false
	if err != nil {
		s.state.ValidationState = domain.ValidationStateInvalid
		s.state.ValidationErrors["submit"] = err.Error()
		return nil
	}
	s.state.ValidationState = domain.ValidationStatePristine
	s.state.Document.Status = domain.DocumentStatusSubmitted
	return nil
}
