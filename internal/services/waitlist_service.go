// Package services – WaitlistService
//
// This file implements the WaitlistService, which owns the signup intake and
// every store operation behind the admin review workflow. It validates
// submissions, classifies driver errors into service sentinels, retries an
// authorization-denied insert once through the privileged fallback path, and
// emits a post-commit hook for the welcome-email dispatcher after each
// successful insert.
package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/CalebBennett-Harper/locus/internal/domain"
	"github.com/CalebBennett-Harper/locus/internal/repo"
)

// SignupRepo defines the repository contract required by WaitlistService.
type SignupRepo interface {
	// CreateSignup inserts a new pending signup and returns the stored record.
	CreateSignup(ctx context.Context, db *gorm.DB, s *domain.Signup) (*domain.Signup, error)

	// ListSignups returns all signups, newest first.
	ListSignups(ctx context.Context, db *gorm.DB) ([]domain.Signup, error)

	// GetSignup fetches one signup by id.
	GetSignup(ctx context.Context, db *gorm.DB, id string) (*domain.Signup, error)

	// UpdateSignupStatus partially updates status (and optionally notes).
	UpdateSignupStatus(ctx context.Context, db *gorm.DB, id, status string, notes *string) (*domain.Signup, error)

	// UpdateSignup replaces all mutable fields of one signup.
	UpdateSignup(ctx context.Context, db *gorm.DB, s *domain.Signup) (*domain.Signup, error)

	// DeleteSignup removes one signup; missing ids are an error.
	DeleteSignup(ctx context.Context, db *gorm.DB, id string) error

	// SignupStats computes the dashboard aggregates by full scan.
	SignupStats(ctx context.Context, db *gorm.DB) (domain.Stats, error)
}

// FallbackWriter is the privileged write path used only when a normal insert
// is rejected by row-level authorization. Implementations hold elevated
// credentials (an unrestricted DB handle, or an HTTP client for the
// /api/signup endpoint).
type FallbackWriter interface {
	CreateSignup(ctx context.Context, s *domain.Signup) (*domain.Signup, error)
}

// WaitlistService provides signup intake and review operations. All methods
// are safe for concurrent use.
type WaitlistService struct {
	// DB is the GORM handle used for persistence. For the public intake path
	// this handle may run with policy-restricted credentials.
	DB *gorm.DB
	// Repo is the signup repository used by this service.
	Repo SignupRepo

	// Fallback, when non-nil, is retried exactly once after an
	// authorization-denied insert. Any other failure is surfaced as-is.
	Fallback FallbackWriter

	// OnCreate, when non-nil, is invoked on its own goroutine after every
	// successful insert (direct or fallback). It is a post-commit
	// notification hook: it can never fail the signup and the service never
	// waits for it.
	OnCreate func(domain.Signup)
}

// Create validates a submission and persists it with status pending.
//
// Errors:
//   - *ValidationError when the form fails field validation (nothing written)
//   - ErrDuplicateEmail when the email already exists
//   - ErrAuthorizationDenied only when the restricted write was rejected AND
//     no fallback is configured (or the fallback itself was rejected)
//   - the raw DB error for anything else
func (s *WaitlistService) Create(ctx context.Context, form domain.SignupForm) (*domain.Signup, error) {
	ok, fieldErrs := domain.ValidateSignup(form)
	if !ok {
		signupsRejected.WithLabelValues("validation").Inc()
		return nil, &ValidationError{Fields: fieldErrs}
	}

	age, _ := strconv.Atoi(strings.TrimSpace(form.Age)) // validated above
	rec := &domain.Signup{
		Name:        strings.TrimSpace(form.Name),
		Email:       strings.TrimSpace(form.Email),
		Occupation:  strings.TrimSpace(form.Occupation),
		Age:         age,
		University:  strings.TrimSpace(form.University),
		Cities:      strings.TrimSpace(form.Cities),
		LinkedinURL: strings.TrimSpace(form.Linkedin),
	}

	created, err := s.Repo.CreateSignup(ctx, s.DB, rec)
	switch {
	case err == nil:
		signupsAccepted.WithLabelValues("direct").Inc()
	case isDuplicate(err):
		signupsRejected.WithLabelValues("duplicate").Inc()
		return nil, ErrDuplicateEmail
	case isAuthDenied(err) && s.Fallback != nil:
		// One privileged retry; the public form runs with restricted,
		// policy-limited write permissions.
		created, err = s.Fallback.CreateSignup(ctx, rec)
		if err != nil {
			signupsRejected.WithLabelValues("fallback_failed").Inc()
			return nil, err
		}
		signupsAccepted.WithLabelValues("fallback").Inc()
	case isAuthDenied(err):
		signupsRejected.WithLabelValues("auth_denied").Inc()
		return nil, ErrAuthorizationDenied
	default:
		signupsRejected.WithLabelValues("backend").Inc()
		return nil, err
	}

	if s.OnCreate != nil {
		go s.OnCreate(*created)
	}
	return created, nil
}

// List returns all signups ordered by creation time descending. On any store
// failure it returns an empty slice alongside ErrBackendUnavailable so
// callers can render a safe empty state.
func (s *WaitlistService) List(ctx context.Context) ([]domain.Signup, error) {
	out, err := s.Repo.ListSignups(ctx, s.DB)
	if err != nil {
		return []domain.Signup{}, ErrBackendUnavailable
	}
	if out == nil {
		out = []domain.Signup{}
	}
	return out, nil
}

// UpdateStatus partially updates one signup's status and, when notes is
// non-nil, its notes. Returns ErrInvalidStatus or ErrSignupNotFound for the
// predictable cases.
func (s *WaitlistService) UpdateStatus(ctx context.Context, id, status string, notes *string) (*domain.Signup, error) {
	if !domain.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	rec, err := s.Repo.UpdateSignupStatus(ctx, s.DB, id, status, notes)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSignupNotFound
		}
		return nil, err
	}
	return rec, nil
}

// UpdateFull replaces all mutable fields of one signup (never id or
// created_at). The incoming status must be one of the enumerated values.
func (s *WaitlistService) UpdateFull(ctx context.Context, rec *domain.Signup) (*domain.Signup, error) {
	if !domain.ValidStatus(rec.Status) {
		return nil, ErrInvalidStatus
	}
	out, err := s.Repo.UpdateSignup(ctx, s.DB, rec)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSignupNotFound
		}
		if isDuplicate(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return out, nil
}

// Delete removes one signup permanently. Deleting an unknown id returns
// ErrSignupNotFound; the store's native semantics are kept rather than
// papering over with idempotence.
func (s *WaitlistService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeleteSignup(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrSignupNotFound
		}
		return err
	}
	return nil
}

// Stats recomputes the dashboard aggregates from the full record set.
func (s *WaitlistService) Stats(ctx context.Context) (domain.Stats, error) {
	stats, err := s.Repo.SignupStats(ctx, s.DB)
	if err != nil {
		return domain.Stats{}, ErrBackendUnavailable
	}
	return stats, nil
}

// isDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}

// isAuthDenied detects row-level authorization rejections. The patterns cover
// hosted-Postgres policy errors as well as a read-only local handle.
func isAuthDenied(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "row level security") ||
		strings.Contains(msg, "row-level security") ||
		strings.Contains(msg, "violates policy") ||
		strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "readonly database") ||
		strings.Contains(msg, "access denied")
}
