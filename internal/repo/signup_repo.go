// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Signup
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a signup is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience). Deleting a missing
//     id is an error, not a no-op.
//   - On DB errors (constraint violations, connectivity issues, permission
//     problems), the raw gorm error is propagated; classification into
//     duplicate-email or authorization-denied happens in the service layer.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CalebBennett-Harper/locus/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateSignup inserts a new waitlist signup with status pending and
// CreatedAt set to UTC now. The record ID is a randomly generated UUID.
//
// On success, it returns the persisted Signup. On failure, it returns the
// raw DB error (including unique-constraint violations on email).
func CreateSignup(ctx context.Context, db *gorm.DB, s *domain.Signup) (*domain.Signup, error) {
	rec := *s
	rec.ID = uuid.NewString()
	rec.Status = domain.StatusPending
	rec.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListSignups returns all signups ordered by creation time descending
// (newest first). It returns an empty slice when the table is empty.
func ListSignups(ctx context.Context, db *gorm.DB) ([]domain.Signup, error) {
	var out []domain.Signup
	err := db.WithContext(ctx).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// GetSignup fetches a single signup by ID. If the record does not exist, it
// returns ErrNotFound.
func GetSignup(ctx context.Context, db *gorm.DB, id string) (*domain.Signup, error) {
	var s domain.Signup
	if err := db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSignupStatus performs a partial update of status (and optionally
// notes) for the signup identified by id, then returns the updated record.
// A nil notes pointer leaves the stored notes untouched. Returns ErrNotFound
// when no row matches id.
func UpdateSignupStatus(ctx context.Context, db *gorm.DB, id, status string, notes *string) (*domain.Signup, error) {
	fields := map[string]any{"status": status}
	if notes != nil {
		fields["notes"] = *notes
	}
	res := db.WithContext(ctx).
		Model(&domain.Signup{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return GetSignup(ctx, db, id)
}

// UpdateSignup replaces all mutable fields of the signup identified by
// s.ID (never the id or CreatedAt) and returns the updated record.
// Returns ErrNotFound when no row matches.
func UpdateSignup(ctx context.Context, db *gorm.DB, s *domain.Signup) (*domain.Signup, error) {
	res := db.WithContext(ctx).
		Model(&domain.Signup{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"name":         s.Name,
			"email":        s.Email,
			"occupation":   s.Occupation,
			"age":          s.Age,
			"university":   s.University,
			"cities":       s.Cities,
			"linkedin_url": s.LinkedinURL,
			"notes":        s.Notes,
			"status":       s.Status,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return GetSignup(ctx, db, s.ID)
}

// DeleteSignup removes one signup permanently. Deleting a non-existent id
// returns ErrNotFound rather than succeeding silently.
func DeleteSignup(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.Signup{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
