// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for magic-link
// login tokens and browser sessions.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CalebBennett-Harper/locus/internal/domain"
)

// CreateLoginToken inserts a single-use magic-link token for email that
// expires at the given time.
func CreateLoginToken(ctx context.Context, db *gorm.DB, email string, expiresAt time.Time) (*domain.LoginToken, error) {
	t := &domain.LoginToken{
		ID:        uuid.NewString(),
		Email:     email,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// ConsumeLoginToken atomically marks the token as consumed and returns it.
// It returns ErrNotFound when the token does not exist, was already
// consumed, or has expired; callers cannot distinguish the three, which
// keeps redemption single-use without leaking token state.
func ConsumeLoginToken(ctx context.Context, db *gorm.DB, id string, now time.Time) (*domain.LoginToken, error) {
	var tok domain.LoginToken
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.LoginToken{}).
			Where("id = ? AND consumed_at IS NULL AND expires_at > ?", id, now).
			Update("consumed_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&tok, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

// CreateSession inserts a new session for email expiring at the given time.
// The session ID is the opaque value stored in the auth cookie.
func CreateSession(ctx context.Context, db *gorm.DB, email string, expiresAt time.Time) (*domain.Session, error) {
	s := &domain.Session{
		ID:        uuid.NewString(),
		Email:     email,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetSession fetches a live (non-expired) session by ID. Expired or missing
// sessions yield ErrNotFound.
func GetSession(ctx context.Context, db *gorm.DB, id string, now time.Time) (*domain.Session, error) {
	var s domain.Session
	err := db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, now).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSession removes a session by ID. Deleting an unknown session is a
// no-op: sign-out must always succeed from the caller's point of view.
func DeleteSession(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Delete(&domain.Session{}, "id = ?", id).Error
}

// PruneAuth deletes expired login tokens and sessions. Invoked
// opportunistically; failures are safe to ignore.
func PruneAuth(ctx context.Context, db *gorm.DB, now time.Time) error {
	if err := db.WithContext(ctx).Delete(&domain.LoginToken{}, "expires_at <= ?", now).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&domain.Session{}, "expires_at <= ?", now).Error
}
