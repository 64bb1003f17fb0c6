// Package services – AuthService
//
// This file implements the magic-link sign-in flow that gates the admin
// dashboard. A sign-in request mints a single-use login token and emails a
// link; redeeming the token establishes a session. Admin status is a pure
// equality check between the session email and the one configured admin
// address; there is no role table and no multi-admin support.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/CalebBennett-Harper/locus/internal/domain"
	"github.com/CalebBennett-Harper/locus/internal/repo"
)

// MagicLinkMailer delivers the sign-in link. Implemented by mail.Mailer.
type MagicLinkMailer interface {
	SendMagicLink(ctx context.Context, email, link string) error
}

// AuthService owns login tokens, sessions, and the admin check.
type AuthService struct {
	// DB is the GORM handle used for auth persistence.
	DB *gorm.DB
	// AdminEmail is the single configured admin address. The comparison is
	// case-sensitive.
	AdminEmail string
	// SiteURL is the public base URL used to build magic links.
	SiteURL string
	// Mailer delivers the sign-in link.
	Mailer MagicLinkMailer

	// TokenTTL bounds magic-link validity; SessionTTL bounds sessions.
	// Zero values fall back to 15 minutes and 24 hours respectively.
	TokenTTL   time.Duration
	SessionTTL time.Duration
}

func (s *AuthService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return 15 * time.Minute
}

func (s *AuthService) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return 24 * time.Hour
}

// RequestMagicLink mints a single-use token for email and mails the sign-in
// link. A link is sent to any address that asks; admin gating happens at
// session time, not here. Expired auth rows are pruned opportunistically.
func (s *AuthService) RequestMagicLink(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}

	now := time.Now().UTC()
	_ = repo.PruneAuth(ctx, s.DB, now) // best effort

	tok, err := repo.CreateLoginToken(ctx, s.DB, email, now.Add(s.tokenTTL()))
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/api/auth/callback?token=%s", strings.TrimRight(s.SiteURL, "/"), tok.ID)
	return s.Mailer.SendMagicLink(ctx, email, link)
}

// Redeem consumes a login token and establishes a session. Unknown, used,
// and expired tokens are all ErrTokenInvalid.
func (s *AuthService) Redeem(ctx context.Context, tokenID string) (*domain.Session, error) {
	now := time.Now().UTC()
	tok, err := repo.ConsumeLoginToken(ctx, s.DB, tokenID, now)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	return repo.CreateSession(ctx, s.DB, tok.Email, now.Add(s.sessionTTL()))
}

// Session resolves a session cookie value to a live session. A missing or
// expired session is (nil, nil): "no session" is a normal state, not an
// error.
func (s *AuthService) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, nil
	}
	sess, err := repo.GetSession(ctx, s.DB, sessionID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sess, nil
}

// SignOut deletes the session. Unknown sessions are a no-op.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return repo.DeleteSession(ctx, s.DB, sessionID)
}

// IsAdmin reports whether sess belongs to the configured admin. True iff the
// session exists and its email exactly equals AdminEmail.
func (s *AuthService) IsAdmin(sess *domain.Session) bool {
	return sess != nil && s.AdminEmail != "" && sess.Email == s.AdminEmail
}
