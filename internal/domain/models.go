// Package domain defines the persistence models for waitlist signups and the
// magic-link auth records (login tokens and sessions). These types are mapped
// with GORM and form the core data layer of the Locus backend.
package domain

import (
	"time"
)

// Signup statuses. A signup is always in exactly one of these states; new
// records start as pending and are moved by an administrator.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidStatus reports whether s is one of the three enumerated statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Signup represents one waitlist application and its review state.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name / Email / Occupation / Age: required at creation; Email is unique
//     across the table and a duplicate insert fails at the constraint.
//   - University / Cities / LinkedinURL / Notes: optional free-text fields.
//   - Status: pending | approved | rejected (enforced by DB constraint).
//   - CreatedAt: set once at creation; never updated afterwards.
//   - UpdatedAt: timestamp managed by GORM.
//
// Age is constrained to [18,25] by the validator at submission time; the
// store does not re-check it.
type Signup struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name"         gorm:"type:varchar(255);not null"`
	Email       string    `json:"email"        gorm:"type:varchar(255);not null;uniqueIndex:ux_signups_email"`
	Occupation  string    `json:"occupation"   gorm:"type:varchar(255);not null"`
	Age         int       `json:"age"          gorm:"not null"`
	University  string    `json:"university,omitempty"   gorm:"type:varchar(255)"`
	Cities      string    `json:"cities,omitempty"       gorm:"type:text"`
	LinkedinURL string    `json:"linkedin_url,omitempty" gorm:"type:varchar(512)"`
	Notes       string    `json:"notes,omitempty"        gorm:"type:text"`
	Status      string    `json:"status"       gorm:"type:varchar(16);not null;default:'pending';check:status IN ('pending','approved','rejected')"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Signup.
func (Signup) TableName() string { return "waitlist_signups" }

// LoginToken is a single-use magic-link token emailed to a would-be admin.
// Redeeming the token consumes it; expired or consumed tokens are rejected.
type LoginToken struct {
	ID         string     `json:"id"          gorm:"type:char(36);primaryKey"`
	Email      string     `json:"email"       gorm:"type:varchar(255);not null;index"`
	ExpiresAt  time.Time  `json:"expires_at"  gorm:"not null"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName returns the database table name for LoginToken.
func (LoginToken) TableName() string { return "login_tokens" }

// Session is an authenticated browser session established by redeeming a
// login token. The session ID doubles as the cookie value.
type Session struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Email     string    `json:"email"      gorm:"type:varchar(255);not null;index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Session.
func (Session) TableName() string { return "sessions" }
