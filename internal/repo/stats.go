// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the aggregate statistics query behind
// the admin dashboard counters.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/CalebBennett-Harper/locus/internal/domain"
)

// statRow is the projection used by SignupStats; fetching only status and
// created_at keeps the scan cheap even as the table grows.
type statRow struct {
	Status    string
	CreatedAt time.Time
}

// SignupStats computes the five dashboard aggregates with one full scan of
// status and created_at. Nothing is cached or incrementally maintained; the
// numbers are authoritative as of call time.
//
// TodaySignups counts rows whose CreatedAt falls on the same calendar date
// as now in the process's local time zone.
func SignupStats(ctx context.Context, db *gorm.DB) (domain.Stats, error) {
	var rows []statRow
	if err := db.WithContext(ctx).
		Model(&domain.Signup{}).
		Select("status", "created_at").
		Scan(&rows).Error; err != nil {
		return domain.Stats{}, err
	}

	now := time.Now()
	ty, tm, td := now.Date()

	stats := domain.Stats{Total: len(rows)}
	for _, r := range rows {
		switch r.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusApproved:
			stats.Approved++
		case domain.StatusRejected:
			stats.Rejected++
		}
		y, m, d := r.CreatedAt.In(now.Location()).Date()
		if y == ty && m == tm && d == td {
			stats.TodaySignups++
		}
	}
	return stats, nil
}
