package repo

import (
	"context"
	"testing"
	"time"

	"github.com/CalebBennett-Harper/locus/internal/domain"
)

func TestSignupStats_Empty(t *testing.T) {
	db := newRepoDB(t, &domain.Signup{})
	stats, err := SignupStats(context.Background(), db)
	if err != nil {
		t.Fatalf("SignupStats: %v", err)
	}
	if stats != (domain.Stats{}) {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestSignupStats_Error_NoTable(t *testing.T) {
	db := newRepoDB(t /* no migrations */)
	if _, err := SignupStats(context.Background(), db); err == nil {
		t.Fatalf("expected error when table missing")
	}
}

func TestSignupStats_BucketsAndToday(t *testing.T) {
	db := newRepoDB(t, &domain.Signup{})

	now := time.Now()
	yesterday := now.Add(-48 * time.Hour)
	seed := []domain.Signup{
		{ID: "a", Name: "n", Email: "a@x.io", Occupation: "o", Age: 20, Status: domain.StatusPending, CreatedAt: now},
		{ID: "b", Name: "n", Email: "b@x.io", Occupation: "o", Age: 20, Status: domain.StatusPending, CreatedAt: yesterday},
		{ID: "c", Name: "n", Email: "c@x.io", Occupation: "o", Age: 20, Status: domain.StatusApproved, CreatedAt: yesterday},
		{ID: "d", Name: "n", Email: "d@x.io", Occupation: "o", Age: 20, Status: domain.StatusRejected, CreatedAt: now},
	}
	for _, s := range seed {
		if err := db.Create(&s).Error; err != nil {
			t.Fatalf("seed %s: %v", s.ID, err)
		}
	}

	stats, err := SignupStats(context.Background(), db)
	if err != nil {
		t.Fatalf("SignupStats: %v", err)
	}
	want := domain.Stats{Total: 4, Pending: 2, Approved: 1, Rejected: 1, TodaySignups: 2}
	if stats != want {
		t.Fatalf("got %+v want %+v", stats, want)
	}
}
