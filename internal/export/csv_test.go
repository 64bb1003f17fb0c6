package export

import (
	"strings"
	"testing"
	"time"

	"github.com/CalebBennett-Harper/locus/internal/domain"
)

func TestCSV_HeaderOnlyWhenEmpty(t *testing.T) {
	got := CSV(nil)
	want := `"Name","Email","Occupation","Age","University","Cities","Status","Created At","Notes"`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCSV_NPlusOneLines(t *testing.T) {
	signups := []domain.Signup{
		{Name: "A", Email: "a@x.io", Occupation: "o", Age: 20, Status: domain.StatusPending, CreatedAt: time.Now()},
		{Name: "B", Email: "b@x.io", Occupation: "o", Age: 21, Status: domain.StatusApproved, CreatedAt: time.Now()},
		{Name: "C", Email: "c@x.io", Occupation: "o", Age: 22, Status: domain.StatusRejected, CreatedAt: time.Now()},
	}
	lines := strings.Split(CSV(signups), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
}

func TestCSV_RowContent(t *testing.T) {
	created := time.Date(2025, 6, 15, 14, 5, 0, 0, time.UTC)
	s := domain.Signup{
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Occupation: "Engineer",
		Age:        21,
		University: "Cambridge",
		Cities:     "London, Paris",
		Status:     domain.StatusPending,
		Notes:      "first batch",
		CreatedAt:  created,
	}

	lines := strings.Split(CSV([]domain.Signup{s}), "\n")
	want := `"Ada Lovelace","ada@example.com","Engineer","21","Cambridge","London, Paris","pending","Jun 15, 2025, 02:05 PM","first batch"`
	if lines[1] != want {
		t.Fatalf("row mismatch:\n got %s\nwant %s", lines[1], want)
	}
}

func TestCSV_EveryFieldQuoted(t *testing.T) {
	s := domain.Signup{Name: "A", Email: "a@x.io", Occupation: "o", Age: 19, Status: domain.StatusPending, CreatedAt: time.Now()}
	row := strings.Split(CSV([]domain.Signup{s}), "\n")[1]
	fields := strings.Split(row, `","`)
	if len(fields) != len(Headers) {
		t.Fatalf("expected %d fields, got %d: %s", len(Headers), len(fields), row)
	}
	if !strings.HasPrefix(row, `"`) || !strings.HasSuffix(row, `"`) {
		t.Fatalf("fields must be double-quoted: %s", row)
	}
}

func TestCSV_EscapesEmbeddedQuotes(t *testing.T) {
	s := domain.Signup{Name: `Ada "The Countess" L`, Email: "a@x.io", Occupation: "o", Age: 19, Status: domain.StatusPending, CreatedAt: time.Now()}
	out := CSV([]domain.Signup{s})
	if !strings.Contains(out, `"Ada ""The Countess"" L"`) {
		t.Fatalf("embedded quotes must be doubled: %s", out)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	if got := Filename(now); got != "locus-waitlist-2025-03-07.csv" {
		t.Fatalf("unexpected filename: %s", got)
	}
}
