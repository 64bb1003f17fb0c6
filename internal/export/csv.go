// Package export serializes waitlist signups to CSV. The column order is
// fixed and every field is double-quoted, matching what the dashboard's
// download button and the /api/export endpoint both produce.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/CalebBennett-Harper/locus/internal/domain"
)

// Headers is the fixed CSV column order.
var Headers = []string{"Name", "Email", "Occupation", "Age", "University", "Cities", "Status", "Created At", "Notes"}

// dateLayout renders timestamps the way the dashboard displays them.
const dateLayout = "Jan 2, 2006, 03:04 PM"

// FormatDate renders a record timestamp for display and export.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Filename returns the dated attachment name for a full export.
func Filename(now time.Time) string {
	return fmt.Sprintf("locus-waitlist-%s.csv", now.Format("2006-01-02"))
}

// CSV renders header plus one row per signup. Fields are always wrapped in
// double quotes; embedded quotes are doubled per RFC 4180.
func CSV(signups []domain.Signup) string {
	var b strings.Builder

	writeRow(&b, Headers)
	for _, s := range signups {
		writeRow(&b, []string{
			s.Name,
			s.Email,
			s.Occupation,
			strconv.Itoa(s.Age),
			s.University,
			s.Cities,
			s.Status,
			FormatDate(s.CreatedAt),
			s.Notes,
		})
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
