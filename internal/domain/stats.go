// Package domain – waitlist statistics.
//
// Stats is the derived aggregate over the signup table. It is recomputed from
// a full scan on demand (see repo.SignupStats) and patched locally by the
// admin dashboard through the pure reducers below, so the conservation rules
// live in exactly one place instead of being re-derived at each call site.
package domain

// Stats holds the five aggregate counts shown on the admin dashboard.
// TodaySignups counts records whose CreatedAt falls on the same local
// calendar date as "now" at computation time.
type Stats struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Approved     int `json:"approved"`
	Rejected     int `json:"rejected"`
	TodaySignups int `json:"todaySignups"`
}

// bucket returns a pointer to the counter for status, or nil for an unknown
// status.
func (s *Stats) bucket(status string) *int {
	switch status {
	case StatusPending:
		return &s.Pending
	case StatusApproved:
		return &s.Approved
	case StatusRejected:
		return &s.Rejected
	}
	return nil
}

// ApplyStatusChange returns prev with the oldStatus bucket decremented and
// the newStatus bucket incremented. Total is unchanged: exactly one bucket
// moves by -1 and one other by +1. Unknown statuses and no-op transitions
// (oldStatus == newStatus) leave prev untouched.
func ApplyStatusChange(prev Stats, oldStatus, newStatus string) Stats {
	if oldStatus == newStatus {
		return prev
	}
	next := prev
	from := next.bucket(oldStatus)
	to := next.bucket(newStatus)
	if from == nil || to == nil {
		return prev
	}
	*from--
	*to++
	return next
}

// ApplyDelete returns prev with Total decremented and the bucket matching the
// deleted record's status decremented. Counters never go negative; a bucket
// already at zero stays at zero.
func ApplyDelete(prev Stats, status string) Stats {
	next := prev
	if next.Total > 0 {
		next.Total--
	}
	if b := next.bucket(status); b != nil && *b > 0 {
		*b--
	}
	return next
}
