// Package dashboard implements the admin review workflow: the in-memory
// list/stats pair a signed-in administrator works against, kept in sync with
// the store through optimistic local updates paired with authoritative
// reloads.
//
// A Workflow is owned by exactly one session goroutine; its methods must not
// be called concurrently. Load is the only method that fans out internally
// (list and stats are fetched in parallel) and it joins both fetches before
// returning. In-flight store calls are never canceled mid-way; a result that
// arrives for a workflow nobody holds anymore is simply discarded.
package dashboard

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/CalebBennett-Harper/locus/internal/domain"
	"github.com/CalebBennett-Harper/locus/internal/export"
)

// Store is the persistence surface the workflow drives. Implemented by
// services.WaitlistService.
type Store interface {
	List(ctx context.Context) ([]domain.Signup, error)
	UpdateStatus(ctx context.Context, id, status string, notes *string) (*domain.Signup, error)
	UpdateFull(ctx context.Context, rec *domain.Signup) (*domain.Signup, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (domain.Stats, error)
}

// Notifier surfaces transient, toast-style feedback to the administrator.
// There is no persistent error banner and no retry button; every failure is
// reported exactly once.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// StatusFilterAll disables status filtering.
const StatusFilterAll = "all"

// Workflow holds the dashboard's client-side state machine.
type Workflow struct {
	store  Store
	notify Notifier

	signups []domain.Signup
	stats   domain.Stats
	loading bool

	// updating marks rows with an action in flight. Actions on different
	// rows are independent and unordered relative to each other.
	updating map[string]bool

	searchTerm   string
	statusFilter string
}

// NewWorkflow returns a workflow in the loading state, ready for Load.
func NewWorkflow(store Store, notify Notifier) *Workflow {
	return &Workflow{
		store:        store,
		notify:       notify,
		loading:      true,
		updating:     make(map[string]bool),
		statusFilter: StatusFilterAll,
	}
}

// Load fetches the list and stats concurrently and enters the ready state.
// The two fetches fail independently: one failing raises a notification
// while the other still lands, so a partial view beats a blank screen.
func (w *Workflow) Load(ctx context.Context) {
	w.loading = true

	var (
		wg       sync.WaitGroup
		list     []domain.Signup
		listErr  error
		stats    domain.Stats
		statsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		list, listErr = w.store.List(ctx)
	}()
	go func() {
		defer wg.Done()
		stats, statsErr = w.store.Stats(ctx)
	}()
	wg.Wait()

	if listErr != nil {
		w.notify.Error("Failed to load signups")
	} else {
		w.signups = list
	}
	if statsErr != nil {
		w.notify.Error("Failed to load statistics")
	} else {
		w.stats = stats
	}
	w.loading = false
}

// Loading reports whether the initial list+stats fetch is still in flight.
func (w *Workflow) Loading() bool { return w.loading }

// Updating reports whether an action is in flight for the given row.
func (w *Workflow) Updating(id string) bool { return w.updating[id] }

// Signups returns the current unfiltered list, newest first.
func (w *Workflow) Signups() []domain.Signup { return w.signups }

// Stats returns the current aggregate counters.
func (w *Workflow) Stats() domain.Stats { return w.stats }

// UpdateStatus moves one row to newStatus. On success the local record is
// patched in place and the stats counters are adjusted through the pure
// reducer (one bucket down, one bucket up, total unchanged) with no full
// refetch. On failure local state is untouched. The row leaves the updating
// set in both outcomes.
func (w *Workflow) UpdateStatus(ctx context.Context, id, newStatus string) {
	w.updating[id] = true
	defer delete(w.updating, id)

	rec, err := w.store.UpdateStatus(ctx, id, newStatus, nil)
	if err != nil {
		w.notify.Error("Failed to update status")
		return
	}

	for i := range w.signups {
		if w.signups[i].ID == id {
			w.stats = domain.ApplyStatusChange(w.stats, w.signups[i].Status, rec.Status)
			w.signups[i] = *rec
			break
		}
	}
	w.notify.Success("Status updated to " + newStatus)
}

// UpdateFull replaces every mutable field of one record. A full edit can
// change status as a side effect, so success triggers an authoritative
// reload of list and stats rather than local patching.
func (w *Workflow) UpdateFull(ctx context.Context, rec *domain.Signup) {
	w.updating[rec.ID] = true
	_, err := w.store.UpdateFull(ctx, rec)
	delete(w.updating, rec.ID)
	if err != nil {
		w.notify.Error("Failed to update signup: " + err.Error())
		return
	}
	w.Load(ctx)
	w.notify.Success("Signup updated successfully")
}

// Delete removes one record. On success the row leaves the local list and
// the stats lose one from the total and one from the bucket matching the
// record's pre-delete status (floored at zero). On failure the list is left
// unchanged.
func (w *Workflow) Delete(ctx context.Context, rec domain.Signup) {
	w.updating[rec.ID] = true
	defer delete(w.updating, rec.ID)

	if err := w.store.Delete(ctx, rec.ID); err != nil {
		w.notify.Error("Failed to delete signup: " + err.Error())
		return
	}

	kept := w.signups[:0]
	for _, s := range w.signups {
		if s.ID != rec.ID {
			kept = append(kept, s)
		}
	}
	w.signups = kept
	w.stats = domain.ApplyDelete(w.stats, rec.Status)
	w.notify.Success("Signup deleted")
}

// SetSearch updates the local search term. Filtering is purely derived
// state; nothing is persisted or refetched.
func (w *Workflow) SetSearch(term string) { w.searchTerm = term }

// SetStatusFilter updates the status filter; empty means "all".
func (w *Workflow) SetStatusFilter(f string) {
	if f == "" {
		f = StatusFilterAll
	}
	w.statusFilter = f
}

// Filtered returns the rows matching the current search term (case-folded
// substring over name, email, and occupation) and status filter.
func (w *Workflow) Filtered() []domain.Signup {
	term := fold(strings.TrimSpace(w.searchTerm))
	out := make([]domain.Signup, 0, len(w.signups))
	for _, s := range w.signups {
		if term != "" &&
			!strings.Contains(fold(s.Name), term) &&
			!strings.Contains(fold(s.Email), term) &&
			!strings.Contains(fold(s.Occupation), term) {
			continue
		}
		if w.statusFilter != StatusFilterAll && s.Status != w.statusFilter {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ExportCSV serializes the currently filtered view, not the full set, in
// the fixed export column order.
func (w *Workflow) ExportCSV() string {
	return export.CSV(w.Filtered())
}

// fold lower-cases s with full Unicode case folding so the search predicate
// is case-insensitive beyond ASCII.
func fold(s string) string {
	return cases.Fold().String(s)
}
