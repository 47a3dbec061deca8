package types

import (
	"fmt"
	"strings"
)

// ItemStatus classifies the outcome of a single ingested item.
type ItemStatus int

// Item outcomes.
const (
	// ItemProcessed means the asset was stored and its media record
	// reconciled.
	ItemProcessed ItemStatus = iota
	// ItemSkipped means the item was not actionable (empty label,
	// unresolved entity) and was deliberately passed over.
	ItemSkipped
	// ItemFailed means the item was actionable but a step failed.
	ItemFailed
)

// String returns a human-readable status name.
func (s ItemStatus) String() string {
	switch s {
	case ItemProcessed:
		return "processed"
	case ItemSkipped:
		return "skipped"
	case ItemFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ItemOutcome is the per-item result recorded in a batch report.
type ItemOutcome struct {
	// Index is the item's position in the batch input, so reports are
	// deterministic regardless of completion order.
	Index  int
	Label  string
	Status ItemStatus
	Tier   MatchTier
	Entity EntityID
	URL    string
	Reason string
	Err    error
}

// Report aggregates the outcomes of one ingestion batch. It is an immutable
// value built by folding per-item outcomes; the orchestrator never aborts a
// batch on individual failures, so a report always covers every item that was
// scheduled before cancellation.
type Report struct {
	Processed int
	Skipped   int
	Outcomes  []ItemOutcome
}

// Failures returns the outcomes that failed, in input order.
func (r *Report) Failures() []ItemOutcome {
	var failed []ItemOutcome
	for _, o := range r.Outcomes {
		if o.Status == ItemFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Failed returns the number of failed items.
func (r *Report) Failed() int {
	return len(r.Failures())
}

// Summary renders a short human-readable summary of the batch, listing every
// non-success item with its label and reason so operators can re-run just the
// failed subset.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "processed %d, skipped %d, failed %d\n",
		r.Processed, r.Skipped, r.Failed())
	for _, o := range r.Outcomes {
		if o.Status == ItemProcessed {
			continue
		}
		fmt.Fprintf(&b, "  %s %q: %s\n", o.Status, o.Label, o.Reason)
	}
	return b.String()
}
