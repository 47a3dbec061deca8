// Package resolve matches scraped free-text labels against the entity
// registry using a tiered policy: exact canonical name, exact trade name,
// then permissive substring matches against each. The first tier that finds a
// candidate wins and lower tiers are never consulted.
package resolve

import (
	"strings"

	"github.com/brandmap/brandmap/pkg/errors"
	"github.com/brandmap/brandmap/pkg/normalize"
	"github.com/brandmap/brandmap/pkg/types"
)

// MinLabelLength is the shortest label worth resolving. Scraped alt text
// below this length is navigation chrome, not a company name.
const MinLabelLength = 3

// Resolver matches labels against a fixed snapshot of active entities.
// A Resolver is immutable after construction and safe for concurrent use, so
// a batch can share one snapshot instead of re-reading the registry per item.
type Resolver struct {
	entities []types.Entity

	// Normalized name pairs, computed once. canonical[i] and trade[i]
	// correspond to entities[i]; trade[i] is empty when the entity has no
	// trade name.
	canonical []string
	trade     []string
}

// New creates a resolver over the given entities. Inactive entities are
// excluded from matching entirely. Registry iteration order is preserved,
// which is what makes ambiguous-match tie-breaking deterministic.
func New(entities []types.Entity) *Resolver {
	r := &Resolver{}
	for _, e := range entities {
		if !e.Active {
			continue
		}
		r.entities = append(r.entities, e)
		r.canonical = append(r.canonical, normalize.Name(e.CanonicalName))
		if e.TradeName != "" {
			r.trade = append(r.trade, normalize.Name(e.TradeName))
		} else {
			r.trade = append(r.trade, "")
		}
	}
	return r
}

// Len returns the number of active entities in the snapshot.
func (r *Resolver) Len() int {
	return len(r.entities)
}

// Resolve matches a label against the snapshot. The returned Match has
// TierNone when nothing matched. When more than one entity matches at the
// winning exact tier the first candidate wins and Match.Ambiguous is set; the
// second return value then carries an AmbiguousMatchError for the caller to
// log. Partial tiers are intentionally permissive in both directions ("aws"
// matches "aws philippines inc" and vice versa) and are flagged by their tier
// so low-confidence matches can be audited.
func (r *Resolver) Resolve(label string) (types.Match, *errors.AmbiguousMatchError) {
	name := normalize.Name(label)
	if name == "" {
		return types.Match{}, nil
	}

	// Tier 1: exact canonical match.
	if m, warn := r.exact(name, r.canonical, types.TierExactCanonical); m.Resolved() {
		return m, warn
	}
	// Tier 2: exact trade-name match.
	if m, warn := r.exact(name, r.trade, types.TierExactTrade); m.Resolved() {
		return m, warn
	}
	// Tier 3: partial canonical match, substring in either direction.
	if m := r.partial(name, r.canonical, types.TierPartialCanonical); m.Resolved() {
		return m, nil
	}
	// Tier 4: partial trade-name match.
	if m := r.partial(name, r.trade, types.TierPartialTrade); m.Resolved() {
		return m, nil
	}

	return types.Match{}, nil
}

// exact finds all entities whose normalized name equals the label. The first
// hit wins; additional hits make the match ambiguous.
func (r *Resolver) exact(name string, names []string, tier types.MatchTier) (types.Match, *errors.AmbiguousMatchError) {
	first := -1
	var candidates []string
	for i, n := range names {
		if n == "" || n != name {
			continue
		}
		if first < 0 {
			first = i
		}
		candidates = append(candidates, r.entities[i].CanonicalName)
	}

	if first < 0 {
		return types.Match{}, nil
	}

	match := types.Match{
		Entity:    &r.entities[first],
		Tier:      tier,
		Ambiguous: len(candidates) > 1,
	}
	if !match.Ambiguous {
		return match, nil
	}
	return match, &errors.AmbiguousMatchError{Label: name, Candidates: candidates}
}

// partial finds the first entity whose normalized name contains the label or
// is contained by it.
func (r *Resolver) partial(name string, names []string, tier types.MatchTier) types.Match {
	for i, n := range names {
		if n == "" {
			continue
		}
		if strings.Contains(n, name) || strings.Contains(name, n) {
			return types.Match{Entity: &r.entities[i], Tier: tier}
		}
	}
	return types.Match{}
}

// Resolvable reports whether a scraped label is worth resolving at all.
// Empty and very short labels are skipped rather than matched.
func Resolvable(label string) bool {
	return len(strings.TrimSpace(label)) >= MinLabelLength
}
