package types

// MatchTier records the confidence tier a label resolved at. Lower values are
// higher confidence; tiers are tried strictly in order and the first hit wins.
type MatchTier int

// Match tiers, highest confidence first.
const (
	// TierNone means no tier matched; the label is unresolved.
	TierNone MatchTier = iota
	// TierExactCanonical is an exact match on the canonical name.
	TierExactCanonical
	// TierExactTrade is an exact match on the trade name.
	TierExactTrade
	// TierPartialCanonical is a substring match against the canonical name,
	// in either direction.
	TierPartialCanonical
	// TierPartialTrade is a substring match against the trade name, in
	// either direction.
	TierPartialTrade
)

// String returns a human-readable tier name for logs and reports.
func (t MatchTier) String() string {
	switch t {
	case TierExactCanonical:
		return "exact"
	case TierExactTrade:
		return "exact-trade"
	case TierPartialCanonical:
		return "partial"
	case TierPartialTrade:
		return "partial-trade"
	default:
		return "none"
	}
}

// Exact reports whether the tier is one of the exact tiers.
func (t MatchTier) Exact() bool {
	return t == TierExactCanonical || t == TierExactTrade
}

// Partial reports whether the tier is one of the low-confidence substring
// tiers. Callers should log partial matches for audit.
func (t MatchTier) Partial() bool {
	return t == TierPartialCanonical || t == TierPartialTrade
}

// Match is the ephemeral output of resolving a label against the registry.
// It is never persisted.
type Match struct {
	Entity *Entity
	Tier   MatchTier

	// Ambiguous is set when more than one entity matched at the winning
	// tier. The match itself is still deterministic (first in registry
	// iteration order) but callers should surface a warning.
	Ambiguous bool
}

// Resolved reports whether the label matched any entity.
func (m Match) Resolved() bool {
	return m.Tier != TierNone && m.Entity != nil
}
