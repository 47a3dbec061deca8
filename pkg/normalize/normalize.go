// Package normalize reduces free-text labels and registry names to comparable
// canonical forms. The same normalization is applied to both sides of every
// comparison, so matching is symmetric by construction.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// folder performs Unicode case folding for caseless comparison.
var folder = cases.Fold()

// Name reduces a label to its canonical comparable form: case folded, leading
// and trailing whitespace trimmed, internal whitespace runs collapsed to a
// single space. Name is total and idempotent.
func Name(s string) string {
	folded := folder.String(s)
	return strings.Join(strings.Fields(folded), " ")
}

// Slug reduces an entity name to a filesystem- and URL-safe storage segment:
// lower-cased, with every run of non-alphanumeric characters folded to a
// single underscore. Slugs are stable across runs, which is what makes
// storage keys deterministic.
func Slug(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(lower))
	pendingSep := false
	for _, r := range lower {
		if r > unicode.MaxASCII || (!unicode.IsLetter(r) && !unicode.IsDigit(r)) {
			if b.Len() > 0 {
				pendingSep = true
			}
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
