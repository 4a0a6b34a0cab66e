package utils

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator compares strings case-insensitively using locale-aware collation.
// It is safe for concurrent use.
type Collator struct {
	mu sync.Mutex
	c  *collate.Collator
}

// NewCollator returns a case and accent insensitive collator for the given
// BCP 47 tag; an invalid tag falls back to the root locale.
func NewCollator(tag string) *Collator {
	lang, err := language.Parse(tag)
	if err != nil {
		lang = language.Und
	}
	return &Collator{c: collate.New(lang, collate.IgnoreCase, collate.IgnoreDiacritics)}
}

// Compare returns -1, 0 or +1.
func (c *Collator) Compare(a, b string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.CompareString(a, b)
}

// Fold returns the case-folded form of s, suitable for prefix and substring tests.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// HasPrefixFold reports whether s begins with prefix, ignoring case.
func HasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(Fold(s), Fold(prefix))
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}
