// Package search resolves feature names and drives search-to-highlight.
package search

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"campusmap/internal/geo"
)

// MatchMode decides how queries compare to display names
type MatchMode int

const (
	// MatchExact compares the query to the display name literally
	MatchExact MatchMode = iota
	// MatchFold compares after trimming, NFC normalization and case folding
	MatchFold
)

// String returns the config spelling of the mode
func (m MatchMode) String() string {
	if m == MatchFold {
		return "fold"
	}
	return "exact"
}

// ParseMatchMode parses "exact" or "fold"
func ParseMatchMode(raw string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "exact":
		return MatchExact, nil
	case "fold":
		return MatchFold, nil
	default:
		return MatchExact, eris.Errorf("search: unknown match mode %q", raw)
	}
}

func (m MatchMode) key(s string) string {
	if m == MatchExact {
		return s
	}
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

type entry struct {
	key     string
	feature *geo.Feature
}

// Index maps display names to features. It is derived from a feature list
// and can be rebuilt at any time.
type Index struct {
	mode    MatchMode
	byName  map[string]*geo.Feature // literal display names
	byKey   map[string]*geo.Feature // mode keys, first feature wins
	entries []entry                 // sorted by key, then name
}

// NewIndex builds an index. A literal display name always resolves to its
// own feature; when two names share a mode key the first feature in list
// order answers queries that only match the key.
func NewIndex(features []*geo.Feature, mode MatchMode) *Index {
	ix := &Index{
		mode:   mode,
		byName: make(map[string]*geo.Feature, len(features)),
		byKey:  make(map[string]*geo.Feature, len(features)),
	}
	for _, f := range features {
		if _, taken := ix.byName[f.Name]; taken {
			continue
		}
		ix.byName[f.Name] = f

		k := mode.key(f.Name)
		if _, taken := ix.byKey[k]; !taken {
			ix.byKey[k] = f
		}
		ix.entries = append(ix.entries, entry{key: k, feature: f})
	}
	sort.SliceStable(ix.entries, func(i, j int) bool {
		if ix.entries[i].key != ix.entries[j].key {
			return ix.entries[i].key < ix.entries[j].key
		}
		return ix.entries[i].feature.Name < ix.entries[j].feature.Name
	})
	return ix
}

// Lookup finds the feature whose display name matches query
func (ix *Index) Lookup(query string) (*geo.Feature, bool) {
	if f, ok := ix.byName[query]; ok {
		return f, true
	}
	f, ok := ix.byKey[ix.mode.key(query)]
	return f, ok
}

// Suggest returns up to limit display names starting with prefix, in key order
func (ix *Index) Suggest(prefix string, limit int) []string {
	p := ix.mode.key(prefix)
	if p == "" || limit <= 0 {
		return nil
	}

	start := sort.Search(len(ix.entries), func(i int) bool {
		return ix.entries[i].key >= p
	})

	var out []string
	for i := start; i < len(ix.entries) && len(out) < limit; i++ {
		if !strings.HasPrefix(ix.entries[i].key, p) {
			break
		}
		out = append(out, ix.entries[i].feature.Name)
	}
	return out
}

// Len returns the number of indexed names
func (ix *Index) Len() int {
	return len(ix.entries)
}
