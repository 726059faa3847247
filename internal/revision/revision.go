// Package revision collapses revision-chained document numbers. Quote and
// order numbers encode a root plus an optional trailing revision marker
// ("100", "100R1", "100-R2", "100 REV3"); within one analysis scope only the
// highest revision per root counts.
package revision

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// revisionPattern captures the root before an optional separator run and a
// trailing R/REV marker with digits. Only R-style markers are recognized;
// suffixes like "100A" are whole roots of their own.
var revisionPattern = regexp.MustCompile(`^(.*?)[\s\-]*(?:R|REV)(\d+)$`)

// DocumentIdentity is the parsed form of a raw document number.
// A missing or unparsable revision marker reads as revision 0.
type DocumentIdentity struct {
	Root     string
	Revision int
}

// ParseID splits a raw document number into root and revision. The input is
// trimmed and upper-cased before matching. When the marker consumes the
// whole string (an input like "R5"), the original string is kept as the root
// with revision 0 so a bare marker never collapses against real documents.
func ParseID(raw string) DocumentIdentity {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return DocumentIdentity{Root: s}
	}

	m := revisionPattern.FindStringSubmatch(s)
	if m == nil {
		return DocumentIdentity{Root: s}
	}

	root := strings.TrimSpace(m[1])
	if root == "" {
		return DocumentIdentity{Root: s}
	}

	rev, err := strconv.Atoi(m[2])
	if err != nil {
		return DocumentIdentity{Root: s}
	}
	return DocumentIdentity{Root: root, Revision: rev}
}

// CollapseLatest filters a list of document numbers down to the latest
// revision per root, returning the kept positions in the caller's original
// order. Ties keep the first occurrence. It is a filter, not a transform:
// callers index their own rows with the result.
//
// Collapse per analysis scope, not globally: a document revised in a later
// month must still appear under its original month when that month is viewed
// in isolation.
func CollapseLatest(ids []string) []int {
	type winner struct {
		index    int
		revision int
	}

	best := make(map[string]winner, len(ids))
	for i, id := range ids {
		d := ParseID(id)
		w, ok := best[d.Root]
		if !ok || d.Revision > w.revision {
			best[d.Root] = winner{index: i, revision: d.Revision}
		}
	}

	kept := make([]int, 0, len(best))
	for _, w := range best {
		kept = append(kept, w.index)
	}
	sort.Ints(kept)
	return kept
}

// Filter applies CollapseLatest to any slice through an id accessor,
// preserving input order.
func Filter[T any](docs []T, id func(T) string) []T {
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = id(d)
	}
	kept := CollapseLatest(ids)
	out := make([]T, 0, len(kept))
	for _, i := range kept {
		out = append(out, docs[i])
	}
	return out
}
