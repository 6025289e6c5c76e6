package history

import "fmt"

// ResolveAncestor resolves a free-form ancestor reference to a single
// key in the lineage. The reference may be a full key literal or a
// plain filename; the literal form is tried first, a filename search
// second. Zero matches is a hard failure; multiple matches surface as
// an AmbiguousAncestorError rather than an arbitrary pick.
func (l *Lineage) ResolveAncestor(ancestor string) (Key, error) {
	if k, err := ParseKey(ancestor); err == nil {
		if _, ok := l.MetadataByKey[k]; ok {
			return k, nil
		}
	}

	matches := l.FindKeysByFile(ancestor)
	switch len(matches) {
	case 0:
		return Key{}, &HistoryError{Msg: fmt.Sprintf("ancestor %q not found", ancestor)}
	case 1:
		return matches[0], nil
	default:
		return Key{}, &AmbiguousAncestorError{Ancestor: ancestor, Matches: matches}
	}
}
