package history

import (
	"fmt"
	"path/filepath"
)

// AbsorbParent merges parentFile's entire stored history into l and
// records it as the next direct parent of the current file. Parents are
// absorbed in caller order and the root's parent list preserves it.
//
// A parent with no retrievable history is not an error: it is recorded
// as a placeholder edge (basename, UnknownTimestamp) with no record
// entry of its own. Filename equality is the only collision key, so two
// distinct missing-history parents sharing a basename collapse into one
// placeholder.
//
// The parent's lineage is consumed: l takes ownership of every entry.
func (l *Lineage) AbsorbParent(parentFile string) error {
	parent, err := ReadHistory(parentFile)
	if err != nil {
		return fmt.Errorf("failed to read history of parent %s: %w", parentFile, err)
	}

	base := filepath.Base(parentFile)
	if parent == nil {
		l.ParentsByKey[CurrentKey] = append(l.ParentsByKey[CurrentKey],
			Key{File: base, Timestamp: UnknownTimestamp})
		return nil
	}

	parentKey := Key{File: base, Timestamp: UnknownTimestamp}
	if ts, ok := parent.MetadataByKey[CurrentKey]["timestamp"].(string); ok && ts != "" {
		parentKey.Timestamp = ts
	}

	// Promote the parent's root to an ordinary entry, then take over
	// everything else. A key already present arrived through another
	// path of the DAG and names the same file version, so overwriting
	// is idempotent and never duplicates a parent list.
	l.MetadataByKey[parentKey] = parent.MetadataByKey[CurrentKey]
	l.ParentsByKey[parentKey] = parent.ParentsByKey[CurrentKey]
	delete(parent.MetadataByKey, CurrentKey)
	delete(parent.ParentsByKey, CurrentKey)
	for k, rec := range parent.MetadataByKey {
		l.MetadataByKey[k] = rec
	}
	for k, parents := range parent.ParentsByKey {
		l.ParentsByKey[k] = parents
	}

	l.ParentsByKey[CurrentKey] = append(l.ParentsByKey[CurrentKey], parentKey)
	return nil
}
