package history

import (
	"encoding/json"
	"fmt"
)

// Document is the persisted two-map form of a lineage. Keys are the
// canonical string renderings, since the transport format only supports
// string keys.
type Document struct {
	MetadataByKey map[string]Record   `json:"metadataByKey"`
	ParentsByKey  map[string][]string `json:"parentsByKey"`
}

// Document renders the lineage with string keys, ready for transport.
func (l *Lineage) Document() Document {
	doc := Document{
		MetadataByKey: make(map[string]Record, len(l.MetadataByKey)),
		ParentsByKey:  make(map[string][]string, len(l.ParentsByKey)),
	}
	for k, rec := range l.MetadataByKey {
		doc.MetadataByKey[k.String()] = rec
	}
	for k, parents := range l.ParentsByKey {
		rendered := make([]string, 0, len(parents))
		for _, p := range parents {
			rendered = append(rendered, p.String())
		}
		doc.ParentsByKey[k.String()] = rendered
	}
	return doc
}

// Encode serializes the lineage to its JSON transport string.
func (l *Lineage) Encode() (string, error) {
	buf, err := json.Marshal(l.Document())
	if err != nil {
		return "", fmt.Errorf("failed to encode history: %w", err)
	}
	return string(buf), nil
}

// Decode parses a transport string back into a lineage, recovering the
// tuple keys exactly. A key that fails to parse is corrupt history,
// never silently dropped.
func Decode(s string) (*Lineage, error) {
	var doc Document
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse stored history: %w", err)
	}

	l := &Lineage{
		MetadataByKey: make(map[Key]Record, len(doc.MetadataByKey)),
		ParentsByKey:  make(map[Key][]Key, len(doc.ParentsByKey)),
	}
	for ks, rec := range doc.MetadataByKey {
		k, err := ParseKey(ks)
		if err != nil {
			return nil, err
		}
		l.MetadataByKey[k] = rec
	}
	for ks, renderedParents := range doc.ParentsByKey {
		k, err := ParseKey(ks)
		if err != nil {
			return nil, err
		}
		parents := make([]Key, 0, len(renderedParents))
		for _, ps := range renderedParents {
			p, err := ParseKey(ps)
			if err != nil {
				return nil, err
			}
			parents = append(parents, p)
		}
		l.ParentsByKey[k] = parents
	}
	return l, nil
}
