package history

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/pders01/prochist/internal/container"
	"github.com/pders01/prochist/internal/harvest"
)

const (
	// ItemName is the metadata item holding the plain JSON history.
	ItemName = "ProcessingHistory"
	// ZippedItemName holds the deflate+base64 form, used only when the
	// plain form would exceed the destination format's size ceiling.
	// Exactly one of the two items is ever written; absence, not
	// emptiness, signals "not used".
	ZippedItemName = "ProcessingHistory_Zipped"
)

// harvestFields supplies the automatic per-write provenance fields.
// A package variable so tests can substitute deterministic fields.
var harvestFields = harvest.Fields

// NewHistory builds the full lineage for a write: harvested fields
// overlaid with the caller's fields at the root (caller fields win on
// collision), plus each parent's absorbed history in caller order.
func NewHistory(userFields Record, parents []string) (*Lineage, error) {
	fields := Record(harvestFields())
	for k, v := range userFields {
		fields[k] = v
	}
	l := NewLineage(fields)
	for _, parent := range parents {
		if err := l.AbsorbParent(parent); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// WriteHistory builds the processing history for the named destination
// file and stores it in the file's metadata slot.
func WriteHistory(userFields Record, parents []string, path string) error {
	if path == "" {
		return &HistoryError{Msg: "must supply a destination filename or open store"}
	}
	store, err := container.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open destination: %w", err)
	}
	return WriteHistoryToStore(userFields, parents, store)
}

// WriteHistoryToStore is WriteHistory against an already-open store.
func WriteHistoryToStore(userFields Record, parents []string, store container.Store) error {
	if store == nil {
		return &HistoryError{Msg: "must supply a destination filename or open store"}
	}
	if len(store.FileList()) > 0 && len(parents) > 0 {
		return &HistoryError{Msg: fmt.Sprintf(
			"composite file %s derives its parentage from its components; explicit parents are not allowed",
			store.Path())}
	}

	l, err := NewHistory(userFields, parents)
	if err != nil {
		return err
	}
	encoded, err := l.Encode()
	if err != nil {
		return err
	}

	name, value := ItemName, encoded
	if limit, limited := container.SizeLimit(store.Format()); limited {
		if len(value) > limit {
			zipped, err := deflate(value)
			if err != nil {
				return err
			}
			name, value = ZippedItemName, zipped
		}
		if len(value) > limit {
			return &SizeLimitError{Size: len(value), Format: store.Format(), Limit: limit}
		}
	}

	if err := store.SetItem(name, value); err != nil {
		return fmt.Errorf("failed to store history: %w", err)
	}
	return nil
}

// ReadHistory reads the processing history stored in the named file.
// A file with no stored history yields (nil, nil), not an error.
func ReadHistory(path string) (*Lineage, error) {
	if path == "" {
		return nil, &HistoryError{Msg: "must supply a source filename or open store"}
	}
	store, err := container.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return ReadHistoryFromStore(store)
}

// ReadHistoryFromStore is ReadHistory against an already-open store.
// For a composite container, every component file is absorbed as an
// implicit parent after the container's own stored history is loaded.
func ReadHistoryFromStore(store container.Store) (*Lineage, error) {
	if store == nil {
		return nil, &HistoryError{Msg: "must supply a source filename or open store"}
	}

	value, found, err := store.GetItem(ItemName)
	if err != nil {
		return nil, err
	}
	if !found {
		zipped, foundZipped, err := store.GetItem(ZippedItemName)
		if err != nil {
			return nil, err
		}
		if foundZipped {
			value, err = inflate(zipped)
			if err != nil {
				return nil, err
			}
			found = true
		}
	}

	components := store.FileList()
	var l *Lineage
	switch {
	case found:
		l, err = Decode(value)
		if err != nil {
			return nil, err
		}
	case len(components) > 0:
		// A composite defines its content by its components; give it an
		// empty root so their ancestry has somewhere to attach.
		l = NewLineage(Record{})
	default:
		return nil, nil
	}

	for _, component := range components {
		if _, err := os.Stat(component); err != nil {
			return nil, &MissingComponentError{Container: store.Path(), Component: component}
		}
		if err := l.AbsorbParent(component); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func deflate(s string) (string, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", fmt.Errorf("failed to compress history: %w", err)
	}
	if _, err := w.Write([]byte(s)); err != nil {
		return "", fmt.Errorf("failed to compress history: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to compress history: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func inflate(s string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("failed to decode compressed history: %w", err)
	}
	r, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to decompress history: %w", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to decompress history: %w", err)
	}
	return string(out), nil
}
