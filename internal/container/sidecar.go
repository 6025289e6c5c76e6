package container

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// sidecarStore keeps metadata items in a JSON companion file next to
// the data file, in the manner of GDAL's .aux.xml sidecars. The data
// file itself is never touched.
type sidecarStore struct {
	path   string
	format string
}

type sidecarDoc struct {
	Items map[string]string `json:"items"`
}

func newSidecar(path string) *sidecarStore {
	return &sidecarStore{path: path, format: FormatForPath(path)}
}

func (s *sidecarStore) sidecarPath() string {
	return s.path + ".aux.json"
}

func (s *sidecarStore) load() (map[string]string, error) {
	buf, err := os.ReadFile(s.sidecarPath())
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata sidecar for %s: %w", s.path, err)
	}
	var doc sidecarDoc
	if err := json.Unmarshal(buf, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse metadata sidecar for %s: %w", s.path, err)
	}
	if doc.Items == nil {
		doc.Items = map[string]string{}
	}
	return doc.Items, nil
}

func (s *sidecarStore) GetItem(name string) (string, bool, error) {
	items, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := items[name]
	return value, ok, nil
}

func (s *sidecarStore) SetItem(name, value string) error {
	items, err := s.load()
	if err != nil {
		return err
	}
	items[name] = value
	buf, err := json.MarshalIndent(sidecarDoc{Items: items}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata sidecar for %s: %w", s.path, err)
	}
	if err := os.WriteFile(s.sidecarPath(), buf, 0644); err != nil {
		return fmt.Errorf("failed to write metadata sidecar for %s: %w", s.path, err)
	}
	return nil
}

func (s *sidecarStore) Format() string { return s.format }

func (s *sidecarStore) Path() string { return s.path }

func (s *sidecarStore) FileList() []string { return nil }
