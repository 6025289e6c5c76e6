package container

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// vrtStore is a composite container: a VRT document that builds its
// content purely by reference to component files. Metadata items live
// in the usual sidecar; the component list comes from the XML.
type vrtStore struct {
	sidecarStore
	components []string
}

type vrtSource struct {
	RelativeToVRT int    `xml:"relativeToVRT,attr"`
	Path          string `xml:",chardata"`
}

func openVRT(path string) (*vrtStore, error) {
	sources, err := parseVRTSources(path)
	if err != nil {
		return nil, err
	}

	// Self-references are excluded and duplicates collapsed; a band
	// stack commonly lists the same source file several times.
	own := filepath.Clean(path)
	seen := map[string]bool{}
	var components []string
	for _, source := range sources {
		source = filepath.Clean(source)
		if source == own || seen[source] {
			continue
		}
		seen[source] = true
		components = append(components, source)
	}

	return &vrtStore{sidecarStore: *newSidecar(path), components: components}, nil
}

// parseVRTSources extracts every SourceFilename element, resolving
// relative entries against the VRT's own directory.
func parseVRTSources(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open VRT %s: %w", path, err)
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	var sources []string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse VRT %s: %w", path, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "SourceFilename" {
			continue
		}
		var source vrtSource
		if err := dec.DecodeElement(&source, &start); err != nil {
			return nil, fmt.Errorf("failed to parse VRT %s: %w", path, err)
		}
		name := strings.TrimSpace(source.Path)
		if name == "" {
			continue
		}
		if source.RelativeToVRT == 1 || !filepath.IsAbs(name) {
			name = filepath.Join(filepath.Dir(path), name)
		}
		sources = append(sources, name)
	}
	return sources, nil
}

func (v *vrtStore) FileList() []string { return v.components }
