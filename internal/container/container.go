// Package container abstracts the tagged key/value metadata slot of a
// data file: named string items with a per-format size ceiling, plus
// the component file list of composite formats.
package container

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pders01/prochist/internal/config"
)

// Store is one container file's metadata slot.
type Store interface {
	// GetItem returns the named item, reporting whether it is present.
	GetItem(name string) (string, bool, error)
	// SetItem writes the named item.
	SetItem(name, value string) error
	// Format identifies the container format (e.g. "GTiff", "VRT").
	Format() string
	// Path returns the container file's path.
	Path() string
	// FileList returns the component files of a composite container,
	// excluding the container itself. Empty for ordinary files.
	FileList() []string
}

// formatsByExt maps file extensions to container format identifiers.
var formatsByExt = map[string]string{
	".tif":  "GTiff",
	".tiff": "GTiff",
	".img":  "HFA",
	".kea":  "KEA",
	".vrt":  "VRT",
}

// sizeLimitsByFormat caps metadata item sizes, in bytes, for formats
// known to lose oversized values. The GTiff limit is actually
// mysteriously complicated, but this value covers it.
var sizeLimitsByFormat = map[string]int{
	"GTiff": 28000,
}

// Open opens the metadata store of an existing file, dispatching on
// its extension.
func Open(path string) (Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open container %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a container file", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".vrt") {
		return openVRT(path)
	}
	return newSidecar(path), nil
}

// FormatForPath returns the container format identifier for a path.
func FormatForPath(path string) string {
	if format, ok := formatsByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return format
	}
	return "Generic"
}

// SizeLimit returns the metadata size ceiling for a format, if it has
// one. Config entries under limits.<format> override the built-in
// table.
func SizeLimit(format string) (int, bool) {
	if override := config.SizeLimitOverride(format); override > 0 {
		return override, true
	}
	limit, ok := sizeLimitsByFormat[format]
	return limit, ok
}
