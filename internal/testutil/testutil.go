package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Workspace is a temporary directory of data files for testing
type Workspace struct {
	Dir string
	T   *testing.T
}

// NewWorkspace creates a new temporary workspace directory
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "prochist-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	return &Workspace{
		Dir: tmpDir,
		T:   t,
	}
}

// Cleanup removes the temporary workspace
func (w *Workspace) Cleanup() {
	w.T.Helper()
	if err := os.RemoveAll(w.Dir); err != nil {
		w.T.Errorf("failed to cleanup workspace: %v", err)
	}
}

// CreateFile writes a small data file into the workspace and returns
// its path
func (w *Workspace) CreateFile(name string) string {
	w.T.Helper()

	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, []byte("test raster payload\n"), 0644); err != nil {
		w.T.Fatalf("failed to create test file: %v", err)
	}
	return path
}

// CreateVRT writes a composite VRT file referencing the given
// component paths and returns its path
func (w *Workspace) CreateVRT(name string, components ...string) string {
	w.T.Helper()

	var b strings.Builder
	b.WriteString("<VRTDataset rasterXSize=\"100\" rasterYSize=\"100\">\n")
	b.WriteString("  <VRTRasterBand dataType=\"Byte\" band=\"1\">\n")
	for _, component := range components {
		b.WriteString("    <SimpleSource>\n")
		fmt.Fprintf(&b, "      <SourceFilename relativeToVRT=\"0\">%s</SourceFilename>\n", component)
		b.WriteString("    </SimpleSource>\n")
	}
	b.WriteString("  </VRTRasterBand>\n")
	b.WriteString("</VRTDataset>\n")

	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		w.T.Fatalf("failed to create test VRT: %v", err)
	}
	return path
}
