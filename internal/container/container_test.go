package container

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pders01/prochist/internal/testutil"
	"github.com/spf13/viper"
)

func TestSidecarItems(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	defer ws.Cleanup()

	path := ws.CreateFile("tst.kea")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open container: %v", err)
	}

	if _, found, err := store.GetItem("ProcessingHistory"); err != nil || found {
		t.Errorf("expected absent item, got found=%v err=%v", found, err)
	}

	if err := store.SetItem("ProcessingHistory", "some value"); err != nil {
		t.Fatalf("failed to set item: %v", err)
	}
	if err := store.SetItem("Other", "other value"); err != nil {
		t.Fatalf("failed to set second item: %v", err)
	}

	// Items persist across a reopen
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("failed to reopen container: %v", err)
	}
	value, found, err := reopened.GetItem("ProcessingHistory")
	if err != nil || !found {
		t.Fatalf("item lost: found=%v err=%v", found, err)
	}
	if value != "some value" {
		t.Errorf("unexpected item value: %q", value)
	}
	if value, _, _ := reopened.GetItem("Other"); value != "other value" {
		t.Errorf("second item clobbered: %q", value)
	}

	if store.FileList() != nil {
		t.Errorf("ordinary file reported components: %v", store.FileList())
	}
}

func TestOpenMissingFile(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	defer ws.Cleanup()

	if _, err := Open(filepath.Join(ws.Dir, "nope.tif")); err == nil {
		t.Error("expected error opening missing file")
	}
	if _, err := Open(ws.Dir); err == nil {
		t.Error("expected error opening a directory")
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"x.tif", "GTiff"},
		{"x.TIFF", "GTiff"},
		{"x.img", "HFA"},
		{"x.kea", "KEA"},
		{"x.vrt", "VRT"},
		{"x.dat", "Generic"},
		{"noext", "Generic"},
	}
	for _, tt := range tests {
		if got := FormatForPath(tt.path); got != tt.want {
			t.Errorf("FormatForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSizeLimit(t *testing.T) {
	limit, ok := SizeLimit("GTiff")
	if !ok || limit != 28000 {
		t.Errorf("unexpected GTiff limit: %d %v", limit, ok)
	}
	if _, ok := SizeLimit("KEA"); ok {
		t.Error("KEA should have no limit")
	}

	viper.Set("limits.KEA", 1000)
	defer viper.Set("limits.KEA", 0)
	limit, ok = SizeLimit("KEA")
	if !ok || limit != 1000 {
		t.Errorf("config override ignored: %d %v", limit, ok)
	}
}

func TestVRTFileList(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	defer ws.Cleanup()

	band1 := ws.CreateFile("band1.kea")
	band2 := ws.CreateFile("band2.kea")
	// band1 referenced twice: duplicates must collapse
	vrt := ws.CreateVRT("mosaic.vrt", band1, band2, band1)

	store, err := Open(vrt)
	if err != nil {
		t.Fatalf("failed to open VRT: %v", err)
	}
	if store.Format() != "VRT" {
		t.Errorf("unexpected format: %q", store.Format())
	}

	components := store.FileList()
	if len(components) != 2 {
		t.Fatalf("unexpected component list: %v", components)
	}
	if components[0] != band1 || components[1] != band2 {
		t.Errorf("components out of order: %v", components)
	}
}

func TestVRTRelativeSource(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	defer ws.Cleanup()

	vrtXML := `<VRTDataset rasterXSize="10" rasterYSize="10">
  <VRTRasterBand dataType="Byte" band="1">
    <SimpleSource>
      <SourceFilename relativeToVRT="1">band1.kea</SourceFilename>
    </SimpleSource>
  </VRTRasterBand>
</VRTDataset>
`
	path := filepath.Join(ws.Dir, "rel.vrt")
	if err := os.WriteFile(path, []byte(vrtXML), 0644); err != nil {
		t.Fatalf("failed to write VRT: %v", err)
	}

	store, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open VRT: %v", err)
	}
	want := filepath.Join(ws.Dir, "band1.kea")
	components := store.FileList()
	if len(components) != 1 || components[0] != want {
		t.Errorf("relative source not resolved: %v", components)
	}
}

func TestVRTMalformed(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	defer ws.Cleanup()

	path := filepath.Join(ws.Dir, "bad.vrt")
	if err := os.WriteFile(path, []byte("<VRTDataset><unclosed"), 0644); err != nil {
		t.Fatalf("failed to write VRT: %v", err)
	}
	if _, err := Open(path); err == nil {
		t.Error("expected error for malformed VRT")
	}
}

func TestVRTItemsUseSidecar(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	defer ws.Cleanup()

	band := ws.CreateFile("band1.kea")
	vrt := ws.CreateVRT("mosaic.vrt", band)

	store, err := Open(vrt)
	if err != nil {
		t.Fatalf("failed to open VRT: %v", err)
	}
	if err := store.SetItem("ProcessingHistory", "history"); err != nil {
		t.Fatalf("failed to set item: %v", err)
	}
	if _, err := os.Stat(vrt + ".aux.json"); err != nil {
		t.Errorf("sidecar missing: %v", err)
	}

	// The VRT document itself stays untouched
	reopened, err := Open(vrt)
	if err != nil {
		t.Fatalf("failed to reopen VRT: %v", err)
	}
	if len(reopened.FileList()) != 1 {
		t.Errorf("component list damaged: %v", reopened.FileList())
	}
}
