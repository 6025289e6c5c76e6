package history

import (
	"errors"
	"testing"
)

func lookupFixture() *Lineage {
	l := NewLineage(Record{})
	unique := Key{File: "unique.tif", Timestamp: "2025-01-01 00:00:00+0000"}
	sharedOld := Key{File: "shared.tif", Timestamp: "2025-01-01 00:00:00+0000"}
	sharedNew := Key{File: "shared.tif", Timestamp: "2025-02-01 00:00:00+0000"}
	for _, k := range []Key{unique, sharedOld, sharedNew} {
		l.MetadataByKey[k] = Record{}
		l.ParentsByKey[k] = nil
	}
	return l
}

func TestResolveAncestorByFilename(t *testing.T) {
	l := lookupFixture()
	key, err := l.ResolveAncestor("unique.tif")
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	if key.File != "unique.tif" {
		t.Errorf("resolved wrong key: %v", key)
	}
}

func TestResolveAncestorByKeyLiteral(t *testing.T) {
	l := lookupFixture()
	want := Key{File: "shared.tif", Timestamp: "2025-02-01 00:00:00+0000"}
	key, err := l.ResolveAncestor(want.String())
	if err != nil {
		t.Fatalf("failed to resolve key literal: %v", err)
	}
	if key != want {
		t.Errorf("resolved wrong key: got %v, want %v", key, want)
	}
}

func TestResolveAncestorAmbiguous(t *testing.T) {
	l := lookupFixture()
	_, err := l.ResolveAncestor("shared.tif")
	var ambiguous *AmbiguousAncestorError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousAncestorError, got %v", err)
	}
	if len(ambiguous.Matches) != 2 {
		t.Errorf("expected both matches reported, got %v", ambiguous.Matches)
	}
}

func TestResolveAncestorNotFound(t *testing.T) {
	l := lookupFixture()
	_, err := l.ResolveAncestor("missing.tif")
	var herr *HistoryError
	if !errors.As(err, &herr) {
		t.Fatalf("expected HistoryError, got %v", err)
	}
}

func TestResolveAncestorLiteralNotInGraph(t *testing.T) {
	// A well-formed literal naming an absent version falls back to the
	// filename search, which also fails.
	l := lookupFixture()
	absent := Key{File: "missing.tif", Timestamp: "2025-01-01 00:00:00+0000"}
	if _, err := l.ResolveAncestor(absent.String()); err == nil {
		t.Error("expected lookup failure")
	}
}
