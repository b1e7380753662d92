package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/snappy"

	"github.com/cohortgraph/cohort/pkg/logging"
)

func TestOpen_PlainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "interactions.csv")
	if err := os.WriteFile(path, []byte("alice,bob,5\n"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	rc, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rc.Close()

	g, err := testBuilder(2).Build(context.Background(), rc)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("Expected 2 nodes, got %d", g.NodeCount())
	}
}

func TestOpen_SnappyRoundTrip(t *testing.T) {
	content := "alice,bob,5\nbob,alice,3\ncarol,dave,7\n"

	dir := t.TempDir()
	plain := filepath.Join(dir, "interactions.csv")
	compressed := filepath.Join(dir, "interactions.csv.snappy")

	if err := os.WriteFile(plain, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	f, err := os.Create(compressed)
	if err != nil {
		t.Fatalf("Failed to create compressed fixture: %v", err)
	}
	w := snappy.NewBufferedWriter(f)
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write compressed fixture: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close snappy writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close compressed fixture: %v", err)
	}

	b := NewBuilder(2, logging.NewNopLogger(), nil)

	buildFrom := func(path string) map[string]uint64 {
		t.Helper()
		rc, err := Open(path)
		if err != nil {
			t.Fatalf("Open(%s) failed: %v", path, err)
		}
		defer rc.Close()

		g, err := b.Build(context.Background(), rc)
		if err != nil {
			t.Fatalf("Build from %s failed: %v", path, err)
		}
		weights := make(map[string]uint64)
		for _, e := range g.Edges() {
			src, _ := g.Identifier(e.Source)
			dst, _ := g.Identifier(e.Target)
			weights[src+"->"+dst] = e.Weight
		}
		return weights
	}

	got := buildFrom(compressed)
	want := buildFrom(plain)

	if len(got) != len(want) {
		t.Fatalf("Edge sets differ: %v vs %v", got, want)
	}
	for k, w := range want {
		if got[k] != w {
			t.Errorf("edge %s: expected %d, got %d", k, w, got[k])
		}
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}
