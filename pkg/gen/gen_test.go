package gen

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/cohortgraph/cohort/pkg/ingest"
	"github.com/cohortgraph/cohort/pkg/logging"
	"github.com/cohortgraph/cohort/pkg/parallel"
)

func TestUniqueBatch_AllDistinct(t *testing.T) {
	pool := parallel.NewWorkerPool(4, logging.NewNopLogger())
	defer pool.Close()

	names := NewUsernameGenerator(7).UniqueBatch(500, pool)
	if len(names) != 500 {
		t.Fatalf("Expected 500 names, got %d", len(names))
	}

	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			t.Errorf("Duplicate username %q", n)
		}
		seen[n] = struct{}{}
	}
}

func TestUniqueBatch_ReproducibleForSeed(t *testing.T) {
	poolA := parallel.NewWorkerPool(4, logging.NewNopLogger())
	defer poolA.Close()
	poolB := parallel.NewWorkerPool(4, logging.NewNopLogger())
	defer poolB.Close()

	a := NewUsernameGenerator(99).UniqueBatch(200, poolA)
	b := NewUsernameGenerator(99).UniqueBatch(200, poolB)

	if len(a) != len(b) {
		t.Fatalf("Batch sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Batches diverge at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestUniqueBatch_ZeroCount(t *testing.T) {
	pool := parallel.NewWorkerPool(2, logging.NewNopLogger())
	defer pool.Close()

	if names := NewUsernameGenerator(1).UniqueBatch(0, pool); names != nil {
		t.Errorf("Expected nil batch for zero count, got %v", names)
	}
}

func TestWriteInteractionLog_RowShape(t *testing.T) {
	var buf bytes.Buffer
	users := []string{"darkmage1", "bluewizard2", "goldqueen3"}
	rng := rand.New(rand.NewSource(5))

	if err := WriteInteractionLog(&buf, users, 50, rng); err != nil {
		t.Fatalf("WriteInteractionLog failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 50 {
		t.Fatalf("Expected 50 rows, got %d", len(lines))
	}
	known := map[string]bool{"darkmage1": true, "bluewizard2": true, "goldqueen3": true}
	for _, line := range lines {
		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			t.Fatalf("Expected 3 fields, got %d in %q", len(fields), line)
		}
		if !known[fields[0]] || !known[fields[1]] {
			t.Errorf("Row references unknown user: %q", line)
		}
	}
}

func TestWriteInteractionLog_NoUsers(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteInteractionLog(&buf, nil, 10, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("Expected error when no users are given")
	}
}

func TestGeneratedLog_FeedsBuilder(t *testing.T) {
	pool := parallel.NewWorkerPool(4, logging.NewNopLogger())
	defer pool.Close()

	users := NewUsernameGenerator(3).UniqueBatch(40, pool)

	var buf bytes.Buffer
	rng := rand.New(rand.NewSource(3))
	if err := WriteInteractionLog(&buf, users, 300, rng); err != nil {
		t.Fatalf("WriteInteractionLog failed: %v", err)
	}

	b := ingest.NewBuilder(4, logging.NewNopLogger(), nil)
	g, err := b.Build(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Generated log must always build cleanly: %v", err)
	}
	if g.NodeCount() == 0 || g.NodeCount() > 40 {
		t.Errorf("Unexpected node count %d", g.NodeCount())
	}
}
