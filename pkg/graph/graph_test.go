package graph

import (
	"fmt"
	"sync"
	"testing"
)

func TestUpsert_RegistersNodesFirstSeen(t *testing.T) {
	g := New()
	g.Upsert("alice", "bob", 5)

	if g.NodeCount() != 2 {
		t.Fatalf("Expected 2 nodes, got %d", g.NodeCount())
	}

	alice, ok := g.Lookup("alice")
	if !ok {
		t.Fatal("alice not registered")
	}
	bob, ok := g.Lookup("bob")
	if !ok {
		t.Fatal("bob not registered")
	}
	if alice == bob {
		t.Error("alice and bob should have distinct indexes")
	}

	// Re-registration reuses the index
	g.Upsert("alice", "carol", 1)
	alice2, _ := g.Lookup("alice")
	if alice2 != alice {
		t.Errorf("alice index changed on second sighting: %d vs %d", alice2, alice)
	}
}

func TestUpsert_AggregatesRepeatedPairs(t *testing.T) {
	g := New()
	g.Upsert("x", "y", 2)
	g.Upsert("x", "y", 3)

	if g.EdgeCount() != 1 {
		t.Fatalf("Expected 1 edge, got %d", g.EdgeCount())
	}

	x, _ := g.Lookup("x")
	y, _ := g.Lookup("y")
	edge, ok := g.Edge(x, y)
	if !ok {
		t.Fatal("edge x->y missing")
	}
	if edge.Weight != 5 {
		t.Errorf("Expected weight 5, got %d", edge.Weight)
	}
}

func TestUpsert_DirectionMatters(t *testing.T) {
	g := New()
	g.Upsert("a", "b", 1)
	g.Upsert("b", "a", 1)

	if g.EdgeCount() != 2 {
		t.Errorf("Expected 2 edges for opposite directions, got %d", g.EdgeCount())
	}
}

func TestUpsert_SelfLoop(t *testing.T) {
	g := New()
	g.Upsert("a", "a", 4)

	if g.NodeCount() != 1 {
		t.Errorf("Expected 1 node, got %d", g.NodeCount())
	}
	a, _ := g.Lookup("a")
	edge, ok := g.Edge(a, a)
	if !ok {
		t.Fatal("self loop missing")
	}
	if edge.Weight != 4 {
		t.Errorf("Expected weight 4, got %d", edge.Weight)
	}
}

func TestIdentifier_RoundTrip(t *testing.T) {
	g := New()
	g.Upsert("alice", "bob", 1)

	for _, name := range []string{"alice", "bob"} {
		idx, ok := g.Lookup(name)
		if !ok {
			t.Fatalf("%s not registered", name)
		}
		got, err := g.Identifier(idx)
		if err != nil {
			t.Fatalf("Identifier(%d) failed: %v", idx, err)
		}
		if got != name {
			t.Errorf("Expected %q, got %q", name, got)
		}
	}
}

func TestIdentifier_InvalidIndex(t *testing.T) {
	g := New()
	_, err := g.Identifier(NodeIndex(7))
	if err == nil {
		t.Fatal("Expected error for unknown index")
	}
	if !IsNotFound(err) {
		t.Errorf("Expected a not-found error, got %v", err)
	}
}

func TestUpsert_ConcurrentAggregation(t *testing.T) {
	g := New()

	const writers = 8
	const perWriter = 250

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				g.Upsert("hub", fmt.Sprintf("user%d", i%10), 2)
			}
		}()
	}
	wg.Wait()

	// 10 distinct targets, each written writers*perWriter/10 times with weight 2
	if g.EdgeCount() != 10 {
		t.Fatalf("Expected 10 edges, got %d", g.EdgeCount())
	}
	hub, _ := g.Lookup("hub")
	want := uint64(writers * perWriter / 10 * 2)
	for i := 0; i < 10; i++ {
		target, ok := g.Lookup(fmt.Sprintf("user%d", i))
		if !ok {
			t.Fatalf("user%d not registered", i)
		}
		edge, ok := g.Edge(hub, target)
		if !ok {
			t.Fatalf("edge hub->user%d missing", i)
		}
		if edge.Weight != want {
			t.Errorf("edge hub->user%d: expected weight %d, got %d", i, want, edge.Weight)
		}
	}
}

func TestOutgoing_SnapshotContents(t *testing.T) {
	g := New()
	g.Upsert("a", "b", 1)
	g.Upsert("a", "c", 2)
	g.Upsert("b", "c", 3)

	a, _ := g.Lookup("a")
	edges := g.Outgoing(a)
	if len(edges) != 2 {
		t.Fatalf("Expected 2 outgoing edges from a, got %d", len(edges))
	}
	for _, e := range edges {
		if e.Source != a {
			t.Errorf("edge source should be a (%d), got %d", a, e.Source)
		}
	}
}
