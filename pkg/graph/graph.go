// Package graph holds the in-memory weighted directed interaction graph.
//
// A Graph owns the actor registry (identifier -> NodeIndex) and the edge set.
// Construction happens under concurrent writers; all mutation goes through
// Upsert, which serializes registry insertion and edge aggregation behind a
// single lock. Once construction finishes the graph is treated as immutable
// by downstream consumers (labeling, rendering).
package graph

import (
	"sort"
	"sync"
)

// NodeIndex is a dense, stable handle to a node for the lifetime of one
// graph. Indexes are assigned in first-seen order starting at 0.
type NodeIndex uint32

// Edge is a directed relation between two nodes carrying an accumulated
// weight. At most one Edge exists per ordered (Source, Target) pair.
type Edge struct {
	Source NodeIndex
	Target NodeIndex
	Weight uint64
}

// Graph is a weighted directed graph with deduplicated edges.
type Graph struct {
	mu          sync.Mutex
	registry    map[string]NodeIndex
	identifiers []string // NodeIndex -> identifier, inverse of registry
	outgoing    map[NodeIndex]map[NodeIndex]*Edge
	edgeCount   int
}

// Statistics summarizes graph size.
type Statistics struct {
	NodeCount int
	EdgeCount int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		registry: make(map[string]NodeIndex),
		outgoing: make(map[NodeIndex]map[NodeIndex]*Edge),
	}
}

// intern returns the NodeIndex for identifier, registering it if unseen.
// Caller must hold g.mu.
func (g *Graph) intern(identifier string) NodeIndex {
	if idx, ok := g.registry[identifier]; ok {
		return idx
	}
	idx := NodeIndex(len(g.identifiers))
	g.registry[identifier] = idx
	g.identifiers = append(g.identifiers, identifier)
	return idx
}

// Upsert records one interaction from source to target with the given
// weight. Both endpoints are registered on first sight; if an edge for the
// ordered pair already exists its weight is increased, otherwise the edge is
// created. The whole operation is one atomic unit, so concurrent callers can
// never produce two edges for the same ordered pair.
func (g *Graph) Upsert(source, target string, weight uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	from := g.intern(source)
	to := g.intern(target)

	targets, ok := g.outgoing[from]
	if !ok {
		targets = make(map[NodeIndex]*Edge)
		g.outgoing[from] = targets
	}
	if edge, ok := targets[to]; ok {
		edge.Weight += weight
		return
	}
	targets[to] = &Edge{Source: from, Target: to, Weight: weight}
	g.edgeCount++
}

// NodeCount returns the number of registered nodes.
func (g *Graph) NodeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.identifiers)
}

// EdgeCount returns the number of distinct ordered (source, target) pairs.
func (g *Graph) EdgeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.edgeCount
}

// Lookup returns the NodeIndex for an identifier, if registered.
func (g *Graph) Lookup(identifier string) (NodeIndex, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	idx, ok := g.registry[identifier]
	return idx, ok
}

// Identifier returns the identifier registered for idx.
func (g *Graph) Identifier(idx NodeIndex) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if int(idx) >= len(g.identifiers) {
		return "", InvalidIndexError("Identifier", idx)
	}
	return g.identifiers[idx], nil
}

// Identifiers returns all identifiers in NodeIndex order.
func (g *Graph) Identifiers() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.identifiers))
	copy(out, g.identifiers)
	return out
}

// Outgoing returns the edges leaving idx, ordered by target index so
// traversals over a fixed graph are deterministic. The returned slice is a
// snapshot; the Edge pointers are shared with the graph.
func (g *Graph) Outgoing(idx NodeIndex) []*Edge {
	g.mu.Lock()
	defer g.mu.Unlock()
	targets := g.outgoing[idx]
	if len(targets) == 0 {
		return nil
	}
	out := make([]*Edge, 0, len(targets))
	for _, e := range targets {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Target < out[j].Target })
	return out
}

// Edge returns the edge for the ordered (from, to) pair, if present.
func (g *Graph) Edge(from, to NodeIndex) (*Edge, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.outgoing[from][to]
	return e, ok
}

// Edges returns all edges in the graph.
func (g *Graph) Edges() []*Edge {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*Edge, 0, g.edgeCount)
	for _, targets := range g.outgoing {
		for _, e := range targets {
			out = append(out, e)
		}
	}
	return out
}

// GetStatistics returns node and edge counts.
func (g *Graph) GetStatistics() Statistics {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Statistics{NodeCount: len(g.identifiers), EdgeCount: g.edgeCount}
}
