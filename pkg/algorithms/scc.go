// Package algorithms computes the community partition of a finished
// interaction graph. A community is a maximal strongly connected component:
// every member can reach every other member following edge direction.
package algorithms

import "github.com/cohortgraph/cohort/pkg/graph"

// Community is one strongly connected component of the graph.
type Community struct {
	ID      int
	Members []graph.NodeIndex
	Size    int
}

// Labeling is the complete community partition: every node in the graph
// belongs to exactly one community.
type Labeling struct {
	Communities    []*Community
	NodeCommunity  map[graph.NodeIndex]int
	SingletonCount int
	Largest        *Community
}

// CondensationEdge represents a directed edge in the condensation DAG, where
// each community has been contracted to a single node.
type CondensationEdge struct {
	FromCommunity int
	ToCommunity   int
	EdgeCount     int
	TotalWeight   uint64
}

// tarjanState holds per-node state during Tarjan's DFS.
type tarjanState struct {
	index   int
	lowlink int
	onStack bool
}

// Label computes all communities using Tarjan's algorithm in O(V+E) time.
// Only outgoing edges are followed (directed graph semantics). The traversal
// is sequential and visits nodes in registration order, so identical graphs
// produce identical community ids. Community ids are dense, zero-based, and
// assigned in component-finalization order.
func Label(g *graph.Graph) *Labeling {
	nodeCount := g.NodeCount()

	state := make(map[graph.NodeIndex]*tarjanState, nodeCount)
	var stack []graph.NodeIndex
	indexCounter := 0
	var communities []*Community
	nodeCommunity := make(map[graph.NodeIndex]int, nodeCount)

	var strongconnect func(u graph.NodeIndex)
	strongconnect = func(u graph.NodeIndex) {
		state[u] = &tarjanState{
			index:   indexCounter,
			lowlink: indexCounter,
			onStack: true,
		}
		indexCounter++
		stack = append(stack, u)

		for _, edge := range g.Outgoing(u) {
			v := edge.Target
			if _, exists := state[v]; !exists {
				strongconnect(v)
				if state[v].lowlink < state[u].lowlink {
					state[u].lowlink = state[v].lowlink
				}
			} else if state[v].onStack {
				if state[v].index < state[u].lowlink {
					state[u].lowlink = state[v].index
				}
			}
		}

		// If u is a root node, pop the stack to form a community
		if state[u].lowlink == state[u].index {
			id := len(communities)
			var members []graph.NodeIndex
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				state[w].onStack = false
				members = append(members, w)
				nodeCommunity[w] = id
				if w == u {
					break
				}
			}

			communities = append(communities, &Community{
				ID:      id,
				Members: members,
				Size:    len(members),
			})
		}
	}

	for idx := graph.NodeIndex(0); int(idx) < nodeCount; idx++ {
		if _, exists := state[idx]; !exists {
			strongconnect(idx)
		}
	}

	var largest *Community
	singletonCount := 0
	for _, c := range communities {
		if c.Size == 1 {
			singletonCount++
		}
		if largest == nil || c.Size > largest.Size {
			largest = c
		}
	}

	return &Labeling{
		Communities:    communities,
		NodeCommunity:  nodeCommunity,
		SingletonCount: singletonCount,
		Largest:        largest,
	}
}

// Condensation builds the condensation DAG from a labeling. Each community
// becomes a single node; edges between communities are aggregated with their
// count and summed weight. Runs in O(E) over all original edges.
func Condensation(g *graph.Graph, labeling *Labeling) []CondensationEdge {
	type edgeKey struct{ from, to int }
	type agg struct {
		count  int
		weight uint64
	}
	sums := make(map[edgeKey]*agg)

	for node, id := range labeling.NodeCommunity {
		for _, edge := range g.Outgoing(node) {
			targetID, ok := labeling.NodeCommunity[edge.Target]
			if !ok {
				continue
			}
			if targetID == id {
				continue // intra-community edge
			}
			key := edgeKey{id, targetID}
			if a, ok := sums[key]; ok {
				a.count++
				a.weight += edge.Weight
			} else {
				sums[key] = &agg{count: 1, weight: edge.Weight}
			}
		}
	}

	result := make([]CondensationEdge, 0, len(sums))
	for key, a := range sums {
		result = append(result, CondensationEdge{
			FromCommunity: key.from,
			ToCommunity:   key.to,
			EdgeCount:     a.count,
			TotalWeight:   a.weight,
		})
	}

	return result
}
