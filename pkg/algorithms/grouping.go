package algorithms

import (
	"sync"

	"github.com/cohortgraph/cohort/pkg/graph"
	"github.com/cohortgraph/cohort/pkg/parallel"
)

// Members materializes the identifier lists per community id. Communities
// are disjoint, so each one is resolved independently on the worker pool;
// every task writes only its own slot.
func Members(g *graph.Graph, labeling *Labeling, pool *parallel.WorkerPool) (map[int][]string, error) {
	slots := make([][]string, len(labeling.Communities))
	errs := make([]error, len(labeling.Communities))

	var wg sync.WaitGroup
	for _, community := range labeling.Communities {
		c := community
		wg.Add(1)
		task := func() {
			defer wg.Done()
			names := make([]string, 0, c.Size)
			for _, member := range c.Members {
				id, err := g.Identifier(member)
				if err != nil {
					errs[c.ID] = err
					return
				}
				names = append(names, id)
			}
			slots[c.ID] = names
		}
		if !pool.Submit(task) {
			task() // pool already closed, resolve inline
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	out := make(map[int][]string, len(slots))
	for id, names := range slots {
		out[id] = names
	}
	return out, nil
}

// IdentifierLabels flattens a labeling into the identifier -> community id
// mapping reported to callers.
func IdentifierLabels(g *graph.Graph, labeling *Labeling) (map[string]int, error) {
	out := make(map[string]int, len(labeling.NodeCommunity))
	for node, id := range labeling.NodeCommunity {
		name, err := g.Identifier(node)
		if err != nil {
			return nil, err
		}
		out[name] = id
	}
	return out, nil
}
