// Package render maps a labeled graph into a renderable description and
// serializes it for Graphviz.
package render

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cohortgraph/cohort/pkg/algorithms"
	"github.com/cohortgraph/cohort/pkg/graph"
)

// ErrPartitionViolation indicates a node present in the graph but absent
// from the labeling. The labeler guarantees completeness, so this is a
// defect, never an expected runtime condition.
var ErrPartitionViolation = errors.New("partition violation: node missing from labeling")

// NodeStyle describes one renderable node.
type NodeStyle struct {
	Identifier string
	Label      string
	FillColor  string
}

// EdgeStyle describes one renderable edge.
type EdgeStyle struct {
	Source string
	Target string
	Label  string
}

// Descriptor is the full renderable description of a labeled graph. It is
// derived data, rebuilt each run.
type Descriptor struct {
	Nodes []NodeStyle
	Edges []EdgeStyle
}

// CommunityColor returns the Graphviz HSV fill color for a community id.
// Hue steps by 60 degrees per id, wrapping at 360; saturation and lightness
// are fixed so two nodes share a color exactly when they share a community.
func CommunityColor(id int) string {
	hue := (id * 60) % 360
	return fmt.Sprintf("%.1f 0.5 0.7", float64(hue))
}

// Describe builds the render descriptor for a labeled graph. Nodes appear in
// registration order, edges in source-node order. A node without a community
// id fails the whole call with ErrPartitionViolation.
func Describe(g *graph.Graph, labeling *algorithms.Labeling) (*Descriptor, error) {
	nodeCount := g.NodeCount()

	desc := &Descriptor{
		Nodes: make([]NodeStyle, 0, nodeCount),
		Edges: make([]EdgeStyle, 0, g.EdgeCount()),
	}

	for idx := graph.NodeIndex(0); int(idx) < nodeCount; idx++ {
		identifier, err := g.Identifier(idx)
		if err != nil {
			return nil, err
		}
		communityID, ok := labeling.NodeCommunity[idx]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrPartitionViolation, identifier)
		}
		desc.Nodes = append(desc.Nodes, NodeStyle{
			Identifier: identifier,
			Label:      identifier,
			FillColor:  CommunityColor(communityID),
		})
	}

	for idx := graph.NodeIndex(0); int(idx) < nodeCount; idx++ {
		source, err := g.Identifier(idx)
		if err != nil {
			return nil, err
		}
		for _, edge := range g.Outgoing(idx) {
			target, err := g.Identifier(edge.Target)
			if err != nil {
				return nil, err
			}
			desc.Edges = append(desc.Edges, EdgeStyle{
				Source: source,
				Target: target,
				Label:  strconv.FormatUint(edge.Weight, 10),
			})
		}
	}

	return desc, nil
}
