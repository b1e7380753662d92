package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cohortgraph/cohort/pkg/algorithms"
	"github.com/cohortgraph/cohort/pkg/graph"
	"github.com/cohortgraph/cohort/pkg/logging"
	"github.com/cohortgraph/cohort/pkg/parallel"
	"github.com/cohortgraph/cohort/pkg/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginTop(1)

	statsStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 2)

	communityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	memberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// maxListedMembers caps how many identifiers are printed per community.
const maxListedMembers = 8

// printReport writes the styled community summary to stdout.
func printReport(g *graph.Graph, labeling *algorithms.Labeling, logger logging.Logger) error {
	pool := parallel.NewWorkerPool(0, logger)
	defer pool.Close()

	members, err := algorithms.Members(g, labeling, pool)
	if err != nil {
		return err
	}

	stats := g.GetStatistics()
	fmt.Println(titleStyle.Render(fmt.Sprintf("Detected %d communities", len(labeling.Communities))))
	fmt.Println(statsStyle.Render(fmt.Sprintf(
		"nodes: %d   edges: %d   singletons: %d   largest: %d members",
		stats.NodeCount, stats.EdgeCount, labeling.SingletonCount, largestSize(labeling))))

	ids := make([]int, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	// Largest first, then by id for a stable listing.
	sort.Slice(ids, func(i, j int) bool {
		a, b := members[ids[i]], members[ids[j]]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		names := members[id]
		sort.Strings(names)
		listed := names
		suffix := ""
		if len(listed) > maxListedMembers {
			listed = listed[:maxListedMembers]
			suffix = fmt.Sprintf(" … +%d more", len(names)-maxListedMembers)
		}
		fmt.Printf("%s %s\n",
			communityStyle.Render(fmt.Sprintf("community %d (%d members, color %s):",
				id, len(names), render.CommunityColor(id))),
			memberStyle.Render(strings.Join(listed, ", ")+suffix))
	}

	if bridges := algorithms.Condensation(g, labeling); len(bridges) > 0 {
		fmt.Println(titleStyle.Render(fmt.Sprintf("%d inter-community links", len(bridges))))
		for _, e := range bridges {
			fmt.Println(memberStyle.Render(fmt.Sprintf(
				"  %d -> %d (%d edges, total weight %d)",
				e.FromCommunity, e.ToCommunity, e.EdgeCount, e.TotalWeight)))
		}
	}

	return nil
}

func largestSize(labeling *algorithms.Labeling) int {
	if labeling.Largest == nil {
		return 0
	}
	return labeling.Largest.Size
}
