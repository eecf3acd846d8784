package graph

import (
	"sort"

	"github.com/OFFIS-RIT/wikigraph/pkg/centrality"
	"github.com/OFFIS-RIT/wikigraph/pkg/common"
)

// RankedNode is a node together with its centrality score.
type RankedNode struct {
	Node  common.Node `json:"node"`
	Score float64     `json:"score"`
}

// Rank scores g with algorithm and returns at most topN nodes by descending
// score. Seed nodes (hop 0) and ids in stopIDs are never returned. Equal
// scores are ordered by node id so results are reproducible.
func Rank(g *common.Graph, algorithm centrality.Algorithm, stopIDs []string, topN int) []RankedNode {
	if topN <= 0 || g == nil || algorithm == nil {
		return []RankedNode{}
	}

	stop := make(map[string]struct{}, len(stopIDs))
	for _, id := range stopIDs {
		stop[id] = struct{}{}
	}

	metrics := algorithm(g)
	ranked := make([]RankedNode, 0, len(metrics))
	for _, node := range g.Nodes() {
		score, ok := metrics[node.ID]
		if !ok || node.Hop == 0 {
			continue
		}
		if _, skip := stop[node.ID]; skip {
			continue
		}
		ranked = append(ranked, RankedNode{Node: node, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Node.ID < ranked[j].Node.ID
	})

	if topN > len(ranked) {
		topN = len(ranked)
	}
	return ranked[:topN]
}
