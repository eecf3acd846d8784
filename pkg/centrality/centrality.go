// Package centrality provides node scoring functions for undirected entity
// graphs. Every function has the Algorithm signature so callers can pass any
// of them, or their own, to graph.Rank.
//
// Normalizations follow the conventions of networkx so scores are
// comparable with results produced there.
package centrality

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/OFFIS-RIT/wikigraph/pkg/common"
)

// Algorithm scores every node of a graph.
type Algorithm func(g *common.Graph) map[string]float64

var ErrUnknownAlgorithm = errors.New("unknown centrality algorithm")

// PageRank configuration constants.
const (
	DefaultDampingFactor = 0.85
	DefaultMaxIterations = 100
	DefaultTolerance     = 1e-6
)

var registry = map[string]Algorithm{
	"degree":      Degree,
	"closeness":   Closeness,
	"betweenness": Betweenness,
	"eigenvector": Eigenvector,
	"pagerank":    PageRank,
}

// ByName returns the algorithm registered under name.
func ByName(name string) (Algorithm, error) {
	alg, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return alg, nil
}

// Names returns the registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Degree returns the degree of each node divided by n-1.
func Degree(g *common.Graph) map[string]float64 {
	ids := g.NodeIDs()
	scores := make(map[string]float64, len(ids))
	if len(ids) <= 1 {
		for _, id := range ids {
			scores[id] = 1
		}
		return scores
	}
	scale := 1.0 / float64(len(ids)-1)
	for _, id := range ids {
		scores[id] = float64(g.Degree(id)) * scale
	}
	return scores
}

// Closeness returns the closeness centrality of each node using the
// Wasserman and Faust correction for disconnected graphs.
func Closeness(g *common.Graph) map[string]float64 {
	ids := g.NodeIDs()
	n := len(ids)
	scores := make(map[string]float64, n)
	for _, id := range ids {
		dist := bfsDistances(g, id)
		total := 0
		for _, d := range dist {
			total += d
		}
		reachable := len(dist)
		if total == 0 || n <= 1 {
			scores[id] = 0
			continue
		}
		c := float64(reachable-1) / float64(total)
		c *= float64(reachable-1) / float64(n-1)
		scores[id] = c
	}
	return scores
}

// Betweenness returns the exact betweenness centrality of each node using
// Brandes' algorithm, normalized by 1/((n-1)(n-2)).
func Betweenness(g *common.Graph) map[string]float64 {
	ids := g.NodeIDs()
	scores := make(map[string]float64, len(ids))
	for _, id := range ids {
		scores[id] = 0
	}

	for _, source := range ids {
		dist := map[string]int{source: 0}
		paths := map[string]float64{source: 1}
		pred := make(map[string][]string)
		queue := []string{source}
		order := []string{}

		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			order = append(order, curr)

			for _, nid := range g.Neighbors(curr) {
				if _, seen := dist[nid]; !seen {
					dist[nid] = dist[curr] + 1
					queue = append(queue, nid)
				}
				if dist[nid] == dist[curr]+1 {
					paths[nid] += paths[curr]
					pred[nid] = append(pred[nid], curr)
				}
			}
		}

		delta := make(map[string]float64, len(order))
		for i := len(order) - 1; i >= 0; i-- {
			w := order[i]
			for _, v := range pred[w] {
				delta[v] += paths[v] / paths[w] * (1 + delta[w])
			}
			if w != source {
				scores[w] += delta[w]
			}
		}
	}

	n := len(ids)
	if n > 2 {
		scale := 1.0 / float64((n-1)*(n-2))
		for id := range scores {
			scores[id] *= scale
		}
	}
	return scores
}

// Eigenvector returns eigenvector centrality computed by power iteration.
// If the iteration does not converge within DefaultMaxIterations the last
// iterate is returned.
func Eigenvector(g *common.Graph) map[string]float64 {
	ids := g.NodeIDs()
	n := len(ids)
	scores := make(map[string]float64, n)
	if n == 0 {
		return scores
	}

	for _, id := range ids {
		scores[id] = 1.0 / float64(n)
	}

	for iter := 0; iter < DefaultMaxIterations; iter++ {
		next := make(map[string]float64, n)
		for _, id := range ids {
			next[id] = scores[id]
		}
		for _, id := range ids {
			for _, nid := range g.Neighbors(id) {
				next[nid] += scores[id]
			}
		}

		norm := 0.0
		for _, v := range next {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			norm = 1
		}
		diff := 0.0
		for _, id := range ids {
			next[id] /= norm
			diff += math.Abs(next[id] - scores[id])
		}
		scores = next
		if diff < float64(n)*DefaultTolerance {
			break
		}
	}
	return scores
}

// PageRank returns PageRank scores with the default damping factor. Every
// undirected edge counts as a link in both directions; isolated nodes
// redistribute their rank uniformly.
func PageRank(g *common.Graph) map[string]float64 {
	return PageRankWithDamping(DefaultDampingFactor)(g)
}

// PageRankWithDamping returns a PageRank Algorithm using damping factor d.
// Values outside [0, 1] fall back to DefaultDampingFactor.
func PageRankWithDamping(d float64) Algorithm {
	if d < 0 || d > 1 {
		d = DefaultDampingFactor
	}
	return func(g *common.Graph) map[string]float64 {
		ids := g.NodeIDs()
		n := float64(len(ids))
		scores := make(map[string]float64, len(ids))
		if len(ids) == 0 {
			return scores
		}

		for _, id := range ids {
			scores[id] = 1.0 / n
		}

		var sinks []string
		for _, id := range ids {
			if g.Degree(id) == 0 {
				sinks = append(sinks, id)
			}
		}

		for iter := 0; iter < DefaultMaxIterations; iter++ {
			sinkContribution := 0.0
			for _, id := range sinks {
				sinkContribution += scores[id]
			}
			sinkContribution = d * sinkContribution / n

			next := make(map[string]float64, len(ids))
			for _, id := range ids {
				next[id] = (1-d)/n + sinkContribution
			}
			for _, id := range ids {
				deg := g.Degree(id)
				if deg == 0 {
					continue
				}
				share := d * scores[id] / float64(deg)
				for _, nid := range g.Neighbors(id) {
					next[nid] += share
				}
			}

			diff := 0.0
			for _, id := range ids {
				diff += math.Abs(next[id] - scores[id])
			}
			scores = next
			if diff < n*DefaultTolerance {
				break
			}
		}
		return scores
	}
}

func bfsDistances(g *common.Graph, source string) map[string]int {
	dist := map[string]int{source: 0}
	queue := []string{source}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, nid := range g.Neighbors(curr) {
			if _, seen := dist[nid]; !seen {
				dist[nid] = dist[curr] + 1
				queue = append(queue, nid)
			}
		}
	}
	return dist
}
