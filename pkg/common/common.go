package common

// Seed is a starting concept supplied by the caller. A nil URI marks a term
// that could not be linked to an entity; such seeds contribute nothing to a
// graph.
type Seed struct {
	Label string  `json:"label" validate:"required"`
	URI   *string `json:"uri"`
}

// NewSeed returns a seed for a linked term.
func NewSeed(label, uri string) Seed {
	return Seed{Label: label, URI: &uri}
}

// Node represents an entity in the graph.
//
// Hop is the traversal depth at which the node was first created. It is set
// once and never lowered when the entity is reached again via a shorter path.
type Node struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases"`
	Hop         int      `json:"hop"`
}

// Edge is an undirected connection between two nodes. Source is the node
// from which the edge was discovered.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}
