package graph

import (
	"fmt"

	"github.com/dbsmedya/erpfixture/internal/catalog"
)

// Builder constructs a dependency graph from the entity catalog.
type Builder struct {
	entities []catalog.Entity
}

// NewBuilder creates a new graph builder for the given entities.
func NewBuilder(entities []catalog.Entity) *Builder {
	return &Builder{entities: entities}
}

// Build constructs the dependency graph. Every entity becomes a node and every
// reference becomes an edge from the referenced model to the referencing one.
func (b *Builder) Build() (*Graph, error) {
	if len(b.entities) == 0 {
		return nil, fmt.Errorf("no entities to build a graph from")
	}

	g := NewGraph()

	for _, e := range b.entities {
		if e.Model == "" {
			return nil, fmt.Errorf("entity with counter key %q has no model", e.Key)
		}
		if e.Key == "" {
			return nil, fmt.Errorf("counter key is not specified for model %q", e.Model)
		}
		if g.HasNode(e.Model) {
			return nil, fmt.Errorf("duplicate entity: model %q appears multiple times", e.Model)
		}
		g.AddNode(e.Model, &Node{Key: e.Key, Label: e.Label, Count: e.Count})
	}

	for _, e := range b.entities {
		for _, ref := range e.References {
			if ref.Field == "" {
				return nil, fmt.Errorf("reference field is empty in model %q", e.Model)
			}
			if !g.HasNode(ref.Model) {
				return nil, fmt.Errorf("model %q field %q references unknown model %q", e.Model, ref.Field, ref.Model)
			}
			g.AddEdgeWithMeta(ref.Model, e.Model, ref.Field)
		}
	}

	// Fail fast on cycles
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("graph validation failed: %w", err)
	}

	return g, nil
}

// BuildFromCatalog builds the graph for the fixed fixture catalog.
func BuildFromCatalog() (*Graph, error) {
	return NewBuilder(catalog.Entities()).Build()
}
