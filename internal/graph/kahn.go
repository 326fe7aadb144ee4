package graph

import (
	"container/list"
	"errors"
	"fmt"
	"strings"
)

// ErrCycleDetected is returned when the dependency graph contains a cycle,
// making topological sorting impossible. CycleError matches it with errors.Is.
var ErrCycleDetected = errors.New("cycle detected in dependency graph")

// CycleError reports the models Kahn's algorithm could not place.
type CycleError struct {
	Total      int      // Number of models in the graph
	Unresolved []string // Models on a cycle or referencing one, in insertion order
	Path       []string // One cycle in reference order, first model repeated at the end
}

func (e *CycleError) Error() string {
	msg := fmt.Sprintf("cycle detected in dependency graph: %d of %d models could not be ordered",
		len(e.Unresolved), e.Total)
	if len(e.Path) > 0 {
		msg += fmt.Sprintf("\nCycle path: %s", strings.Join(e.Path, " -> "))
	}
	if len(e.Unresolved) > 0 {
		msg += fmt.Sprintf("\nUnresolved models: %s", strings.Join(e.Unresolved, ", "))
	}
	return msg
}

// Is reports whether target is ErrCycleDetected.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycleDetected
}

// TopologicalSort returns models in topological order using Kahn's algorithm.
// Referenced models come before the models that reference them; ties are
// broken by insertion order, so the result is deterministic.
// Returns a *CycleError if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	waiting := make(map[string]int, len(g.order))
	ready := list.New()
	for _, model := range g.order {
		waiting[model] = g.InDegree(model)
		if waiting[model] == 0 {
			ready.PushBack(model)
		}
	}

	order := make([]string, 0, len(g.order))
	for ready.Len() > 0 {
		model := ready.Remove(ready.Front()).(string)
		order = append(order, model)

		for _, child := range g.GetChildren(model) {
			waiting[child]--
			if waiting[child] == 0 {
				ready.PushBack(child)
			}
		}
	}

	if len(order) == len(g.order) {
		return order, nil
	}

	var unresolved []string
	for _, model := range g.order {
		if waiting[model] > 0 {
			unresolved = append(unresolved, model)
		}
	}
	return nil, &CycleError{
		Total:      len(g.order),
		Unresolved: unresolved,
		Path:       g.cyclePath(unresolved, waiting),
	}
}

// cyclePath walks parent links backwards from the first unresolved model.
// Every unresolved model still waits on an unresolved parent, so the walk
// must revisit a model; the loop from that model onwards is a cycle.
func (g *Graph) cyclePath(unresolved []string, waiting map[string]int) []string {
	if len(unresolved) == 0 {
		return nil
	}

	seen := make(map[string]int)
	var walk []string
	model := unresolved[0]
	for {
		if at, ok := seen[model]; ok {
			walk = walk[at:]
			break
		}
		seen[model] = len(walk)
		walk = append(walk, model)

		next := ""
		for _, parent := range g.GetParents(model) {
			if waiting[parent] > 0 {
				next = parent
				break
			}
		}
		if next == "" {
			return nil
		}
		model = next
	}

	// walk follows references backwards; flip it to reference order.
	path := []string{walk[0]}
	for i := len(walk) - 1; i > 0; i-- {
		path = append(path, walk[i])
	}
	return append(path, walk[0])
}

// GenerationOrder returns the order in which entity types can be generated.
func (g *Graph) GenerationOrder() ([]string, error) {
	return g.TopologicalSort()
}

// TeardownOrder returns the order in which entity tables can be emptied:
// referencing models first. This is the reverse of the generation order.
func (g *Graph) TeardownOrder() ([]string, error) {
	order, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}

	reversed := make([]string, len(order))
	for i, model := range order {
		reversed[len(order)-1-i] = model
	}
	return reversed, nil
}

// Validate returns a *CycleError if the graph cannot be ordered.
func (g *Graph) Validate() error {
	_, err := g.TopologicalSort()
	return err
}

// ErrOrderViolation is returned by ValidateOrder when an order does not
// respect the graph.
var ErrOrderViolation = errors.New("order violates dependency graph")

// ValidateOrder checks that order lists every model exactly once and places
// each referenced model before every model that references it.
func (g *Graph) ValidateOrder(order []string) error {
	position := make(map[string]int, len(order))
	for i, model := range order {
		if !g.HasNode(model) {
			return fmt.Errorf("%w: unknown model %q", ErrOrderViolation, model)
		}
		if _, dup := position[model]; dup {
			return fmt.Errorf("%w: model %q listed twice", ErrOrderViolation, model)
		}
		position[model] = i
	}

	for _, model := range g.AllNodes() {
		if _, ok := position[model]; !ok {
			return fmt.Errorf("%w: model %q missing", ErrOrderViolation, model)
		}
	}

	for _, e := range g.AllEdges() {
		if position[e.From] >= position[e.To] {
			return fmt.Errorf("%w: %q must come before %q", ErrOrderViolation, e.From, e.To)
		}
	}

	return nil
}
