// Package graph provides the entity dependency graph for erpfixture.
//
// An edge points from a referenced model to the model that references it, so
// a topological order is an order in which every record can be generated
// after the records it points to.
package graph

// Node represents an entity model in the dependency graph.
type Node struct {
	Name  string // Model label
	Key   string // Counter key
	Label string // Display name
	Count int    // Expected record count
}

// Edge represents a dependency relationship between models.
type Edge struct {
	From string // Referenced model
	To   string // Referencing model
}

// EdgeMeta contains metadata about an edge relationship.
type EdgeMeta struct {
	ForeignKeys []string // Fields in the referencing model that hold the referenced pk
}

// Graph represents the complete dependency structure of a fixture.
type Graph struct {
	Nodes        map[string]*Node    // model -> node
	Children     map[string][]string // model -> referencing models (outgoing edges)
	Parents      map[string][]string // model -> referenced models (incoming edges)
	order        []string            // models in insertion order, used to break ties
	edgeMetadata map[Edge]*EdgeMeta
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:        make(map[string]*Node),
		Children:     make(map[string][]string),
		Parents:      make(map[string][]string),
		edgeMetadata: make(map[Edge]*EdgeMeta),
	}
}

// AddNode adds a model node to the graph.
// If node is nil, a new node with default values is created.
func (g *Graph) AddNode(name string, node *Node) {
	if node == nil {
		node = &Node{}
	}
	node.Name = name
	if _, exists := g.Nodes[name]; !exists {
		g.order = append(g.order, name)
	}
	g.Nodes[name] = node
}

// AddEdge adds a referenced -> referencing relationship to the graph.
// Adding the same pair twice keeps a single edge.
func (g *Graph) AddEdge(parent, child string) {
	if _, exists := g.edgeMetadata[Edge{From: parent, To: child}]; exists {
		return
	}
	g.Children[parent] = append(g.Children[parent], child)
	g.Parents[child] = append(g.Parents[child], parent)
	g.edgeMetadata[Edge{From: parent, To: child}] = &EdgeMeta{}
}

// AddEdgeWithMeta adds an edge and records the foreign-key field behind it.
// A model may reference the same parent through several fields.
func (g *Graph) AddEdgeWithMeta(parent, child, foreignKey string) {
	g.AddEdge(parent, child)

	meta := g.edgeMetadata[Edge{From: parent, To: child}]
	meta.ForeignKeys = append(meta.ForeignKeys, foreignKey)
}

// GetChildren returns all models that directly reference parent.
func (g *Graph) GetChildren(parent string) []string {
	return g.Children[parent]
}

// GetParents returns all models that child directly references.
func (g *Graph) GetParents(child string) []string {
	return g.Parents[child]
}

// GetNode returns the node for a given model, or nil if not found.
func (g *Graph) GetNode(name string) *Node {
	return g.Nodes[name]
}

// GetEdgeMeta returns metadata for an edge, or nil if not found.
func (g *Graph) GetEdgeMeta(parent, child string) *EdgeMeta {
	return g.edgeMetadata[Edge{From: parent, To: child}]
}

// HasNode returns true if the graph contains a node with the given name.
func (g *Graph) HasNode(name string) bool {
	_, exists := g.Nodes[name]
	return exists
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of distinct references between models.
func (g *Graph) EdgeCount() int {
	return len(g.edgeMetadata)
}

// AllNodes returns all model names in insertion order.
func (g *Graph) AllNodes() []string {
	nodes := make([]string, len(g.order))
	copy(nodes, g.order)
	return nodes
}

// AllEdges returns all edges, grouped by parent in insertion order.
func (g *Graph) AllEdges() []Edge {
	var edges []Edge
	for _, parent := range g.order {
		for _, child := range g.Children[parent] {
			edges = append(edges, Edge{From: parent, To: child})
		}
	}
	return edges
}

// RootNodes returns all models that reference nothing, in insertion order.
func (g *Graph) RootNodes() []string {
	var roots []string
	for _, name := range g.order {
		if len(g.Parents[name]) == 0 {
			roots = append(roots, name)
		}
	}
	return roots
}

// LeafNodes returns all models nothing references, in insertion order.
func (g *Graph) LeafNodes() []string {
	var leaves []string
	for _, name := range g.order {
		if len(g.Children[name]) == 0 {
			leaves = append(leaves, name)
		}
	}
	return leaves
}

// InDegree returns the number of incoming edges (parents) for a node.
func (g *Graph) InDegree(name string) int {
	return len(g.Parents[name])
}

// OutDegree returns the number of outgoing edges (children) for a node.
func (g *Graph) OutDegree(name string) int {
	return len(g.Children[name])
}
