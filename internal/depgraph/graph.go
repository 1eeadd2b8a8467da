// Package depgraph provides the schema dependency graph and its
// topological resolution.
package depgraph

// Graph is a directed dependency graph over schema identifiers. An edge
// A -> B means A depends on B (B must load before A). Nodes and edges keep
// insertion order so resolution is deterministic for identical input.
type Graph struct {
	nodes     []string
	nodeSet   map[string]struct{}
	adjacency map[string][]string
	edgeSet   map[edge]struct{}
}

type edge struct {
	from string
	to   string
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodeSet:   make(map[string]struct{}),
		adjacency: make(map[string][]string),
		edgeSet:   make(map[edge]struct{}),
	}
}

// AddNode adds a node. Adding an existing node is a no-op.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodeSet[id]; ok {
		return
	}
	g.nodeSet[id] = struct{}{}
	g.nodes = append(g.nodes, id)
}

// AddEdge records that from depends on to. Both nodes are added if absent;
// duplicate edges are ignored.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	e := edge{from: from, to: to}
	if _, ok := g.edgeSet[e]; ok {
		return
	}
	g.edgeSet[e] = struct{}{}
	g.adjacency[from] = append(g.adjacency[from], to)
}

// Contains reports whether id is a node of the graph.
func (g *Graph) Contains(id string) bool {
	_, ok := g.nodeSet[id]
	return ok
}

// Dependencies returns the direct dependencies of id in insertion order.
// The returned slice is owned by the graph and must not be mutated.
func (g *Graph) Dependencies(id string) []string {
	return g.adjacency[id]
}

// Nodes returns all nodes in insertion order. The returned slice is owned by
// the graph and must not be mutated.
func (g *Graph) Nodes() []string {
	return g.nodes
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}
