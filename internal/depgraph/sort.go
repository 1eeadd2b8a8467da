package depgraph

import (
	"github.com/jacoelho/schemaset/errors"
)

type visitState uint8

const (
	stateVisiting visitState = iota + 1
	stateDone
)

// Sort returns a dependency-first ordering of all graph nodes using a
// depth-first post-order traversal: a node's dependencies are appended
// before the node itself. Reaching a node that is still on the active
// traversal stack is a cycle and yields errors.CycleError with the full
// cycle path; a node already finished is skipped. On error no order is
// returned.
func Sort(g *Graph) ([]string, error) {
	states := make(map[string]visitState, g.Len())
	order := make([]string, 0, g.Len())
	var stack []string

	var visit func(id string) error
	visit = func(id string) error {
		switch states[id] {
		case stateVisiting:
			return &errors.CycleError{Cycle: cyclePath(stack, id)}
		case stateDone:
			return nil
		}

		states[id] = stateVisiting
		stack = append(stack, id)
		for _, dep := range g.Dependencies(id) {
			if err := visit(dep); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		states[id] = stateDone
		order = append(order, id)
		return nil
	}

	for _, id := range g.Nodes() {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// cyclePath extracts the cycle from the active traversal stack, closing it
// by repeating the re-entered node.
func cyclePath(stack []string, id string) []string {
	start := 0
	for i, node := range stack {
		if node == id {
			start = i
			break
		}
	}
	cycle := make([]string, 0, len(stack)-start+1)
	cycle = append(cycle, stack[start:]...)
	return append(cycle, id)
}
