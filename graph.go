package schemaset

import (
	"fmt"
	"slices"

	"github.com/jacoelho/schemaset/errors"
	"github.com/jacoelho/schemaset/internal/depgraph"
	"github.com/jacoelho/schemaset/internal/descriptor"
)

// resolution accumulates the dependency closure of one or more schema roots:
// the directed graph over resolved system IDs plus the parsed descriptors.
type resolution struct {
	graph       *depgraph.Graph
	descriptors map[string]*descriptor.Descriptor
	includes    map[string][]string
	roots       []string
}

func newResolution() *resolution {
	return &resolution{
		graph:       depgraph.New(),
		descriptors: make(map[string]*descriptor.Descriptor),
		includes:    make(map[string][]string),
	}
}

// includeClosure returns the schemas adopted into root's namespace: the root
// itself plus everything reachable from it through include edges alone.
// Imported schemas never qualify, whatever their target namespace.
func (res *resolution) includeClosure(root string) map[string]struct{} {
	adopted := map[string]struct{}{root: {}}
	work := []string{root}
	for len(work) > 0 {
		cur := work[0]
		work = work[1:]
		for _, inc := range res.includes[cur] {
			if _, ok := adopted[inc]; ok {
				continue
			}
			adopted[inc] = struct{}{}
			work = append(work, inc)
		}
	}
	return adopted
}

type workItem struct {
	request     ResolveRequest
	from        string
	chain       []string
	includingNS string
}

// addRoot loads the schema at location through r and traverses the closure
// of its import and include directives with an explicit work list. Cyclic
// references terminate here (the edge is still recorded); cycle detection
// itself happens during topological resolution.
func (res *resolution) addRoot(r Resolver, location string, opts resolvedLoadOptions) error {
	if r == nil {
		return fmt.Errorf("nil resolver")
	}

	queue := []workItem{{
		request: ResolveRequest{SchemaLocation: location, Kind: RefKindRoot},
	}}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if len(item.chain) >= opts.maxDepth {
			return fmt.Errorf("resolve %s: traversal depth limit %d exceeded", item.request.SchemaLocation, opts.maxDepth)
		}

		doc, systemID, err := r.Resolve(item.request)
		if err != nil {
			return &errors.NotFoundError{
				Identifier: item.request.SchemaLocation,
				Chain:      item.chain,
				Err:        err,
			}
		}

		if item.from == "" {
			res.graph.AddNode(systemID)
			res.roots = append(res.roots, systemID)
		} else {
			res.graph.AddEdge(item.from, systemID)
			if item.request.Kind == RefKindInclude {
				res.includes[item.from] = append(res.includes[item.from], systemID)
			}
		}

		// Every directive is checked against the loaded descriptor, not just
		// the one that loaded it first: a later import may declare a
		// different namespace for a schema that is already in the set.
		if existing, seen := res.descriptors[systemID]; seen {
			_ = doc.Close()
			if err := checkNamespace(item, existing); err != nil {
				return &errors.MalformedError{Identifier: systemID, Chain: item.chain, Err: err}
			}
			continue
		}

		desc, parseErr := descriptor.Parse(systemID, doc)
		closeErr := doc.Close()
		if parseErr != nil {
			return &errors.MalformedError{Identifier: systemID, Chain: item.chain, Err: parseErr}
		}
		if closeErr != nil {
			return fmt.Errorf("close schema %s: %w", systemID, closeErr)
		}

		if err := checkNamespace(item, desc); err != nil {
			return &errors.MalformedError{Identifier: systemID, Chain: item.chain, Err: err}
		}
		res.descriptors[systemID] = desc

		childChain := append(slices.Clone(item.chain), systemID)
		for _, imp := range desc.Imports {
			if imp.Location == "" {
				if opts.allowMissingImportLocations {
					continue
				}
				return &errors.MalformedError{
					Identifier: systemID,
					Chain:      item.chain,
					Err:        fmt.Errorf("import of namespace %q missing schemaLocation", imp.Namespace),
				}
			}
			queue = append(queue, workItem{
				request: ResolveRequest{
					BaseSystemID:    systemID,
					SchemaLocation:  imp.Location,
					ImportNamespace: imp.Namespace,
					Kind:            RefKindImport,
				},
				from:  systemID,
				chain: childChain,
			})
		}
		for _, inc := range desc.Includes {
			if inc.Location == "" {
				return &errors.MalformedError{
					Identifier: systemID,
					Chain:      item.chain,
					Err:        fmt.Errorf("include missing schemaLocation"),
				}
			}
			queue = append(queue, workItem{
				request: ResolveRequest{
					BaseSystemID:   systemID,
					SchemaLocation: inc.Location,
					Kind:           RefKindInclude,
				},
				from:        systemID,
				chain:       childChain,
				includingNS: desc.TargetNamespace,
			})
		}
	}

	return nil
}

// checkNamespace enforces directive namespace consistency: an import's
// declared namespace must match the loaded schema's target namespace, and an
// included schema must share the including namespace or declare none.
func checkNamespace(item workItem, desc *descriptor.Descriptor) error {
	switch item.request.Kind {
	case RefKindImport:
		declared := item.request.ImportNamespace
		if declared == "" {
			if desc.TargetNamespace != "" {
				return fmt.Errorf("imported schema namespace mismatch: expected no namespace, got %s", desc.TargetNamespace)
			}
			return nil
		}
		if desc.TargetNamespace != declared {
			return fmt.Errorf("imported schema namespace mismatch: expected %s, got %s", declared, desc.TargetNamespace)
		}
	case RefKindInclude:
		if desc.TargetNamespace != "" && desc.TargetNamespace != item.includingNS {
			return fmt.Errorf("included schema namespace mismatch: expected %s, got %s", item.includingNS, desc.TargetNamespace)
		}
	}
	return nil
}
