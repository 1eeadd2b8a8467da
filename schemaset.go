// Package schemaset resolves schema dependency graphs into load orders and
// validates document batches against cached compiled schemas.
package schemaset

import (
	"fmt"
	"io/fs"

	"github.com/jacoelho/schemaset/errors"
	"github.com/jacoelho/schemaset/internal/depgraph"
	"github.com/jacoelho/schemaset/internal/descriptor"
)

// SchemaDescriptor describes a schema document's identity and direct
// import/include references.
type SchemaDescriptor = descriptor.Descriptor

// Import is a cross-namespace schema dependency declaration.
type Import = descriptor.Import

// Include is a same-namespace schema dependency declaration.
type Include = descriptor.Include

// LoadOrder is a sequence of schema identifiers in which every dependency
// precedes its dependents. Each identifier appears at most once.
type LoadOrder []string

// Resolution is the result of resolving a schema set: the load order plus
// the descriptor of every schema in the dependency closure.
type Resolution struct {
	Order       LoadOrder
	Descriptors map[string]*SchemaDescriptor
}

type schemaRoot struct {
	fsys     fs.FS
	location string
}

// SchemaSet collects schema roots for dependency resolution.
type SchemaSet struct {
	entries  []schemaRoot
	loadOpts LoadOptions
}

// NewSchemaSet creates an empty schema set.
func NewSchemaSet() *SchemaSet {
	return &SchemaSet{}
}

// WithLoadOptions sets the load options used during resolution.
func (s *SchemaSet) WithLoadOptions(opts LoadOptions) *SchemaSet {
	s.loadOpts = opts
	return s
}

// AddFS adds a schema root read from the provided filesystem.
//
// All roots resolve into a single identifier space keyed by system ID. When
// roots are added from different filesystems, a relative path must name the
// same schema document on every filesystem it appears in; the first
// occurrence is loaded and later occurrences reuse it.
func (s *SchemaSet) AddFS(fsys fs.FS, location string) error {
	if fsys == nil {
		return fmt.Errorf("add schema root: nil fs")
	}
	if location == "" {
		return fmt.Errorf("add schema root: empty location")
	}
	s.entries = append(s.entries, schemaRoot{fsys: fsys, location: location})
	return nil
}

// Resolve builds the dependency closure of all added roots and returns the
// load order together with the collected descriptors. A dependency cycle is
// a fatal error; no partial order is ever returned.
func (s *SchemaSet) Resolve() (*Resolution, error) {
	if s == nil || len(s.entries) == 0 {
		return nil, fmt.Errorf("resolve schema set: no schema roots added")
	}
	opts, err := s.loadOpts.withDefaults()
	if err != nil {
		return nil, fmt.Errorf("resolve schema set: %w", err)
	}

	res := newResolution()
	for _, entry := range s.entries {
		if err := res.addRoot(NewFSResolver(entry.fsys), entry.location, opts); err != nil {
			return nil, fmt.Errorf("resolve schema set: %w", err)
		}
	}

	order, err := depgraph.Sort(res.graph)
	if err != nil {
		return nil, fmt.Errorf("resolve schema set: %w", err)
	}
	return &Resolution{Order: LoadOrder(order), Descriptors: res.descriptors}, nil
}

// ResolveOrder resolves the set and returns only the load order.
func (s *SchemaSet) ResolveOrder() (LoadOrder, error) {
	res, err := s.Resolve()
	if err != nil {
		return nil, err
	}
	return res.Order, nil
}

// LoadDescriptor reads a single schema descriptor through the resolver
// without following its references.
func LoadDescriptor(r Resolver, identifier string) (*SchemaDescriptor, error) {
	if r == nil {
		return nil, fmt.Errorf("load descriptor %s: nil resolver", identifier)
	}
	doc, systemID, err := r.Resolve(ResolveRequest{SchemaLocation: identifier, Kind: RefKindRoot})
	if err != nil {
		return nil, &errors.NotFoundError{Identifier: identifier, Err: err}
	}
	desc, parseErr := descriptor.Parse(systemID, doc)
	closeErr := doc.Close()
	if parseErr != nil {
		return nil, &errors.MalformedError{Identifier: systemID, Err: parseErr}
	}
	if closeErr != nil {
		return nil, fmt.Errorf("close schema %s: %w", systemID, closeErr)
	}
	return desc, nil
}
