package schemaset

import (
	"fmt"

	"github.com/jacoelho/schemaset/internal/depgraph"
	"github.com/jacoelho/schemaset/internal/descriptor"
)

// CompiledSchema is the immutable validation-ready artifact produced from a
// schema document and its same-namespace includes.
type CompiledSchema struct {
	identifier      string
	targetNamespace string
	globalElements  map[string]struct{}
}

// Identifier returns the resolved system ID the schema was compiled from.
func (cs *CompiledSchema) Identifier() string {
	if cs == nil {
		return ""
	}
	return cs.identifier
}

// TargetNamespace returns the namespace the compiled schema defines.
func (cs *CompiledSchema) TargetNamespace() string {
	if cs == nil {
		return ""
	}
	return cs.targetNamespace
}

// DeclaresElement reports whether the compiled schema declares a global
// element with the given namespace and local name.
func (cs *CompiledSchema) DeclaresElement(namespace, local string) bool {
	if cs == nil || namespace != cs.targetNamespace {
		return false
	}
	_, ok := cs.globalElements[local]
	return ok
}

// Compiler compiles schemas reachable through a resolver. Its Compile method
// satisfies CompileFunc.
type Compiler struct {
	resolver Resolver
	loadOpts LoadOptions
}

// NewCompiler creates a compiler reading schemas through r.
func NewCompiler(r Resolver) *Compiler {
	return &Compiler{resolver: r}
}

// WithLoadOptions sets the load options used during compilation.
func (c *Compiler) WithLoadOptions(opts LoadOptions) *Compiler {
	c.loadOpts = opts
	return c
}

// Compile resolves the schema's dependency closure in load order and
// assembles the compiled artifact: the target namespace plus the global
// element declarations of the root schema and every schema reachable from it
// through include chains. Chameleon includes are adopted into the root's
// namespace; imported schemas contribute nothing, even when they declare no
// target namespace of their own.
func (c *Compiler) Compile(identifier string) (*CompiledSchema, error) {
	if c == nil || c.resolver == nil {
		return nil, fmt.Errorf("compile %s: no resolver configured", identifier)
	}
	opts, err := c.loadOpts.withDefaults()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", identifier, err)
	}

	res := newResolution()
	if err := res.addRoot(c.resolver, identifier, opts); err != nil {
		return nil, err
	}
	order, err := depgraph.Sort(res.graph)
	if err != nil {
		return nil, err
	}

	rootID := res.roots[0]
	targetNS := res.descriptors[rootID].TargetNamespace

	compiled := &CompiledSchema{
		identifier:      rootID,
		targetNamespace: targetNS,
		globalElements:  make(map[string]struct{}),
	}
	adopted := res.includeClosure(rootID)
	for _, systemID := range order {
		if _, ok := adopted[systemID]; !ok {
			continue
		}
		if err := c.collectElements(systemID, compiled.globalElements); err != nil {
			return nil, err
		}
	}
	return compiled, nil
}

func (c *Compiler) collectElements(systemID string, into map[string]struct{}) error {
	doc, _, err := c.resolver.Resolve(ResolveRequest{SchemaLocation: systemID, Kind: RefKindRoot})
	if err != nil {
		return fmt.Errorf("reopen schema %s: %w", systemID, err)
	}
	names, parseErr := descriptor.GlobalElements(systemID, doc)
	closeErr := doc.Close()
	if parseErr != nil {
		return parseErr
	}
	if closeErr != nil {
		return fmt.Errorf("close schema %s: %w", systemID, closeErr)
	}
	for _, name := range names {
		into[name] = struct{}{}
	}
	return nil
}
