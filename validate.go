package schemaset

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/jacoelho/schemaset/errors"
)

// ValidationResult is a per-document validation record. A document produces
// exactly one result; parse failures are captured here, never raised.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Validator validates document batches against a compiled schema obtained
// through a shared cache. Safe for concurrent use.
type Validator struct {
	cache        *Cache
	compile      CompileFunc
	validateOpts ValidateOptions
}

// NewValidator creates a validator backed by the given cache and compile
// function.
func NewValidator(cache *Cache, compile CompileFunc) *Validator {
	return &Validator{cache: cache, compile: compile}
}

// WithValidateOptions sets the batch validation options.
func (v *Validator) WithValidateOptions(opts ValidateOptions) *Validator {
	v.validateOpts = opts
	return v
}

// ValidateAll validates documents against the schema named by
// schemaIdentifier and returns one result per document in input order.
// Schema compilation failure aborts the whole batch with a CompileError;
// individual document failures never do.
func (v *Validator) ValidateAll(documents []io.Reader, schemaIdentifier string) ([]ValidationResult, error) {
	if v == nil || v.cache == nil {
		return nil, fmt.Errorf("validate batch: no cache configured")
	}
	opts, err := v.validateOpts.withDefaults()
	if err != nil {
		return nil, fmt.Errorf("validate batch: %w", err)
	}

	compiled, err := v.cache.GetOrCompile(schemaIdentifier, v.compile)
	if err != nil {
		return nil, err
	}

	results := make([]ValidationResult, len(documents))
	var g errgroup.Group
	g.SetLimit(opts.workers)
	for i, doc := range documents {
		g.Go(func() error {
			results[i] = validateDocument(compiled, doc)
			return nil
		})
	}
	// Workers record outcomes in their own slot and never return an error.
	_ = g.Wait()
	return results, nil
}

// ValidateAllBytes is ValidateAll over in-memory documents.
func (v *Validator) ValidateAllBytes(documents [][]byte, schemaIdentifier string) ([]ValidationResult, error) {
	readers := make([]io.Reader, len(documents))
	for i, doc := range documents {
		readers[i] = bytes.NewReader(doc)
	}
	return v.ValidateAll(readers, schemaIdentifier)
}

func validateDocument(compiled *CompiledSchema, doc io.Reader) ValidationResult {
	if compiled == nil {
		return invalidResult(fmt.Sprintf("[%s] no compiled schema", errors.ErrNoSchema))
	}
	if doc == nil {
		return invalidResult((&errors.ParseError{Err: fmt.Errorf("nil reader")}).Error())
	}

	dec := xml.NewDecoder(doc)

	var root *xml.Name
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return invalidResult((&errors.ParseError{Err: err}).Error())
		}
		if start, ok := tok.(xml.StartElement); ok && root == nil {
			name := start.Name
			root = &name
		}
	}
	if root == nil {
		return invalidResult((&errors.ParseError{Err: fmt.Errorf("no root element")}).Error())
	}

	if !compiled.DeclaresElement(root.Space, root.Local) {
		return invalidResult(fmt.Sprintf("[%s] element {%s}%s has no global declaration in schema %s",
			errors.ErrRootNotDeclared, root.Space, root.Local, compiled.Identifier()))
	}
	return ValidationResult{Valid: true, Errors: []string{}}
}

func invalidResult(messages ...string) ValidationResult {
	return ValidationResult{Valid: false, Errors: messages}
}
