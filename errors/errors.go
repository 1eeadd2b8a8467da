// Package errors defines the error taxonomy for schema dependency
// resolution, compilation, and batch validation.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies an error class with a stable string code.
type ErrorCode string

const (
	// ErrSchemaNotFound indicates a schema identifier did not resolve to readable content.
	ErrSchemaNotFound ErrorCode = "schema-not-found"
	// ErrSchemaMalformed indicates schema content could not be parsed as a schema document.
	ErrSchemaMalformed ErrorCode = "schema-malformed"
	// ErrDependencyCycle indicates the schema dependency graph contains a cycle.
	ErrDependencyCycle ErrorCode = "dependency-cycle"
	// ErrSchemaCompile indicates schema compilation failed.
	ErrSchemaCompile ErrorCode = "schema-compile"
	// ErrXMLParse indicates an XML document could not be parsed.
	ErrXMLParse ErrorCode = "xml-parse"
	// ErrRootNotDeclared indicates a document root element has no global declaration.
	ErrRootNotDeclared ErrorCode = "root-not-declared"
	// ErrNoSchema indicates validation was attempted without a compiled schema.
	ErrNoSchema ErrorCode = "validation-no-schema"
)

// NotFoundError reports a schema identifier that did not resolve to readable
// content. Chain holds the identifier path that reached it, outermost first.
type NotFoundError struct {
	Identifier string
	Chain      []string
	Err        error
}

// Error returns the error string including the identifier chain when present.
func (e *NotFoundError) Error() string {
	if e == nil {
		return "schema not found"
	}
	msg := fmt.Sprintf("[%s] schema %s not found", ErrSchemaNotFound, e.Identifier)
	if len(e.Chain) > 0 {
		msg += fmt.Sprintf(" (via %s)", strings.Join(e.Chain, " -> "))
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *NotFoundError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// MalformedError reports schema content that could not be parsed as a schema
// document. Chain holds the identifier path that reached it, outermost first.
type MalformedError struct {
	Identifier string
	Chain      []string
	Err        error
}

// Error returns the error string including the identifier chain when present.
func (e *MalformedError) Error() string {
	if e == nil {
		return "schema malformed"
	}
	msg := fmt.Sprintf("[%s] schema %s malformed", ErrSchemaMalformed, e.Identifier)
	if len(e.Chain) > 0 {
		msg += fmt.Sprintf(" (via %s)", strings.Join(e.Chain, " -> "))
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *MalformedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CycleError reports a dependency cycle. Cycle holds the identifiers on the
// cycle in traversal order; the first identifier is repeated at the end.
type CycleError struct {
	Cycle []string
}

// Error renders the cycle path.
func (e *CycleError) Error() string {
	if e == nil || len(e.Cycle) == 0 {
		return fmt.Sprintf("[%s] dependency cycle detected", ErrDependencyCycle)
	}
	return fmt.Sprintf("[%s] dependency cycle: %s", ErrDependencyCycle, strings.Join(e.Cycle, " -> "))
}

// CompileError reports a failed schema compilation.
type CompileError struct {
	Identifier string
	Err        error
}

// Error returns the error string.
func (e *CompileError) Error() string {
	if e == nil {
		return "schema compile failed"
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] compile schema %s: %v", ErrSchemaCompile, e.Identifier, e.Err)
	}
	return fmt.Sprintf("[%s] compile schema %s failed", ErrSchemaCompile, e.Identifier)
}

// Unwrap returns the underlying cause.
func (e *CompileError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ParseError reports an XML document that could not be parsed. It is recorded
// in the document's validation result, never raised as a batch failure.
type ParseError struct {
	Err error
}

// Error returns the error string.
func (e *ParseError) Error() string {
	if e == nil || e.Err == nil {
		return fmt.Sprintf("[%s] parse error", ErrXMLParse)
	}
	return fmt.Sprintf("[%s] parse error: %v", ErrXMLParse, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AsCycle extracts a CycleError from an error chain.
func AsCycle(err error) (*CycleError, bool) {
	var ce *CycleError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// AsCompile extracts a CompileError from an error chain.
func AsCompile(err error) (*CompileError, bool) {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
