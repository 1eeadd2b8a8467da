package schemaset

import (
	"fmt"
	"runtime"
)

type intOption struct {
	value int
	set   bool
}

// defaultMaxDepth bounds dependency traversal depth.
const defaultMaxDepth = 256

// LoadOptions configures schema dependency resolution.
type LoadOptions struct {
	allowMissingImportLocations bool
	maxDepth                    intOption
}

// NewLoadOptions returns a default, valid load options value.
func NewLoadOptions() LoadOptions {
	return LoadOptions{}
}

// WithAllowMissingImportLocations controls whether imports without a
// schemaLocation are skipped instead of failing resolution.
func (o LoadOptions) WithAllowMissingImportLocations(value bool) LoadOptions {
	o.allowMissingImportLocations = value
	return o
}

// WithMaxDepth sets the dependency traversal depth limit (0 uses default).
func (o LoadOptions) WithMaxDepth(value int) LoadOptions {
	o.maxDepth = intOption{value: value, set: true}
	return o
}

// Validate validates load options values.
func (o LoadOptions) Validate() error {
	_, err := o.withDefaults()
	return err
}

type resolvedLoadOptions struct {
	allowMissingImportLocations bool
	maxDepth                    int
}

func (o LoadOptions) withDefaults() (resolvedLoadOptions, error) {
	resolved := resolvedLoadOptions{
		allowMissingImportLocations: o.allowMissingImportLocations,
		maxDepth:                    defaultMaxDepth,
	}
	if o.maxDepth.set {
		if o.maxDepth.value < 0 {
			return resolvedLoadOptions{}, fmt.Errorf("max depth must not be negative: %d", o.maxDepth.value)
		}
		if o.maxDepth.value > 0 {
			resolved.maxDepth = o.maxDepth.value
		}
	}
	return resolved, nil
}

// ValidateOptions configures batch validation.
type ValidateOptions struct {
	workers intOption
}

// NewValidateOptions returns a default, valid validate options value.
func NewValidateOptions() ValidateOptions {
	return ValidateOptions{}
}

// WithWorkers sets the number of parallel validation workers (0 uses the
// number of available CPUs).
func (o ValidateOptions) WithWorkers(value int) ValidateOptions {
	o.workers = intOption{value: value, set: true}
	return o
}

// Validate validates validate options values.
func (o ValidateOptions) Validate() error {
	_, err := o.withDefaults()
	return err
}

type resolvedValidateOptions struct {
	workers int
}

func (o ValidateOptions) withDefaults() (resolvedValidateOptions, error) {
	resolved := resolvedValidateOptions{workers: runtime.GOMAXPROCS(0)}
	if o.workers.set {
		if o.workers.value < 0 {
			return resolvedValidateOptions{}, fmt.Errorf("workers must not be negative: %d", o.workers.value)
		}
		if o.workers.value > 0 {
			resolved.workers = o.workers.value
		}
	}
	return resolved, nil
}
