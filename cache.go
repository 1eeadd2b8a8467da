package schemaset

import (
	stderrors "errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jacoelho/schemaset/errors"
)

// CompileFunc performs the expensive compilation of a schema identifier into
// a CompiledSchema. It is invoked at most once per identifier at a time.
type CompileFunc func(identifier string) (*CompiledSchema, error)

// Cache memoizes compiled schemas by identifier. Concurrent requests for the
// same uncompiled identifier coalesce into a single compilation; requests
// for different identifiers never block each other. Compilation failures are
// not cached, so a later request retries.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*CompiledSchema
	gen     uint64
	group   singleflight.Group
}

// NewCache creates an empty cache. The caller owns its lifecycle; call
// Clear at teardown to release compiled artifacts.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*CompiledSchema)}
}

// GetOrCompile returns the cached compiled schema for identifier, invoking
// compile on first use. All concurrent callers for the same identifier
// receive the same artifact or the same error.
func (c *Cache) GetOrCompile(identifier string, compile CompileFunc) (*CompiledSchema, error) {
	if c == nil {
		return nil, fmt.Errorf("get or compile %s: nil cache", identifier)
	}
	if compile == nil {
		return nil, fmt.Errorf("get or compile %s: nil compile function", identifier)
	}

	c.mu.Lock()
	if compiled, ok := c.entries[identifier]; ok {
		c.mu.Unlock()
		return compiled, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(identifier, func() (any, error) {
		// A previous flight may have stored the entry between the miss
		// above and joining this flight.
		c.mu.Lock()
		if compiled, ok := c.entries[identifier]; ok {
			c.mu.Unlock()
			return compiled, nil
		}
		gen := c.gen
		c.mu.Unlock()

		compiled, err := compile(identifier)
		if err != nil {
			return nil, asCompileError(identifier, err)
		}
		if compiled == nil {
			return nil, &errors.CompileError{Identifier: identifier, Err: fmt.Errorf("compile returned nil schema")}
		}

		c.mu.Lock()
		// An Invalidate or Clear that overlapped this compilation wins:
		// waiting callers still receive the artifact, but it is not
		// retained, so the next access recompiles.
		if c.gen == gen {
			c.entries[identifier] = compiled
		}
		c.mu.Unlock()
		return compiled, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*CompiledSchema), nil
}

// Invalidate removes the cached entry so the next access recompiles. A
// compilation already in flight for the identifier still completes and
// serves its callers, but its result is not cached.
func (c *Cache) Invalidate(identifier string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.entries, identifier)
	c.gen++
	c.mu.Unlock()
	c.group.Forget(identifier)
}

// Size returns the number of cached compiled schemas.
func (c *Cache) Size() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes all cached entries. As with Invalidate, overlapping
// compilations finish but are not retained.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]*CompiledSchema)
	c.gen++
	c.mu.Unlock()
}

func asCompileError(identifier string, err error) error {
	var ce *errors.CompileError
	if stderrors.As(err, &ce) {
		return err
	}
	return &errors.CompileError{Identifier: identifier, Err: err}
}
