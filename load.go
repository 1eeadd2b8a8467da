package schemaset

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ResolveFS resolves the dependency load order for one or more schema roots
// on the given filesystem.
func ResolveFS(fsys fs.FS, roots ...string) (LoadOrder, error) {
	set := NewSchemaSet()
	for _, root := range roots {
		if err := set.AddFS(fsys, root); err != nil {
			return nil, fmt.Errorf("resolve %s: %w", root, err)
		}
	}
	return set.ResolveOrder()
}

// ResolveFile resolves the dependency load order for a schema file path,
// with sibling schemas resolved relative to its directory.
func ResolveFile(path string) (LoadOrder, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	return ResolveFS(os.DirFS(dir), base)
}
