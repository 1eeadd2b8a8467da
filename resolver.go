package schemaset

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

// RefKind identifies the kind of schema resolution request.
type RefKind uint8

const (
	// RefKindRoot resolves a schema given directly to the set.
	RefKindRoot RefKind = iota
	// RefKindInclude resolves a same-namespace include directive.
	RefKindInclude
	// RefKindImport resolves a cross-namespace import directive.
	RefKindImport
)

// ResolveRequest describes a schema resolution request. BaseSystemID is the
// canonical identifier of the referencing document, empty for roots.
type ResolveRequest struct {
	BaseSystemID    string
	SchemaLocation  string
	ImportNamespace string
	Kind            RefKind
}

// Resolver is the injected read capability: it resolves schema identifiers
// into readers and canonical system IDs. Implementations must be safe for
// concurrent use.
type Resolver interface {
	Resolve(req ResolveRequest) (doc io.ReadCloser, systemID string, err error)
}

// FSResolver resolves schema documents from an fs.FS with strict path
// validation: locations must be relative, slash-separated, and must not
// escape the filesystem root.
type FSResolver struct {
	fsys fs.FS
}

// NewFSResolver creates a resolver backed by the provided filesystem.
func NewFSResolver(fsys fs.FS) *FSResolver {
	return &FSResolver{fsys: fsys}
}

// Resolve implements Resolver.
func (r *FSResolver) Resolve(req ResolveRequest) (io.ReadCloser, string, error) {
	if r == nil || r.fsys == nil {
		return nil, "", fmt.Errorf("no filesystem configured")
	}
	systemID, err := resolveSystemID(req.BaseSystemID, req.SchemaLocation)
	if err != nil {
		return nil, "", err
	}
	f, err := r.fsys.Open(systemID)
	if err != nil {
		return nil, "", err
	}
	return f, systemID, nil
}

// resolveSystemID canonicalizes a schema location relative to the
// referencing document's system ID.
func resolveSystemID(baseSystemID, schemaLocation string) (string, error) {
	if schemaLocation == "" {
		return "", fmt.Errorf("schema location is empty")
	}
	if strings.Contains(schemaLocation, "\\") || strings.Contains(baseSystemID, "\\") {
		return "", fmt.Errorf("schema location contains backslash: %q", schemaLocation)
	}
	if strings.HasPrefix(schemaLocation, "/") {
		return "", fmt.Errorf("schema location must be relative: %q", schemaLocation)
	}

	joined := schemaLocation
	if dir := path.Dir(baseSystemID); baseSystemID != "" && dir != "." {
		joined = dir + "/" + schemaLocation
	}
	canonical := path.Clean(joined)
	if canonical == "." || canonical == ".." || strings.HasPrefix(canonical, "../") {
		return "", fmt.Errorf("schema location escapes root: %q", schemaLocation)
	}
	return canonical, nil
}
