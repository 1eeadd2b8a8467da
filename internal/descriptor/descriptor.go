// Package descriptor parses the dependency-relevant header of a schema
// document: its target namespace and its import and include directives.
package descriptor

import (
	"encoding/xml"
	"fmt"
	"io"
)

// XSDNamespace is the XML Schema definition namespace.
const XSDNamespace = "http://www.w3.org/2001/XMLSchema"

// Import is a cross-namespace schema dependency declaration.
type Import struct {
	Namespace string
	Location  string
}

// Include is a same-namespace schema dependency declaration.
type Include struct {
	Location string
}

// Descriptor describes a schema document's identity and direct dependencies.
// It is immutable once returned by Parse.
type Descriptor struct {
	Identifier      string
	TargetNamespace string
	Imports         []Import
	Includes        []Include
}

// Parse reads a schema document header from r. The root element must be an
// XML Schema document; top-level xs:import and xs:include directives are
// collected in document order.
func Parse(identifier string, r io.Reader) (*Descriptor, error) {
	dec := xml.NewDecoder(r)

	d := &Descriptor{Identifier: identifier}
	sawRoot := false
	depth := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", identifier, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch depth {
			case 0:
				if t.Name.Space != XSDNamespace || t.Name.Local != "schema" {
					return nil, fmt.Errorf("parse schema %s: root element is {%s}%s, not an XML Schema document",
						identifier, t.Name.Space, t.Name.Local)
				}
				sawRoot = true
				d.TargetNamespace = attrValue(t.Attr, "targetNamespace")
			case 1:
				if t.Name.Space == XSDNamespace {
					switch t.Name.Local {
					case "import":
						d.Imports = append(d.Imports, Import{
							Namespace: attrValue(t.Attr, "namespace"),
							Location:  attrValue(t.Attr, "schemaLocation"),
						})
					case "include":
						d.Includes = append(d.Includes, Include{
							Location: attrValue(t.Attr, "schemaLocation"),
						})
					}
				}
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("parse schema %s: no root element", identifier)
	}
	return d, nil
}

func attrValue(attrs []xml.Attr, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}
