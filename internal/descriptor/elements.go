package descriptor

import (
	"encoding/xml"
	"fmt"
	"io"
)

// GlobalElements returns the names of top-level xs:element declarations in
// document order. The root element must be an XML Schema document.
func GlobalElements(identifier string, r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var names []string
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
			case 1:
				if t.Name.Space == XSDNamespace && t.Name.Local == "element" {
					if name := attrValue(t.Attr, "name"); name != "" {
						names = append(names, name)
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
	return names, nil
}
