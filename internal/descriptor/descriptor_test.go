package descriptor

import (
	"strings"
	"testing"
)

func TestParseTargetNamespaceAndDirectives(t *testing.T) {
	const doc = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           targetNamespace="urn:example:orders">
  <xs:import namespace="urn:example:common" schemaLocation="common.xsd"/>
  <xs:include schemaLocation="orders-items.xsd"/>
  <xs:import namespace="urn:example:parties" schemaLocation="parties.xsd"/>
  <xs:element name="order" type="xs:string"/>
</xs:schema>`

	d, err := Parse("orders.xsd", strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if d.Identifier != "orders.xsd" {
		t.Fatalf("Identifier = %q, want %q", d.Identifier, "orders.xsd")
	}
	if d.TargetNamespace != "urn:example:orders" {
		t.Fatalf("TargetNamespace = %q, want %q", d.TargetNamespace, "urn:example:orders")
	}
	if len(d.Imports) != 2 {
		t.Fatalf("Imports = %v, want 2 entries", d.Imports)
	}
	if d.Imports[0].Namespace != "urn:example:common" || d.Imports[0].Location != "common.xsd" {
		t.Fatalf("Imports[0] = %+v, want common.xsd import", d.Imports[0])
	}
	if d.Imports[1].Location != "parties.xsd" {
		t.Fatalf("Imports[1] = %+v, want parties.xsd import", d.Imports[1])
	}
	if len(d.Includes) != 1 || d.Includes[0].Location != "orders-items.xsd" {
		t.Fatalf("Includes = %v, want single orders-items.xsd include", d.Includes)
	}
}

func TestParseNoTargetNamespace(t *testing.T) {
	const doc = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"/>`

	d, err := Parse("chameleon.xsd", strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if d.TargetNamespace != "" {
		t.Fatalf("TargetNamespace = %q, want empty", d.TargetNamespace)
	}
	if len(d.Imports) != 0 || len(d.Includes) != 0 {
		t.Fatalf("directives = %v / %v, want none", d.Imports, d.Includes)
	}
}

func TestParseIgnoresNestedDirectives(t *testing.T) {
	const doc = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:annotation>
    <xs:documentation>
      <xs:import schemaLocation="not-a-real-import.xsd"/>
    </xs:documentation>
  </xs:annotation>
</xs:schema>`

	d, err := Parse("doc.xsd", strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(d.Imports) != 0 {
		t.Fatalf("Imports = %v, want none (nested directives ignored)", d.Imports)
	}
}

func TestParseRejectsNonSchemaRoot(t *testing.T) {
	if _, err := Parse("plain.xml", strings.NewReader(`<library/>`)); err == nil {
		t.Fatal("Parse() error = nil, want non-schema root error")
	}
}

func TestParseRejectsMalformedXML(t *testing.T) {
	const doc = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="unclosed"`

	if _, err := Parse("broken.xsd", strings.NewReader(doc)); err == nil {
		t.Fatal("Parse() error = nil, want parse error")
	}
}

func TestParseRejectsEmptyInput(t *testing.T) {
	if _, err := Parse("empty.xsd", strings.NewReader("")); err == nil {
		t.Fatal("Parse() error = nil, want no root element error")
	}
}

func TestGlobalElements(t *testing.T) {
	const doc = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="order" type="xs:string"/>
  <xs:complexType name="itemType">
    <xs:sequence>
      <xs:element name="nested" type="xs:string"/>
    </xs:sequence>
  </xs:complexType>
  <xs:element name="invoice" type="xs:string"/>
</xs:schema>`

	names, err := GlobalElements("orders.xsd", strings.NewReader(doc))
	if err != nil {
		t.Fatalf("GlobalElements() error = %v", err)
	}
	want := []string{"order", "invoice"}
	if len(names) != len(want) {
		t.Fatalf("GlobalElements() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("GlobalElements() = %v, want %v", names, want)
		}
	}
}
