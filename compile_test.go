package schemaset

import (
	"testing"
	"testing/fstest"

	"github.com/jacoelho/schemaset/errors"
)

func TestCompilerCollectsIncludedElements(t *testing.T) {
	fsys := fstest.MapFS{
		"orders.xsd": schemaDoc("urn:orders",
			includeDirective("orders-items.xsd"),
			`<xs:element name="order" type="xs:string"/>`),
		"orders-items.xsd": schemaDoc("urn:orders",
			`<xs:element name="item" type="xs:string"/>`),
	}

	compiled, err := NewCompiler(NewFSResolver(fsys)).Compile("orders.xsd")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if compiled.Identifier() != "orders.xsd" {
		t.Fatalf("Identifier() = %q, want orders.xsd", compiled.Identifier())
	}
	if compiled.TargetNamespace() != "urn:orders" {
		t.Fatalf("TargetNamespace() = %q, want urn:orders", compiled.TargetNamespace())
	}
	for _, name := range []string{"order", "item"} {
		if !compiled.DeclaresElement("urn:orders", name) {
			t.Fatalf("DeclaresElement(urn:orders, %s) = false, want true", name)
		}
	}
}

func TestCompilerExcludesImportedNamespaces(t *testing.T) {
	fsys := fstest.MapFS{
		"orders.xsd": schemaDoc("urn:orders",
			importDirective("urn:parties", "parties.xsd"),
			`<xs:element name="order" type="xs:string"/>`),
		"parties.xsd": schemaDoc("urn:parties",
			`<xs:element name="party" type="xs:string"/>`),
	}

	compiled, err := NewCompiler(NewFSResolver(fsys)).Compile("orders.xsd")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if compiled.DeclaresElement("urn:orders", "party") {
		t.Fatal("DeclaresElement(urn:orders, party) = true, want imported element excluded")
	}
	if compiled.DeclaresElement("urn:parties", "party") {
		t.Fatal("DeclaresElement(urn:parties, party) = true, want foreign namespace rejected")
	}
}

func TestCompilerChameleonIncludeContributesElements(t *testing.T) {
	fsys := fstest.MapFS{
		"orders.xsd": schemaDoc("urn:orders",
			includeDirective("chameleon.xsd")),
		"chameleon.xsd": schemaDoc("",
			`<xs:element name="note" type="xs:string"/>`),
	}

	compiled, err := NewCompiler(NewFSResolver(fsys)).Compile("orders.xsd")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !compiled.DeclaresElement("urn:orders", "note") {
		t.Fatal("DeclaresElement(urn:orders, note) = false, want chameleon element adopted")
	}
}

func TestCompilerExcludesNoNamespaceImports(t *testing.T) {
	fsys := fstest.MapFS{
		"orders.xsd": schemaDoc("urn:orders",
			`<xs:import schemaLocation="nons.xsd"/>`,
			`<xs:element name="order" type="xs:string"/>`),
		"nons.xsd": schemaDoc("",
			`<xs:element name="party" type="xs:string"/>`),
	}

	compiled, err := NewCompiler(NewFSResolver(fsys)).Compile("orders.xsd")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if compiled.DeclaresElement("urn:orders", "party") {
		t.Fatal("DeclaresElement(urn:orders, party) = true, want no-namespace import excluded")
	}
	if !compiled.DeclaresElement("urn:orders", "order") {
		t.Fatal("DeclaresElement(urn:orders, order) = false, want root element declared")
	}
}

func TestCompilerMissingSchema(t *testing.T) {
	_, err := NewCompiler(NewFSResolver(fstest.MapFS{})).Compile("absent.xsd")
	if err == nil {
		t.Fatal("Compile() error = nil, want not-found error")
	}
}

func TestCompilerCyclicSchemas(t *testing.T) {
	fsys := fstest.MapFS{
		"a.xsd": schemaDoc("urn:shared", includeDirective("b.xsd")),
		"b.xsd": schemaDoc("urn:shared", includeDirective("a.xsd")),
	}

	_, err := NewCompiler(NewFSResolver(fsys)).Compile("a.xsd")
	if _, ok := errors.AsCycle(err); !ok {
		t.Fatalf("Compile() error = %v, want cycle error", err)
	}
}

func TestCompiledSchemaNilReceiver(t *testing.T) {
	var compiled *CompiledSchema
	if compiled.Identifier() != "" || compiled.TargetNamespace() != "" {
		t.Fatal("nil CompiledSchema accessors should return zero values")
	}
	if compiled.DeclaresElement("", "root") {
		t.Fatal("DeclaresElement() on nil receiver = true, want false")
	}
}
