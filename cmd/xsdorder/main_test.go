package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", name, err)
	}
	return path
}

func fixtureSchemas(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, "orders.xsd", `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:orders">
  <xs:import namespace="urn:common" schemaLocation="common.xsd"/>
  <xs:element name="order" type="xs:string"/>
</xs:schema>`)
	writeFixture(t, dir, "common.xsd", `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:common"/>`)
	return dir
}

func TestRunOrder(t *testing.T) {
	dir := fixtureSchemas(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"order", filepath.Join(dir, "orders.xsd")}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr = %s", code, stderr.String())
	}
	lines := strings.Fields(stdout.String())
	if len(lines) != 2 || lines[0] != "common.xsd" || lines[1] != "orders.xsd" {
		t.Fatalf("run() stdout = %q, want common.xsd then orders.xsd", stdout.String())
	}
}

func TestRunOrderCycle(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.xsd", `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:a">
  <xs:import namespace="urn:b" schemaLocation="b.xsd"/>
</xs:schema>`)
	writeFixture(t, dir, "b.xsd", `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:b">
  <xs:import namespace="urn:a" schemaLocation="a.xsd"/>
</xs:schema>`)

	var stdout, stderr bytes.Buffer
	code := run([]string{"order", filepath.Join(dir, "a.xsd")}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("run() = %d, want 1 on cycle", code)
	}
	if !strings.Contains(stderr.String(), "cycle") {
		t.Fatalf("run() stderr = %q, want cycle reported", stderr.String())
	}
}

func TestRunValidate(t *testing.T) {
	dir := fixtureSchemas(t)
	good := writeFixture(t, dir, "good.xml", `<order xmlns="urn:orders">ok</order>`)
	bad := writeFixture(t, dir, "bad.xml", `<order xmlns="urn:orders"><unclosed>`)

	var stdout, stderr bytes.Buffer
	code := run([]string{"validate", "--schema", filepath.Join(dir, "orders.xsd"), good, bad}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("run() = %d, want 1 with an invalid document", code)
	}
	out := stdout.String()
	if !strings.Contains(out, "good.xml validates") {
		t.Fatalf("run() stdout = %q, want good.xml verdict", out)
	}
	if !strings.Contains(out, "bad.xml fails to validate") {
		t.Fatalf("run() stdout = %q, want bad.xml verdict", out)
	}
}

func TestRunValidateAllValid(t *testing.T) {
	dir := fixtureSchemas(t)
	good := writeFixture(t, dir, "good.xml", `<order xmlns="urn:orders">ok</order>`)

	var stdout, stderr bytes.Buffer
	code := run([]string{"validate", "--schema", filepath.Join(dir, "orders.xsd"), good}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr = %s", code, stderr.String())
	}
}

func TestRunValidateMissingSchemaFlag(t *testing.T) {
	dir := fixtureSchemas(t)
	doc := writeFixture(t, dir, "doc.xml", `<order xmlns="urn:orders"/>`)

	var stdout, stderr bytes.Buffer
	code := run([]string{"validate", doc}, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("run() = %d, want 2 on usage error", code)
	}
}

func TestRunOrderNoArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"order"}, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("run() = %d, want 2 on usage error", code)
	}
}
