package configa

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestValueEncoding(t *testing.T) {
	t.Parallel()

	values := map[string]Value{
		"int":  IntValue(1234),
		"list": ListValue([]string{"a", "b"}),
		"str":  StringValue("x"),
	}

	raw, err := json.Marshal(values)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if want := `{"int":1234,"list":["a","b"],"str":"x"}`; string(raw) != want {
		t.Fatalf("expected %s, got %s", want, raw)
	}

	out, err := yaml.Marshal(values)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if want := "int: 1234\nlist:\n    - a\n    - b\nstr: x\n"; string(out) != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestValueAccessors(t *testing.T) {
	t.Parallel()

	list := ListValue([]string{"a"})
	got := list.List()
	got[0] = "mutated"
	if list.List()[0] != "a" {
		t.Fatalf("expected List to return a copy")
	}
	if StringValue("s").List() != nil {
		t.Fatalf("expected nil list for string values")
	}
	if IntValue(5).String() != "5" {
		t.Fatalf("expected textual int")
	}
	if IntKey(9).String() != "9" || !IntKey(9).IsInt() {
		t.Fatalf("unexpected int key rendering")
	}
}

func TestParseFlags(t *testing.T) {
	t.Parallel()

	if c, err := ParseCast("INT"); err != nil || c != CastInt {
		t.Fatalf("ParseCast(INT) = %v, %v", c, err)
	}
	if c, err := ParseCast(""); err != nil || c != CastNone {
		t.Fatalf("ParseCast(\"\") = %v, %v", c, err)
	}
	if _, err := ParseCast("float"); err == nil {
		t.Fatalf("expected error for unknown cast")
	}
	if k, err := ParseKeyCase("upper"); err != nil || k != KeyCaseUpper {
		t.Fatalf("ParseKeyCase(upper) = %v, %v", k, err)
	}
	if _, err := ParseKeyCase("title"); err == nil {
		t.Fatalf("expected error for unknown key case")
	}
}
