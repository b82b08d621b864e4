package configa

import (
	"encoding/json"
	"strconv"
)

// Kind describes the payload carried by a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindList:
		return "list"
	default:
		return "string"
	}
}

// Value is a coerced configuration value.
type Value struct {
	kind Kind
	str  string
	num  int
	list []string
}

// StringValue wraps a raw string.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// IntValue wraps an int.
func IntValue(n int) Value { return Value{kind: KindInt, num: n} }

// ListValue wraps a list of tokens.
func ListValue(items []string) Value { return Value{kind: KindList, list: items} }

func (v Value) Kind() Kind { return v.kind }

// String returns the string payload, or a textual rendering for other kinds.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.num)
	case KindList:
		b, _ := json.Marshal(v.list)
		return string(b)
	default:
		return v.str
	}
}

// Int returns the int payload; zero for other kinds.
func (v Value) Int() int { return v.num }

// List returns a copy of the list payload; nil for other kinds.
func (v Value) List() []string {
	if v.kind != KindList {
		return nil
	}
	out := make([]string, len(v.list))
	copy(out, v.list)
	return out
}

// Interface returns the payload as string, int or []string.
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.num
	case KindList:
		return v.List()
	default:
		return v.str
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// Key is a normalized dictionary key: either a string or an int.
type Key struct {
	isInt bool
	str   string
	num   int
}

// StringKey builds a string key.
func StringKey(s string) Key { return Key{str: s} }

// IntKey builds an int key.
func IntKey(n int) Key { return Key{isInt: true, num: n} }

func (k Key) IsInt() bool { return k.isInt }

// Int returns the int key; zero for string keys.
func (k Key) Int() int { return k.num }

func (k Key) String() string {
	if k.isInt {
		return strconv.Itoa(k.num)
	}
	return k.str
}

// Interface returns the key as string or int.
func (k Key) Interface() any {
	if k.isInt {
		return k.num
	}
	return k.str
}

// StringMap renders a dictionary with textual keys, which is what JSON and
// YAML encoders expect.
func StringMap(dict map[Key]Value) map[string]Value {
	out := make(map[string]Value, len(dict))
	for k, v := range dict {
		out[k.String()] = v
	}
	return out
}
