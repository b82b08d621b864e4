package configa

import (
	"fmt"
	"strings"
)

// Cast selects the conversion applied to a raw string.
type Cast int

const (
	// CastNone keeps the raw string.
	CastNone Cast = iota
	// CastInt converts the raw string to an int.
	CastInt
)

func (c Cast) String() string {
	switch c {
	case CastNone:
		return "string"
	case CastInt:
		return "int"
	default:
		return fmt.Sprintf("Cast(%d)", int(c))
	}
}

// ParseCast maps "", "str", "string" and "int" to a Cast.
func ParseCast(raw string) (Cast, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none", "str", "string":
		return CastNone, nil
	case "int":
		return CastInt, nil
	default:
		return CastNone, fmt.Errorf("unknown cast type %q", raw)
	}
}

// KeyCase selects the case transform applied to dictionary keys.
type KeyCase int

const (
	KeyCaseNone KeyCase = iota
	KeyCaseUpper
	KeyCaseLower
)

func (k KeyCase) String() string {
	switch k {
	case KeyCaseNone:
		return "none"
	case KeyCaseUpper:
		return "upper"
	case KeyCaseLower:
		return "lower"
	default:
		return fmt.Sprintf("KeyCase(%d)", int(k))
	}
}

// ParseKeyCase maps "", "none", "upper" and "lower" to a KeyCase.
func ParseKeyCase(raw string) (KeyCase, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none":
		return KeyCaseNone, nil
	case "upper":
		return KeyCaseUpper, nil
	case "lower":
		return KeyCaseLower, nil
	default:
		return KeyCaseNone, fmt.Errorf("unknown key case %q", raw)
	}
}

// ScalarOptions controls a single option lookup.
type ScalarOptions struct {
	Required bool
	Cast     Cast
	// List splits the raw value on commas. It takes precedence over Cast.
	List bool
}

// DictOptions controls a whole-section lookup.
type DictOptions struct {
	Required bool
	// Cast applies to values.
	Cast Cast
	// KeyCast takes precedence over KeyCase.
	KeyCast Cast
	KeyCase KeyCase
	List    bool
}
