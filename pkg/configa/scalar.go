package configa

import (
	"strconv"
	"strings"
)

const listDelimiter = ","

// ParseScalar looks up option in section and coerces it per opts. found is
// false when the lookup missed and was not required.
func (c *Config) ParseScalar(section, option string, opts ScalarOptions) (value Value, found bool, err error) {
	values, ok := c.table[section]
	if !ok {
		if opts.Required {
			return Value{}, false, &MissingError{Section: section}
		}
		return Value{}, false, nil
	}

	raw, ok := values[option]
	if !ok {
		if opts.Required {
			return Value{}, false, &MissingError{Section: section, Option: option}
		}
		return Value{}, false, nil
	}

	value, err = coerce(section, option, raw, opts.Cast, opts.List)
	if err != nil {
		return Value{}, false, err
	}
	return value, true, nil
}

func coerce(section, option, raw string, cast Cast, list bool) (Value, error) {
	switch {
	case list:
		return ListValue(SplitList(raw)), nil
	case cast == CastInt:
		n, err := toInt(raw)
		if err != nil {
			return Value{}, &CastError{Section: section, Option: option, Value: raw, Cast: cast, Err: err}
		}
		return IntValue(n), nil
	default:
		return StringValue(raw), nil
	}
}

func toInt(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}

// SplitList splits raw on commas, trims each token and drops empty ones.
func SplitList(raw string) []string {
	parts := strings.Split(raw, listDelimiter)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
