package configa

import "strings"

// ParseDict projects a whole section into a dictionary. A missing section
// that is not required yields an empty map. When two options normalize to the
// same key, the one later in the file wins.
func (c *Config) ParseDict(section string, opts DictOptions) (map[Key]Value, error) {
	values, ok := c.table[section]
	if !ok {
		if opts.Required {
			return nil, &MissingError{Section: section}
		}
		return map[Key]Value{}, nil
	}

	out := make(map[Key]Value, len(values))
	for _, option := range c.optionOrder(section) {
		key, err := normalizeKey(section, option, opts)
		if err != nil {
			return nil, err
		}
		value, err := coerce(section, option, values[option], opts.Cast, opts.List)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

func normalizeKey(section, option string, opts DictOptions) (Key, error) {
	if opts.KeyCast == CastInt {
		n, err := toInt(option)
		if err != nil {
			return Key{}, &CastError{Section: section, Option: option, Value: option, Cast: CastInt, Err: err}
		}
		return IntKey(n), nil
	}

	switch opts.KeyCase {
	case KeyCaseUpper:
		return StringKey(strings.ToUpper(option)), nil
	case KeyCaseLower:
		return StringKey(strings.ToLower(option)), nil
	default:
		return StringKey(option), nil
	}
}

func (c *Config) optionOrder(section string) []string {
	if names, ok := c.order[section]; ok {
		return names
	}
	names := make([]string, 0, len(c.table[section]))
	for name := range c.table[section] {
		names = append(names, name)
	}
	return names
}
