package configa

import "fmt"

// SetString assigns the raw value of section/option to dst. dst keeps its
// current value when the lookup misses and required is false.
func (c *Config) SetString(dst *string, section, option string, required bool) error {
	value, found, err := c.ParseScalar(section, option, ScalarOptions{Required: required})
	if err != nil || !found {
		return err
	}
	*dst = value.String()
	return nil
}

// SetInt is SetString with an integer cast.
func (c *Config) SetInt(dst *int, section, option string, required bool) error {
	value, found, err := c.ParseScalar(section, option, ScalarOptions{Required: required, Cast: CastInt})
	if err != nil || !found {
		return err
	}
	*dst = value.Int()
	return nil
}

// SetList assigns the comma separated tokens of section/option to dst.
func (c *Config) SetList(dst *[]string, section, option string, required bool) error {
	value, found, err := c.ParseScalar(section, option, ScalarOptions{Required: required, List: true})
	if err != nil || !found {
		return err
	}
	*dst = value.List()
	return nil
}

// SetDict projects section into dst. K must be string or int to match
// opts.KeyCast; V must be string, int or []string to match opts.Cast and
// opts.List. A missing optional section assigns an empty map.
func SetDict[K comparable, V any](c *Config, dst *map[K]V, section string, opts DictOptions) error {
	dict, err := c.ParseDict(section, opts)
	if err != nil {
		return err
	}

	out := make(map[K]V, len(dict))
	for key, value := range dict {
		k, ok := key.Interface().(K)
		if !ok {
			return fmt.Errorf("section [%s] key %q is %T: %w", section, key.String(), key.Interface(), ErrTypeMismatch)
		}
		v, ok := value.Interface().(V)
		if !ok {
			return fmt.Errorf("section [%s] key %q value is %s: %w", section, key.String(), value.Kind(), ErrTypeMismatch)
		}
		out[k] = v
	}
	*dst = out
	return nil
}
