package configa

import (
	"errors"
	"fmt"
)

var (
	// ErrRequired matches every *MissingError.
	ErrRequired = errors.New("required configuration missing")
	// ErrNoConfigFile is reported when Parse is called before a path is set.
	ErrNoConfigFile = errors.New("no configuration file set")
	// ErrTypeMismatch is returned by SetDict when a coerced key or value does
	// not fit the destination map type.
	ErrTypeMismatch = errors.New("configuration value type mismatch")
)

// MissingError identifies a required section or option that is absent.
// Option is empty when the whole section is missing.
type MissingError struct {
	Section string
	Option  string
}

func (e *MissingError) Error() string {
	if e.Option == "" {
		return fmt.Sprintf("required section [%s] not found", e.Section)
	}
	return fmt.Sprintf("required option %q not found in section [%s]", e.Option, e.Section)
}

// Is reports ErrRequired so callers can classify without errors.As.
func (e *MissingError) Is(target error) bool {
	return target == ErrRequired
}

// CastError reports a raw value that could not be converted to the requested type.
type CastError struct {
	Section string
	Option  string
	Value   string
	Cast    Cast
	Err     error
}

func (e *CastError) Error() string {
	return fmt.Sprintf("section [%s] option %q: cannot cast %q to %s: %v", e.Section, e.Option, e.Value, e.Cast, e.Err)
}

func (e *CastError) Unwrap() error {
	return e.Err
}
