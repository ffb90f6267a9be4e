// internal/node/config.go
package node

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Config is the option bag handed to Initialize. Each variant defines which
// keys it recognizes and ignores the rest.
type Config map[string]cty.Value

// ConfigFrom builds a Config from plain Go values using their implied cty
// types.
func ConfigFrom(values map[string]any) (Config, error) {
	cfg := make(Config, len(values))
	for k, v := range values {
		ty, err := gocty.ImpliedType(v)
		if err != nil {
			return nil, fmt.Errorf("%w: option '%s': %w", ErrInvalidConfig, k, err)
		}
		cv, err := gocty.ToCtyValue(v, ty)
		if err != nil {
			return nil, fmt.Errorf("%w: option '%s': %w", ErrInvalidConfig, k, err)
		}
		cfg[k] = cv
	}
	return cfg, nil
}

// Has reports whether the option is present and not null.
func (c Config) Has(name string) bool {
	v, ok := c[name]
	return ok && !v.IsNull()
}

// String returns the named option, or fallback when it is absent.
func (c Config) String(name, fallback string) (string, error) {
	if !c.Has(name) {
		return fallback, nil
	}
	var s string
	if err := c.Decode(name, &s); err != nil {
		return "", err
	}
	return s, nil
}

// Bool returns the named option, or fallback when it is absent.
func (c Config) Bool(name string, fallback bool) (bool, error) {
	if !c.Has(name) {
		return fallback, nil
	}
	var b bool
	if err := c.Decode(name, &b); err != nil {
		return false, err
	}
	return b, nil
}

// Number returns the named option, or fallback when it is absent.
func (c Config) Number(name string, fallback float64) (float64, error) {
	if !c.Has(name) {
		return fallback, nil
	}
	var f float64
	if err := c.Decode(name, &f); err != nil {
		return 0, err
	}
	return f, nil
}

// Decode converts the named option into target, which must be a pointer to a
// type gocty understands.
func (c Config) Decode(name string, target any) error {
	v, ok := c[name]
	if !ok {
		return fmt.Errorf("%w: option '%s' is not set", ErrInvalidConfig, name)
	}
	if !v.IsWhollyKnown() {
		return fmt.Errorf("%w: option '%s' is not known", ErrInvalidConfig, name)
	}
	if err := gocty.FromCtyValue(v, target); err != nil {
		return fmt.Errorf("%w: option '%s': %w", ErrInvalidConfig, name, err)
	}
	return nil
}
