package omniconf

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// BindOption configures a [Store.Bind] call.
type BindOption func(*bindConfig)

type bindConfig struct {
	validate bool
}

// WithValidation runs go-playground/validator struct-tag validation on the
// target after binding, so `validate:"required,min=1"` style constraints
// apply to bound configuration.
func WithValidation() BindOption {
	return func(cfg *bindConfig) {
		cfg.validate = true
	}
}

// lazyValidator shares one validator instance; validator.New compiles tag
// metadata and is designed to be reused.
var lazyValidator = sync.OnceValue(func() *validator.Validate {
	return validator.New()
})

// Bind decodes the merged configuration into target, a pointer to a struct
// tagged with `env` (and optionally `envDefault`) tags. The snapshot is
// stringified and fed to the env parser in place of the process environment,
// so the same tagged struct binds identically from a file-backed store and
// from real environment variables.
//
// Values that have no scalar string form (nested maps, structs) are skipped;
// tags can only reference scalar and slice-of-scalar entries.
func (s *Store) Bind(target any, opts ...BindOption) error {
	cfg := &bindConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	environment := make(map[string]string)
	for key, value := range s.Snapshot() {
		str, ok := stringifyValue(value)
		if !ok {
			continue
		}
		environment[key] = str
	}

	if err := env.ParseWithOptions(target, env.Options{Environment: environment}); err != nil {
		return fmt.Errorf("bind configuration: %w", err)
	}

	if cfg.validate {
		if err := lazyValidator().Struct(target); err != nil {
			return fmt.Errorf("validate configuration: %w", err)
		}
	}
	return nil
}

// stringifyValue renders a configuration value the way the env parser
// expects it: scalars verbatim, slices as comma-separated elements.
func stringifyValue(value any) (string, bool) {
	if str, err := toString(value); err == nil {
		return str, true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := ""
		for i := 0; i < rv.Len(); i++ {
			element, err := toString(rv.Index(i).Interface())
			if err != nil {
				return "", false
			}
			if i > 0 {
				out += ","
			}
			out += element
		}
		return out, true
	}
	return "", false
}
