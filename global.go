// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The omniconf Authors

package omniconf

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// active is the process-wide store handle. Load installs a fully populated
// store with a single pointer swap, so concurrent readers see either the
// complete old mapping or the complete new one, never an interleaving.
var active atomic.Pointer[Store]

// loadSpec collects the convenience parameters accepted by [Load] and [New].
type loadSpec struct {
	object    any
	hasObject bool

	jsonFile string
	iniFile  string
	files    []string

	envPrefix string
	hasEnv    bool

	overrides map[string]any

	extra []Source

	required []string
	reload   bool
	logger   zerolog.Logger
	hasLog   bool
}

// Option configures a [Load] or [New] call.
type Option func(*loadSpec)

// FromObject adds an [ObjectSource] for obj, typically a defaults struct.
// Object configuration is the lowest-precedence layer.
func FromObject(obj any) Option {
	return func(spec *loadSpec) {
		spec.object = obj
		spec.hasObject = true
	}
}

// FromJSONFile adds a JSON [FileSource] for path.
func FromJSONFile(path string) Option {
	return func(spec *loadSpec) {
		spec.jsonFile = path
	}
}

// FromINIFile adds an INI [FileSource] for path.
func FromINIFile(path string) Option {
	return func(spec *loadSpec) {
		spec.iniFile = path
	}
}

// FromFile adds a [FileSource] for path with the format detected from its
// extension. Files added this way merge after the JSON and INI convenience
// files, in the order given.
func FromFile(path string) Option {
	return func(spec *loadSpec) {
		spec.files = append(spec.files, path)
	}
}

// WithEnvPrefix adds an [EnvSource] scoped to prefix, with the prefix
// stripped from emitted keys. Environment configuration overrides every
// file but loses to explicit overrides.
func WithEnvPrefix(prefix string) Option {
	return func(spec *loadSpec) {
		spec.envPrefix = prefix
		spec.hasEnv = true
	}
}

// WithOverrides adds a [MapSource] holding explicit overrides — the
// highest-precedence layer.
func WithOverrides(overrides map[string]any) Option {
	return func(spec *loadSpec) {
		spec.overrides = overrides
	}
}

// WithSources appends custom sources. They merge after the environment and
// before overrides, in the order given.
func WithSources(sources ...Source) Option {
	return func(spec *loadSpec) {
		spec.extra = append(spec.extra, sources...)
	}
}

// WithRequired lists keys that must be present after the merge. Validation
// failure aborts the load; for the global [Load] the previous store stays
// active.
func WithRequired(keys ...string) Option {
	return func(spec *loadSpec) {
		spec.required = append(spec.required, keys...)
	}
}

// WithReload allows [Load] to replace an already-installed global store.
// Without it a second Load fails with [ErrAlreadyLoaded].
func WithReload() Option {
	return func(spec *loadSpec) {
		spec.reload = true
	}
}

// WithLogger attaches a zerolog logger to the constructed store.
func WithLogger(logger zerolog.Logger) Option {
	return func(spec *loadSpec) {
		spec.logger = logger
		spec.hasLog = true
	}
}

// sources assembles the merge sequence in the fixed, documented order:
// object, JSON file, INI file, other files, environment, extra sources,
// overrides. The order is load-bearing — it is what makes explicit
// overrides always win and environment beat files — so it never depends on
// the order options were passed in.
func (spec *loadSpec) sources() []Source {
	var sources []Source
	if spec.hasObject {
		sources = append(sources, NewObjectSource(spec.object))
	}
	if spec.jsonFile != "" {
		sources = append(sources, &FileSource{Path: spec.jsonFile, Format: FormatJSON})
	}
	if spec.iniFile != "" {
		sources = append(sources, &FileSource{Path: spec.iniFile, Format: FormatINI})
	}
	for _, path := range spec.files {
		sources = append(sources, NewFileSource(path))
	}
	if spec.hasEnv {
		sources = append(sources, NewEnvSource(spec.envPrefix))
	}
	sources = append(sources, spec.extra...)
	if spec.overrides != nil {
		sources = append(sources, MapSource(spec.overrides))
	}
	return sources
}

// New builds and populates a standalone [Store] from convenience options.
// It is the instance-level counterpart of [Load] for code that should not
// touch process-wide state.
func New(opts ...Option) (*Store, error) {
	spec := &loadSpec{}
	for _, opt := range opts {
		opt(spec)
	}

	var storeOpts []StoreOption
	if spec.hasLog {
		storeOpts = append(storeOpts, WithStoreLogger(spec.logger))
	}

	store := NewStore(storeOpts...)
	if err := store.Load(spec.sources()...); err != nil {
		return nil, err
	}
	if len(spec.required) > 0 {
		if err := store.Require(spec.required...); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Load builds a fresh store from the given options and installs it as the
// process-wide configuration.
//
// The first Load transitions the global state from uninitialized to loaded.
// A second Load fails with [ErrAlreadyLoaded] unless [WithReload] is given,
// in which case the new store replaces the old one. The swap is atomic and
// happens only after the merge and any [WithRequired] validation succeed: a
// failed load never leaves a partially replaced store behind.
func Load(opts ...Option) error {
	if active.Load() != nil {
		spec := &loadSpec{}
		for _, opt := range opts {
			opt(spec)
		}
		if !spec.reload {
			return ErrAlreadyLoaded
		}
	}

	store, err := New(opts...)
	if err != nil {
		return err
	}

	active.Store(store)
	return nil
}

// Active returns the installed global store, or [ErrNotInitialized] when
// [Load] has not succeeded yet. Callers performing several lookups should
// take the store once and use it for the whole operation.
func Active() (*Store, error) {
	store := active.Load()
	if store == nil {
		return nil, ErrNotInitialized
	}
	return store, nil
}

// Get returns the value stored under key in the global configuration.
func Get(key string) (any, error) {
	store, err := Active()
	if err != nil {
		return nil, err
	}
	return store.Get(key)
}

// GetDefault returns the value stored under key in the global
// configuration, or def when the key is absent.
func GetDefault(key string, def any) (any, error) {
	store, err := Active()
	if err != nil {
		return nil, err
	}
	return store.GetDefault(key, def), nil
}

// Require validates that every key is present in the global configuration.
func Require(keys ...string) error {
	store, err := Active()
	if err != nil {
		return err
	}
	return store.Require(keys...)
}

// Reset discards the global store, returning the package to its
// uninitialized state. Test helper; production code has no reason to unload
// configuration.
func Reset() {
	active.Store(nil)
}
