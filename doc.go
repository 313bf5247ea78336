// Package omniconf assembles application configuration from multiple
// heterogeneous sources — environment variables, JSON/INI/TOML/YAML files,
// structured objects, and in-memory overrides — into a single flat,
// key-normalized mapping.
//
// Sources are merged in the order they are given (later sources override
// earlier ones on key collision), the merged mapping is owned by a [Store],
// and a process-wide store is available through the package-level [Load],
// [Get] and [Require] functions. Values can be bound into call sites with
// an [Injector], where explicit caller-supplied arguments always win over
// configured values — the mechanism that makes overriding configuration in
// tests trivial.
//
// A minimal setup:
//
//	err := omniconf.Load(
//		omniconf.FromObject(defaults),
//		omniconf.FromJSONFile("config.json"),
//		omniconf.WithEnvPrefix("MYAPP_"),
//		omniconf.WithOverrides(map[string]any{"DEBUG": true}),
//	)
//
// Convenience options are applied in a fixed, documented order regardless of
// the order they are passed: object, JSON file, INI file, other files,
// environment, extra sources, overrides. Explicit overrides therefore always
// win, and environment variables beat files.
package omniconf
