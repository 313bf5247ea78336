// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The omniconf Authors

package omniconf

import (
	"fmt"
	"reflect"
	"time"

	"dario.cat/mergo"
)

// Binding declares that one configuration key feeds one field of a call's
// argument struct.
type Binding struct {
	// Key is the configuration key to resolve, in normalized form.
	Key string
	// Field is the name of the argument-struct field the value lands in.
	Field string
}

// BindKey binds key to the field whose name is derived from it:
// "MY_VAR" resolves into the field "MyVar".
func BindKey(key string) Binding {
	return Binding{Key: NormalizeKey(key), Field: keyField(key)}
}

// BindKeyTo binds key to an explicitly named field.
func BindKeyTo(key, field string) Binding {
	return Binding{Key: NormalizeKey(key), Field: field}
}

// Injector resolves a declared set of configuration keys into the fields of
// an argument struct immediately before a call, honoring values the caller
// supplied explicitly.
//
// Construction is side-effect free and independent of load order: an
// Injector may be built long before [Load] runs, because the store is
// resolved on every [Injector.Apply]. Missing configuration therefore
// surfaces at call time, not at construction time.
type Injector struct {
	bindings []Binding
	store    *Store
}

// NewInjector returns an [Injector] that resolves keys from the global
// configuration at call time. With no explicit bindings, the bindings are
// read from `config:"KEY"` tags on the argument struct.
func NewInjector(bindings ...Binding) *Injector {
	return &Injector{bindings: bindings}
}

// WithStore returns a copy of the injector pinned to an explicit store
// instead of the global one.
func (in *Injector) WithStore(store *Store) *Injector {
	return &Injector{bindings: in.bindings, store: store}
}

// Apply fills the bound fields of args, which must be a pointer to a struct.
//
// A field the caller already populated always wins: any non-zero field — and
// any non-nil pointer field, which is how an explicit zero value is passed —
// is left untouched and its key is not resolved at all. Only fields still at
// their zero value are looked up in the store, so a key may be absent as
// long as the caller supplies that argument.
func (in *Injector) Apply(args any) error {
	target := reflect.ValueOf(args)
	if target.Kind() != reflect.Pointer || target.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("inject: args must be a pointer to struct, got %T", args)
	}
	structValue := target.Elem()

	bindings := in.bindings
	if len(bindings) == 0 {
		bindings = tagBindings(structValue.Type())
	}

	store := in.store
	if store == nil {
		var err error
		if store, err = Active(); err != nil {
			return err
		}
	}

	// Resolve into a scratch struct and fold it into args afterwards; mergo
	// only fills fields that are still empty, which is exactly the
	// caller-override contract.
	resolved := reflect.New(structValue.Type())
	for _, binding := range bindings {
		field := structValue.FieldByName(binding.Field)
		if !field.IsValid() {
			return fmt.Errorf("inject: %s has no field %q for key %q",
				structValue.Type(), binding.Field, binding.Key)
		}
		if !field.CanSet() {
			return fmt.Errorf("inject: field %q for key %q is unexported",
				binding.Field, binding.Key)
		}
		if !field.IsZero() {
			continue
		}

		value, err := store.Get(binding.Key)
		if err != nil {
			return err
		}
		if err := assign(resolved.Elem().FieldByName(binding.Field), binding.Key, value); err != nil {
			return err
		}
	}

	if err := mergo.Merge(args, resolved.Interface()); err != nil {
		return fmt.Errorf("inject: merge resolved values: %w", err)
	}
	return nil
}

// Wrap returns a callable that resolves in's bindings into the argument
// struct and then delegates to fn. Fields the caller set on args win over
// configured values; a missing key fails the call with the store's
// [*MissingKeysError].
func Wrap[A, R any](in *Injector, fn func(A) (R, error)) func(A) (R, error) {
	return func(args A) (R, error) {
		if err := in.Apply(&args); err != nil {
			var zero R
			return zero, err
		}
		return fn(args)
	}
}

// tagBindings derives bindings from `config` struct tags.
func tagBindings(structType reflect.Type) []Binding {
	var bindings []Binding
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		tag, ok := field.Tag.Lookup("config")
		if !ok || tag == "-" || !field.IsExported() {
			continue
		}
		bindings = append(bindings, Binding{Key: NormalizeKey(tag), Field: field.Name})
	}
	return bindings
}

// assign sets field to value, coercing scalar representations the same way
// the typed accessors do.
func assign(field reflect.Value, key string, value any) error {
	if value == nil {
		return nil
	}

	fieldType := field.Type()
	if fieldType.Kind() == reflect.Pointer {
		elem := reflect.New(fieldType.Elem())
		if err := assign(elem.Elem(), key, value); err != nil {
			return err
		}
		field.Set(elem)
		return nil
	}

	valueOf := reflect.ValueOf(value)
	if valueOf.Type().AssignableTo(fieldType) {
		field.Set(valueOf)
		return nil
	}

	switch fieldType.Kind() {
	case reflect.String:
		s, err := toString(value)
		if err != nil {
			return &CoercionError{Key: key, Value: value, Target: fieldType.String(), Err: err}
		}
		field.SetString(s)
	case reflect.Bool:
		b, err := toBool(value)
		if err != nil {
			return &CoercionError{Key: key, Value: value, Target: fieldType.String(), Err: err}
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if fieldType == reflect.TypeOf(time.Duration(0)) {
			d, err := toDuration(value)
			if err != nil {
				return &CoercionError{Key: key, Value: value, Target: fieldType.String(), Err: err}
			}
			field.SetInt(int64(d))
			return nil
		}
		i, err := toInt(value)
		if err != nil {
			return &CoercionError{Key: key, Value: value, Target: fieldType.String(), Err: err}
		}
		field.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := toInt(value)
		if err != nil || i < 0 {
			return &CoercionError{Key: key, Value: value, Target: fieldType.String(), Err: err}
		}
		field.SetUint(uint64(i))
	case reflect.Float32, reflect.Float64:
		f, err := toFloat(value)
		if err != nil {
			return &CoercionError{Key: key, Value: value, Target: fieldType.String(), Err: err}
		}
		field.SetFloat(f)
	default:
		if valueOf.Type().ConvertibleTo(fieldType) {
			field.Set(valueOf.Convert(fieldType))
			return nil
		}
		return &CoercionError{Key: key, Value: value, Target: fieldType.String()}
	}
	return nil
}
