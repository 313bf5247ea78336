// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The omniconf Authors

package omniconf

import (
	"fmt"
	"reflect"
)

// ObjectSource turns an arbitrary structured object into configuration.
//
// A struct (or pointer to struct) emits one entry per exported field, with
// the field name converted to UPPER_SNAKE ("MaxConnections" becomes
// "MAX_CONNECTIONS"). Function-typed fields are skipped. A `config` struct
// tag renames the emitted key; `config:"-"` excludes the field. Field values
// are emitted as-is, so nested structures stay nested.
//
// A map with string keys is emitted verbatim with normalized keys.
//
// ObjectSource is the Go rendition of "load settings from a code-defined
// object": the canonical use is a defaults struct passed to [FromObject] as
// the lowest-precedence layer.
type ObjectSource struct {
	Object any
}

// NewObjectSource returns an [ObjectSource] for obj.
func NewObjectSource(obj any) *ObjectSource {
	return &ObjectSource{Object: obj}
}

// Load implements [Source].
func (s *ObjectSource) Load() (map[string]any, error) {
	value := reflect.ValueOf(s.Object)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, fmt.Errorf("object is a nil %s", value.Type())
		}
		value = value.Elem()
	}

	switch value.Kind() {
	case reflect.Struct:
		return structEntries(value), nil
	case reflect.Map:
		if value.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("map keys must be strings, got %s", value.Type().Key())
		}
		values := make(map[string]any, value.Len())
		iter := value.MapRange()
		for iter.Next() {
			values[NormalizeKey(iter.Key().String())] = iter.Value().Interface()
		}
		return values, nil
	default:
		return nil, fmt.Errorf("unsupported object kind %s", value.Kind())
	}
}

// structEntries enumerates the exported fields of a struct value.
func structEntries(value reflect.Value) map[string]any {
	values := make(map[string]any)
	structType := value.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Type.Kind() == reflect.Func {
			continue
		}

		key := fieldKey(field.Name)
		if tag, ok := field.Tag.Lookup("config"); ok {
			if tag == "-" {
				continue
			}
			key = NormalizeKey(tag)
		}

		values[key] = value.Field(i).Interface()
	}
	return values
}

func (s *ObjectSource) String() string {
	return fmt.Sprintf("object %T", s.Object)
}
