// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The omniconf Authors

package omniconf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Format identifies a configuration file format.
type Format string

// Supported configuration file formats.
const (
	FormatJSON Format = "json"
	FormatINI  Format = "ini"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// DetectFormat picks a [Format] from the file extension, defaulting to JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini":
		return FormatINI
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// FileSource loads configuration from a single file.
//
// For JSON, TOML and YAML the file must contain a top-level mapping; its
// keys become configuration keys and nested structures are preserved as
// nested values. INI files are inherently flat: every entry is emitted as
// SECTION_KEY, and keys that appear before any section header keep their
// bare name.
//
// A missing or malformed file is always a load failure. Hiding a broken
// config file from the user is worse than failing the load.
type FileSource struct {
	Path   string
	Format Format
}

// NewFileSource returns a [FileSource] with the format detected from the
// path's extension.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path, Format: DetectFormat(path)}
}

// Load implements [Source].
func (s *FileSource) Load() (map[string]any, error) {
	if s.Format == FormatINI {
		return s.loadINI()
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}

	var values map[string]any
	switch s.Format {
	case FormatJSON, "":
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", s.Format)
	}

	normalized := make(map[string]any, len(values))
	for key, value := range values {
		normalized[NormalizeKey(key)] = value
	}
	return normalized, nil
}

// loadINI flattens an INI file into SECTION_KEY entries. All values are
// strings; INI has no type information to preserve.
func (s *FileSource) loadINI() (map[string]any, error) {
	file, err := ini.Load(s.Path)
	if err != nil {
		return nil, fmt.Errorf("parse INI: %w", err)
	}

	values := make(map[string]any)
	for _, section := range file.Sections() {
		prefix := ""
		if section.Name() != ini.DefaultSection {
			prefix = section.Name() + "_"
		}
		for _, key := range section.Keys() {
			values[NormalizeKey(prefix+key.Name())] = key.Value()
		}
	}
	return values, nil
}

func (s *FileSource) String() string {
	return fmt.Sprintf("file %q", s.Path)
}
