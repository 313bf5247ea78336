package omniconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnvSource_PrefixScoping verifies that only variables with the prefix
// are emitted and that the prefix plus its separator are stripped.
func TestEnvSource_PrefixScoping(t *testing.T) {
	// Arrange
	t.Setenv("MYAPP_X", "1")
	t.Setenv("MYAPP_Y", "2")
	t.Setenv("OTHER_Z", "3")

	// Act
	values, err := NewEnvSource("MYAPP_").Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"X": "1", "Y": "2"}, values)
}

// TestEnvSource_PrefixWithoutSeparator verifies that "MYAPP" and "MYAPP_"
// behave identically: the separator left behind by stripping is trimmed.
func TestEnvSource_PrefixWithoutSeparator(t *testing.T) {
	t.Setenv("MYAPP_TIMEOUT", "30s")

	values, err := NewEnvSource("MYAPP").Load()

	require.NoError(t, err)
	assert.Equal(t, "30s", values["TIMEOUT"])
}

// TestEnvSource_KeepPrefix verifies that KeepPrefix leaves emitted keys
// untouched apart from normalization.
func TestEnvSource_KeepPrefix(t *testing.T) {
	t.Setenv("MYAPP_DEBUG", "true")

	values, err := (&EnvSource{Prefix: "MYAPP_", KeepPrefix: true}).Load()

	require.NoError(t, err)
	assert.Equal(t, "true", values["MYAPP_DEBUG"])
	assert.NotContains(t, values, "DEBUG")
}

// TestEnvSource_CaseSensitivePrefix verifies that the prefix match itself is
// case-sensitive even though emitted keys are normalized.
func TestEnvSource_CaseSensitivePrefix(t *testing.T) {
	t.Setenv("myapp_lower", "no")
	t.Setenv("MYAPP_UPPER", "yes")

	values, err := NewEnvSource("MYAPP_").Load()

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"UPPER": "yes"}, values)
}

// TestEnvSource_NormalizesKeys verifies that emitted keys are upper-cased.
func TestEnvSource_NormalizesKeys(t *testing.T) {
	t.Setenv("myapp_db_host", "localhost")

	values, err := NewEnvSource("myapp_").Load()

	require.NoError(t, err)
	assert.Equal(t, "localhost", values["DB_HOST"])
}

// TestEnvSource_Idempotent verifies that re-running Load with unchanged
// backing data reproduces the same mapping.
func TestEnvSource_Idempotent(t *testing.T) {
	t.Setenv("MYAPP_A", "1")
	t.Setenv("MYAPP_B", "2")

	source := NewEnvSource("MYAPP_")
	first, err := source.Load()
	require.NoError(t, err)
	second, err := source.Load()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
