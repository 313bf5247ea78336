package omniconf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStore_Bind verifies that env-tagged structs bind from the merged
// snapshot rather than the process environment.
func TestStore_Bind(t *testing.T) {
	// This variable must NOT leak into the bind.
	t.Setenv("ADDRESS", "from-process-env")

	store := loadedStore(t, map[string]any{
		"ADDRESS":         "localhost:8080",
		"REQUEST_TIMEOUT": "30s",
		"MAX_CONNS":       float64(10),
		"TAGS":            []any{"a", "b"},
	})

	type serverConfig struct {
		Address        string        `env:"ADDRESS"`
		RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
		MaxConns       int           `env:"MAX_CONNS"`
		Tags           []string      `env:"TAGS"`
		Fallback       string        `env:"FALLBACK" envDefault:"def"`
	}

	var cfg serverConfig
	require.NoError(t, store.Bind(&cfg))

	assert.Equal(t, "localhost:8080", cfg.Address)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10, cfg.MaxConns)
	assert.Equal(t, []string{"a", "b"}, cfg.Tags)
	assert.Equal(t, "def", cfg.Fallback)
}

// TestStore_BindValidation verifies the optional validator pass.
func TestStore_BindValidation(t *testing.T) {
	store := loadedStore(t, map[string]any{"PORT": "0"})

	type cfg struct {
		Port int `env:"PORT" validate:"min=1"`
	}

	var c cfg
	err := store.Bind(&c, WithValidation())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate configuration")

	require.NoError(t, store.Reload(MapSource{"PORT": "8080"}))
	require.NoError(t, store.Bind(&c, WithValidation()))
	assert.Equal(t, 8080, c.Port)
}

// TestStore_BindSkipsNonScalars verifies that nested mappings are simply not
// offered to the binder instead of failing the whole bind.
func TestStore_BindSkipsNonScalars(t *testing.T) {
	store := loadedStore(t, map[string]any{
		"NAME": "app",
		"DB":   map[string]any{"host": "x"},
	})

	type cfg struct {
		Name string `env:"NAME"`
		DB   string `env:"DB"`
	}

	var c cfg
	require.NoError(t, store.Bind(&c))
	assert.Equal(t, "app", c.Name)
	assert.Empty(t, c.DB)
}

func TestStringifyValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
		ok   bool
	}{
		{"s", "s", true},
		{true, "true", true},
		{42, "42", true},
		{1.5, "1.5", true},
		{[]any{"a", 1}, "a,1", true},
		{[]string{"x", "y"}, "x,y", true},
		{map[string]any{}, "", false},
	}
	for _, tc := range cases {
		got, ok := stringifyValue(tc.in)
		assert.Equal(t, tc.ok, ok, "stringifyValue(%v)", tc.in)
		assert.Equal(t, tc.want, got, "stringifyValue(%v)", tc.in)
	}
}
