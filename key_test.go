package omniconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"host":        "HOST",
		"db.host":     "DB_HOST",
		"db-host":     "DB_HOST",
		"db host":     "DB_HOST",
		"ALREADY_UP":  "ALREADY_UP",
		"MixedCase_x": "MIXEDCASE_X",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeKey(in), "NormalizeKey(%q)", in)
	}
}

func TestFieldKey(t *testing.T) {
	cases := map[string]string{
		"Host":           "HOST",
		"MaxConnections": "MAX_CONNECTIONS",
		"DBHost":         "DB_HOST",
		"APIKey":         "API_KEY",
		"HTTPURL":        "HTTPURL",
		"Port8080":       "PORT8080",
	}
	for in, want := range cases {
		assert.Equal(t, want, fieldKey(in), "fieldKey(%q)", in)
	}
}

func TestKeyField(t *testing.T) {
	cases := map[string]string{
		"MY_VAR":     "MyVar",
		"HOST":       "Host",
		"db_host":    "DbHost",
		"__ODD__":    "Odd",
		"RATE_LIMIT": "RateLimit",
	}
	for in, want := range cases {
		assert.Equal(t, want, keyField(in), "keyField(%q)", in)
	}
}
