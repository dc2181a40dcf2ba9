package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialect(t *testing.T) {
	for _, kind := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialect(Config{Type: kind, Host: "localhost", Port: "5432", Name: "fatura"})
		require.NoError(t, err, kind)
		assert.Equal(t, kind, d.Name())
	}

	_, err := Dialect(Config{Type: "oracle"})
	assert.Error(t, err)
}
