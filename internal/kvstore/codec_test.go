package kvstore

import (
	"context"
	"testing"

	"github.com/smallbiznis/fatura/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Currency string `json:"currency"`
}

func TestEncodeTagsVersion(t *testing.T) {
	raw, err := Encode(sample{Currency: "USD"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"data":{"currency":"USD"}}`, string(raw))

	var out sample
	version, err := Decode(raw, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.Equal(t, "USD", out.Currency)
}

func TestDecodeLegacyUntagged(t *testing.T) {
	var out sample
	version, err := Decode([]byte(`{"currency":"TRY","legacyField":true}`), &out)
	require.NoError(t, err)
	assert.Equal(t, 0, version)
	assert.Equal(t, "TRY", out.Currency)

	var list []sample
	version, err = Decode([]byte(`[{"currency":"EUR"}]`), &list)
	require.NoError(t, err)
	assert.Equal(t, 0, version)
	assert.Equal(t, []sample{{Currency: "EUR"}}, list)
}

func TestDecodeCorrupt(t *testing.T) {
	var out sample
	_, err := Decode([]byte(`{"currency":`), &out)
	assert.ErrorIs(t, err, domain.ErrCorruptRecord)

	_, err = Decode([]byte(`{"version":9,"data":{}}`), &out)
	assert.ErrorIs(t, err, domain.ErrCorruptRecord)

	_, err = Decode([]byte(`{"version":1,"data":"not an object"}`), &out)
	assert.ErrorIs(t, err, domain.ErrCorruptRecord)
}

func TestLoadAndSave(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var out sample
	found, err := Load(ctx, store, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, Save(ctx, store, "k", sample{Currency: "GBP"}))
	found, err = Load(ctx, store, "k", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "GBP", out.Currency)
}
