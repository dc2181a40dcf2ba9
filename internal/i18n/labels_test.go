package i18n

import (
	"testing"

	"github.com/smallbiznis/fatura/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticOverrides map[string]map[string]string

func (s staticOverrides) Labels() map[string]map[string]string { return s }

func TestBaseTablesAreSymmetric(t *testing.T) {
	require.NoError(t, CheckSymmetric(base))
}

func TestCheckSymmetricReportsMissingKey(t *testing.T) {
	err := CheckSymmetric(map[Language]Table{
		Turkish: {"save": "Kaydet", "print": "Yazdir"},
		English: {"save": "Save"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "print")
}

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage(" EN ")
	require.NoError(t, err)
	assert.Equal(t, English, lang)

	_, err = ParseLanguage("de")
	assert.ErrorIs(t, err, domain.ErrInvalidLanguage)
}

func TestCatalogLookup(t *testing.T) {
	catalog := NewCatalog(staticOverrides{"en": {"tax": "VAT"}})

	assert.Equal(t, "VAT", catalog.Lookup(English, "tax"))
	assert.Equal(t, "Vergi", catalog.Lookup(Turkish, "tax"))
	assert.Equal(t, "unknownKey", catalog.Lookup(English, "unknownKey"))
	assert.Equal(t, "VAT", catalog.Table(English)["tax"])

	assert.Equal(t, "Tax", NewCatalog(nil).Lookup(English, "tax"))
}

func TestNegotiate(t *testing.T) {
	assert.Equal(t, English, Negotiate("en-US,en;q=0.9", Turkish))
	assert.Equal(t, Turkish, Negotiate("tr-TR", English))
	assert.Equal(t, Turkish, Negotiate("", Turkish))
	assert.Equal(t, English, Negotiate("not a header;;", English))
}
