package intl

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestGetSupportedLanguages(t *testing.T) {
	require.Len(t, GetSupportedLanguages(nil), 2)
	langs := GetSupportedLanguages([]string{"zh", "fr"})
	require.Len(t, langs, 1)
	require.Equal(t, language.Chinese, langs[0].Tag)
}

func TestT(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, "fallback", T(ctx, "Any", "fallback", nil))
	require.Panics(t, func() { MustT(ctx, "Any") })

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.MustParseMessageFileBytes([]byte(`{"Greeting": "Hello {{.Name}}"}`), "en.json")
	ctx = WithLocalizer(ctx, i18n.NewLocalizer(bundle, "en"))

	require.Equal(t, "Hello Ann", T(ctx, "Greeting", "x", map[string]any{"Name": "Ann"}))
	require.Equal(t, "x", T(ctx, "Missing", "x", nil))
}

func TestUseLocale(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, language.English, UseLocale(ctx, language.English))
	ctx = WithLocale(ctx, language.Chinese)
	require.Equal(t, language.Chinese, UseLocale(ctx, language.English))
}
