package intl

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/iota-uz/refconsole/pkg/constants"
)

var (
	ErrNoLocalizer = errors.New("localizer not found")
)

type SupportedLanguage struct {
	Code        string
	VerboseName string
	Tag         language.Tag
}

var (
	// allSupportedLanguages is the master list of all languages the console supports
	allSupportedLanguages = []SupportedLanguage{
		{
			Code:        "en",
			VerboseName: "English",
			Tag:         language.English,
		},
		{
			Code:        "zh",
			VerboseName: "中文",
			Tag:         language.Chinese,
		},
	}

	SupportedLanguages = allSupportedLanguages
)

// GetSupportedLanguages returns the languages whose codes are in whitelist.
// An empty whitelist returns every supported language.
func GetSupportedLanguages(whitelist []string) []SupportedLanguage {
	if len(whitelist) == 0 {
		return allSupportedLanguages
	}

	whitelistMap := make(map[string]bool)
	for _, code := range whitelist {
		whitelistMap[code] = true
	}

	filtered := make([]SupportedLanguage, 0, len(whitelist))
	for _, lang := range allSupportedLanguages {
		if whitelistMap[lang.Code] {
			filtered = append(filtered, lang)
		}
	}

	return filtered
}

func WithLocalizer(ctx context.Context, l *i18n.Localizer) context.Context {
	return context.WithValue(ctx, constants.LocalizerKey, l)
}

func UseLocalizer(ctx context.Context) (*i18n.Localizer, bool) {
	l, ok := ctx.Value(constants.LocalizerKey).(*i18n.Localizer)
	return l, ok && l != nil
}

func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, constants.LocaleKey, tag)
}

// UseLocale returns the request locale or defaultLocale.
func UseLocale(ctx context.Context, defaultLocale language.Tag) language.Tag {
	tag, ok := ctx.Value(constants.LocaleKey).(language.Tag)
	if !ok {
		return defaultLocale
	}
	return tag
}

// MustT localizes messageID with the context localizer.
func MustT(ctx context.Context, messageID string) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		panic(ErrNoLocalizer)
	}
	return l.MustLocalize(&i18n.LocalizeConfig{MessageID: messageID})
}

// T localizes messageID, returning fallback when no localizer is present or
// the message is missing.
func T(ctx context.Context, messageID, fallback string, data map[string]any) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		return fallback
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: data})
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}
