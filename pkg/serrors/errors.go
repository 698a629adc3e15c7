package serrors

import (
	"github.com/iota-uz/go-i18n/v2/i18n"
)

// Error is a coded error. Errors with the same code match under errors.Is.
type Error struct {
	Code      string
	Message   string
	LocaleKey string
}

func NewError(code, message, localeKey string) *Error {
	return &Error{Code: code, Message: message, LocaleKey: localeKey}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Localize falls back to Message when the locale key is unknown.
func (e *Error) Localize(l *i18n.Localizer) string {
	if l == nil || e.LocaleKey == "" {
		return e.Message
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: e.LocaleKey, Other: e.Message},
	})
	if err != nil || msg == "" {
		return e.Message
	}
	return msg
}
