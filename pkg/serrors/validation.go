package serrors

import (
	"github.com/go-faster/errors"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/iota-uz/refconsole/pkg/constants"
)

type ValidationError struct {
	Field     string
	Tag       string
	Param     string
	LocaleKey string
	// Default is the English message produced by the validator translations.
	Default string
}

// ValidationErrors maps struct field names to their first failure.
type ValidationErrors map[string]ValidationError

var translator = func() ut.Translator {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(constants.Validate, trans); err != nil {
		panic(err)
	}
	return trans
}()

// ValidateStruct runs the shared validator. The bool is true when v is valid.
func ValidateStruct(v any, fieldLocaleKey func(field string) string) (ValidationErrors, bool) {
	err := constants.Validate.Struct(v)
	if err == nil {
		return ValidationErrors{}, true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{"": {Default: err.Error()}}, false
	}
	return ProcessValidatorErrors(verrs, fieldLocaleKey), false
}

func ProcessValidatorErrors(errs validator.ValidationErrors, fieldLocaleKey func(field string) string) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		key := ""
		if fieldLocaleKey != nil {
			key = fieldLocaleKey(field)
		}
		out[field] = ValidationError{
			Field:     field,
			Tag:       fe.Tag(),
			Param:     fe.Param(),
			LocaleKey: key,
			Default:   fe.Translate(translator),
		}
	}
	return out
}

// LocalizeValidationErrors renders every error through the ValidationErrors.<tag>
// message of the localizer. Missing messages fall back to the English default.
func LocalizeValidationErrors(errs ValidationErrors, l *i18n.Localizer) map[string]string {
	out := make(map[string]string, len(errs))
	for field, ve := range errs {
		out[field] = localize(ve, l)
	}
	return out
}

func localize(ve ValidationError, l *i18n.Localizer) string {
	if l == nil {
		return ve.Default
	}
	label := ve.Field
	if ve.LocaleKey != "" {
		if v, err := l.Localize(&i18n.LocalizeConfig{MessageID: ve.LocaleKey}); err == nil && v != "" {
			label = v
		}
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID: "ValidationErrors." + ve.Tag,
		TemplateData: map[string]string{
			"Field": label,
			"Param": ve.Param,
		},
	})
	if err != nil || msg == "" {
		return ve.Default
	}
	return msg
}
