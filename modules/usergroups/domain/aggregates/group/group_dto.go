package group

import (
	"context"

	"github.com/iota-uz/refconsole/pkg/intl"
	"github.com/iota-uz/refconsole/pkg/serrors"
)

// SaveDTO holds the editable group fields of the assignment dialog. Members
// come from the session, never from the form.
type SaveDTO struct {
	Code        string `json:"code" validate:"required,max=32"`
	Name        string `json:"name" validate:"required,max=128"`
	Description string `json:"description" validate:"omitempty,max=512"`
}

func (d *SaveDTO) Ok(ctx context.Context) (map[string]string, bool) {
	errs, ok := serrors.ValidateStruct(d, func(field string) string {
		return "UserGroups.Fields." + field
	})
	if ok {
		return map[string]string{}, true
	}
	l, _ := intl.UseLocalizer(ctx)
	return serrors.LocalizeValidationErrors(errs, l), false
}

func (d *SaveDTO) Fields() Fields {
	return Fields{Code: d.Code, Name: d.Name, Description: d.Description}
}
