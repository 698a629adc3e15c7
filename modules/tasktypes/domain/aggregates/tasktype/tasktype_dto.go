package tasktype

import (
	"context"

	"github.com/iota-uz/refconsole/pkg/intl"
	"github.com/iota-uz/refconsole/pkg/serrors"
)

type CreateDTO struct {
	Code        string `json:"code" validate:"required,max=32,alphanumunicode"`
	Name        string `json:"name" validate:"required,max=128"`
	Description string `json:"description" validate:"omitempty,max=1024"`
	Status      string `json:"status" validate:"omitempty,oneof=enabled disabled"`
}

type UpdateDTO struct {
	CreateDTO
	Version int64 `json:"version" validate:"gte=1"`
}

var fieldLocaleKeys = map[string]string{
	"Code":        "TaskTypes.Fields.Code",
	"Name":        "TaskTypes.Fields.Name",
	"Description": "TaskTypes.Fields.Description",
	"Status":      "TaskTypes.Fields.Status",
	"Version":     "TaskTypes.Fields.Version",
}

func fieldLocaleKey(field string) string {
	return fieldLocaleKeys[field]
}

func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	return check(ctx, d)
}

func (d *UpdateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	return check(ctx, d)
}

func check(ctx context.Context, v any) (map[string]string, bool) {
	errs, ok := serrors.ValidateStruct(v, fieldLocaleKey)
	if ok {
		return map[string]string{}, true
	}
	l, _ := intl.UseLocalizer(ctx)
	return serrors.LocalizeValidationErrors(errs, l), false
}

func (d *CreateDTO) Fields() Fields {
	status := Status(d.Status)
	if status == "" {
		status = StatusEnabled
	}
	return Fields{
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		Status:      status,
	}
}
