package partner

import (
	"context"
	"fmt"

	"github.com/iota-uz/refconsole/pkg/intl"
	"github.com/iota-uz/refconsole/pkg/serrors"
)

type CreateDTO struct {
	Code    string `json:"code" validate:"required,max=32"`
	Name    string `json:"name" validate:"required,max=255"`
	TaxCode string `json:"taxCode" validate:"omitempty,max=32"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Address string `json:"address" validate:"omitempty,max=512"`
	Status  string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type UpdateDTO struct {
	CreateDTO
	Version int64 `json:"version" validate:"gte=1"`
}

func getFieldLocaleKey(field string) string {
	switch field {
	case "Code", "Name", "TaxCode", "Email", "Phone", "Address", "Status", "Version":
		return fmt.Sprintf("Partners.Fields.%s", field)
	default:
		return ""
	}
}

func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	return validate(ctx, d)
}

func (d *UpdateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	return validate(ctx, d)
}

func validate(ctx context.Context, v any) (map[string]string, bool) {
	errs, ok := serrors.ValidateStruct(v, getFieldLocaleKey)
	if ok {
		return map[string]string{}, true
	}
	l, _ := intl.UseLocalizer(ctx)
	return serrors.LocalizeValidationErrors(errs, l), false
}

func (d *CreateDTO) Fields() Fields {
	status := Status(d.Status)
	if status == "" {
		status = StatusActive
	}
	return Fields{
		Code:    d.Code,
		Name:    d.Name,
		TaxCode: d.TaxCode,
		Email:   d.Email,
		Phone:   d.Phone,
		Address: d.Address,
		Status:  status,
	}
}

func (d *CreateDTO) ToEntity() Partner {
	return New(d.Fields())
}
