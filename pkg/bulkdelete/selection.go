package bulkdelete

import (
	"context"

	"github.com/iota-uz/refconsole/pkg/intl"
	"github.com/iota-uz/refconsole/pkg/serrors"
)

// Selection is the request body part shared by every delete-multiple
// endpoint.
type Selection struct {
	Items []Candidate `json:"items" validate:"required,min=1,dive"`
}

func (s *Selection) Ok(ctx context.Context) (map[string]string, bool) {
	errs, ok := serrors.ValidateStruct(s, nil)
	if ok {
		return map[string]string{}, true
	}
	l, _ := intl.UseLocalizer(ctx)
	return serrors.LocalizeValidationErrors(errs, l), false
}
