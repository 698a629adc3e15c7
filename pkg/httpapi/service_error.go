package httpapi

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/iota-uz/refconsole/pkg/composables"
	"github.com/iota-uz/refconsole/pkg/intl"
	"github.com/iota-uz/refconsole/pkg/refapi"
)

// WriteServiceError maps reference API failures to the JSON envelope.
// Anything unrecognised is reported as an upstream failure.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	var apiErr *refapi.Error
	switch {
	case errors.Is(err, refapi.ErrNotFound):
		WriteAPIError(w, r, http.StatusNotFound, CodeNotFound, intl.T(ctx, "Errors.NotFound", "not found", nil))
	case errors.Is(err, refapi.ErrStaleVersion):
		WriteAPIError(w, r, http.StatusConflict, CodeConflict, intl.T(ctx, "Errors.StaleVersion", "record was changed by someone else", nil))
	case errors.Is(err, refapi.ErrInvalid):
		message := intl.T(ctx, "Errors.ValidationFailed", "invalid payload", nil)
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			message = apiErr.Message
		}
		WriteValidationError(w, r, message, nil)
	case errors.Is(err, context.Canceled):
		WriteAPIError(w, r, http.StatusRequestTimeout, CodeInvalidRequest, "request canceled")
	default:
		if logger, lerr := composables.TryUseLogger(ctx); lerr == nil {
			logger.WithError(err).Error("upstream request failed")
		}
		WriteAPIError(w, r, http.StatusBadGateway, CodeUpstreamFailed, intl.T(ctx, "Errors.Upstream", "reference service is unavailable", nil))
	}
}
