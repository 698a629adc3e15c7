package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/refconsole/modules/logging/domain/entities/actionlog"
	"github.com/iota-uz/refconsole/modules/logging/services"
	"github.com/iota-uz/refconsole/pkg/application"
	"github.com/iota-uz/refconsole/pkg/composables"
	"github.com/iota-uz/refconsole/pkg/httpapi"
)

// gesturePaths are high-frequency widget calls that never reach the upstream.
var gesturePaths = []string{"/pointer", "/zones", "/filter", "/page", "/select", "/transfer", "/refresh"}

// Audited reports whether a request is recorded: mutating methods only, minus
// the widget gestures of membership sessions.
func Audited(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return false
	}
	if !strings.Contains(r.URL.Path, "/membership-sessions") {
		return true
	}
	for _, suffix := range gesturePaths {
		if strings.HasSuffix(r.URL.Path, suffix) {
			return false
		}
	}
	return true
}

// ActionLogMiddleware records mutating requests into action_logs. Logging is
// best-effort: one transaction per request, failures only warn.
func ActionLogMiddleware(app application.Application) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			if app.DB() == nil || !Audited(r) {
				return
			}
			ua, _ := composables.UseUserAgent(r.Context())
			ip, _ := composables.UseIP(r.Context())

			logsService := app.Service(services.LogsService{}).(*services.LogsService)
			ctx := composables.WithPool(r.Context(), app.DB())
			err := composables.InTx(ctx, func(txCtx context.Context) error {
				return logsService.CreateActionLog(txCtx, &actionlog.ActionLog{
					Kind:      actionlog.KindRequest,
					Method:    strings.ToUpper(r.Method),
					Path:      r.URL.Path,
					RequestID: httpapi.RequestID(w, r),
					UserAgent: ua,
					IP:        ip,
					CreatedAt: time.Now(),
				})
			})
			if err != nil {
				var log logrus.FieldLogger = logrus.StandardLogger()
				if entry, lerr := composables.TryUseLogger(r.Context()); lerr == nil {
					log = entry
				}
				log.WithError(err).Warn("action-log: failed to persist request")
			}
		})
	}
}
