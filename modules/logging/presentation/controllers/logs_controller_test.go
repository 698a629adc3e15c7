package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/refconsole/modules/logging/domain/entities/actionlog"
	"github.com/iota-uz/refconsole/modules/logging/infrastructure/persistence"
	"github.com/iota-uz/refconsole/modules/logging/services"
	"github.com/iota-uz/refconsole/pkg/application"
)

func TestBuildActionFilters(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/logs/api/action-logs?kind=event&resource=+groups+&action=delete-multiple&path=/usergroups&from=2026-03-01&to=2026-03-02", nil)

	params := buildActionFilters(r, 25, 50)

	require.Equal(t, actionlog.KindEvent, params.Kind)
	require.Equal(t, "groups", params.Resource)
	require.Equal(t, "delete-multiple", params.Action)
	require.Equal(t, "/usergroups", params.Path)
	require.Equal(t, 25, params.Limit)
	require.Equal(t, 50, params.Offset)
	require.NotNil(t, params.From)
	require.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *params.From)
	require.NotNil(t, params.To)
	require.Equal(t, time.Date(2026, 3, 2, 23, 59, 59, 999999999, time.UTC), *params.To)
}

func TestBuildActionFilters_IgnoresBadDates(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/logs/api/action-logs?from=yesterday&to=03/02/2026", nil)

	params := buildActionFilters(r, 10, 0)

	require.Nil(t, params.From)
	require.Nil(t, params.To)
	require.Empty(t, params.Kind)
}

func TestLogsController_DisabledWithoutDatabase(t *testing.T) {
	app := application.New(&application.ApplicationOptions{})
	app.RegisterServices(services.NewLogsService(persistence.NewActionLogRepository()))

	r := mux.NewRouter()
	NewLogsController(app, 20, 100).Register(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logs/api/action-logs", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), "action log is disabled")
}
