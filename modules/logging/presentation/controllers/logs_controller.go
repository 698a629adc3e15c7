package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/iota-uz/refconsole/modules/logging/domain/entities/actionlog"
	"github.com/iota-uz/refconsole/modules/logging/services"
	"github.com/iota-uz/refconsole/pkg/application"
	"github.com/iota-uz/refconsole/pkg/composables"
	"github.com/iota-uz/refconsole/pkg/httpapi"
	"github.com/iota-uz/refconsole/pkg/metrics"
	"github.com/iota-uz/refconsole/pkg/middleware"
)

type LogsController struct {
	app         application.Application
	logsService *services.LogsService
	pageSize    int
	maxPageSize int
	basePath    string
}

func NewLogsController(app application.Application, pageSize, maxPageSize int) application.Controller {
	return &LogsController{
		app:         app,
		logsService: app.Service(services.LogsService{}).(*services.LogsService),
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
		basePath:    "/logs/api",
	}
}

func (c *LogsController) Key() string {
	return c.basePath
}

func (c *LogsController) Register(r *mux.Router) {
	api := r.PathPrefix(c.basePath).Subrouter()
	api.Use(middleware.ProvideLocalizer(c.app))
	api.HandleFunc("/action-logs", metrics.InstrumentAPI("logs.list", c.List)).Methods(http.MethodGet)
}

type actionLogResponse struct {
	ID        uint            `json:"id"`
	Kind      string          `json:"kind"`
	Method    string          `json:"method,omitempty"`
	Path      string          `json:"path,omitempty"`
	Resource  string          `json:"resource,omitempty"`
	Action    string          `json:"action,omitempty"`
	Outcome   string          `json:"outcome,omitempty"`
	Before    json.RawMessage `json:"before,omitempty"`
	After     json.RawMessage `json:"after,omitempty"`
	RequestID string          `json:"requestId,omitempty"`
	IP        string          `json:"ip,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type actionLogPage struct {
	Items   []actionLogResponse `json:"items"`
	Total   int64               `json:"total"`
	Page    int                 `json:"page"`
	PerPage int                 `json:"perPage"`
}

func toResponse(l *actionlog.ActionLog) actionLogResponse {
	return actionLogResponse{
		ID:        l.ID,
		Kind:      string(l.Kind),
		Method:    l.Method,
		Path:      l.Path,
		Resource:  l.Resource,
		Action:    l.Action,
		Outcome:   l.Outcome,
		Before:    l.Before,
		After:     l.After,
		RequestID: l.RequestID,
		IP:        l.IP,
		CreatedAt: l.CreatedAt,
	}
}

func (c *LogsController) List(w http.ResponseWriter, r *http.Request) {
	if c.app.DB() == nil {
		httpapi.WriteAPIError(w, r, http.StatusServiceUnavailable, httpapi.CodeInternal, "action log is disabled")
		return
	}
	pagination := composables.UsePaginated(r, c.pageSize, c.maxPageSize)
	params := buildActionFilters(r, pagination.PerPage, (pagination.Page-1)*pagination.PerPage)

	ctx := composables.WithPool(r.Context(), c.app.DB())
	logs, total, err := c.logsService.ListActionLogs(ctx, params)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("list action logs")
		httpapi.WriteAPIError(w, r, http.StatusInternalServerError, httpapi.CodeInternal, "failed to list action logs")
		return
	}
	items := make([]actionLogResponse, len(logs))
	for i, l := range logs {
		items[i] = toResponse(l)
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, actionLogPage{
		Items:   items,
		Total:   total,
		Page:    pagination.Page,
		PerPage: pagination.PerPage,
	})
}

func buildActionFilters(r *http.Request, limit, offset int) *actionlog.FindParams {
	q := r.URL.Query()
	params := &actionlog.FindParams{
		Kind:     actionlog.Kind(strings.TrimSpace(q.Get("kind"))),
		Resource: strings.TrimSpace(q.Get("resource")),
		Action:   strings.TrimSpace(q.Get("action")),
		Path:     strings.TrimSpace(q.Get("path")),
		Limit:    limit,
		Offset:   offset,
	}
	if from := strings.TrimSpace(q.Get("from")); from != "" {
		if parsed, err := time.Parse(time.DateOnly, from); err == nil {
			params.From = &parsed
		}
	}
	if to := strings.TrimSpace(q.Get("to")); to != "" {
		if parsed, err := time.Parse(time.DateOnly, to); err == nil {
			end := parsed.Add(24*time.Hour - time.Nanosecond)
			params.To = &end
		}
	}
	return params
}
