package controllers

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/iota-uz/refconsole/modules/usergroups/domain/aggregates/group"
	"github.com/iota-uz/refconsole/modules/usergroups/presentation/controllers/dtos"
	"github.com/iota-uz/refconsole/modules/usergroups/services"
	"github.com/iota-uz/refconsole/pkg/application"
	"github.com/iota-uz/refconsole/pkg/bulkdelete"
	"github.com/iota-uz/refconsole/pkg/composables"
	"github.com/iota-uz/refconsole/pkg/httpapi"
	"github.com/iota-uz/refconsole/pkg/intl"
	"github.com/iota-uz/refconsole/pkg/metrics"
	"github.com/iota-uz/refconsole/pkg/middleware"
	"github.com/iota-uz/refconsole/pkg/serrors"
	"github.com/iota-uz/refconsole/pkg/session"
)

type UserGroupAPIController struct {
	app         application.Application
	groups      *services.GroupService
	memberships *services.MembershipService
	pageSize    int
	maxPageSize int
	basePath    string
}

func NewUserGroupAPIController(app application.Application, pageSize, maxPageSize int) application.Controller {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &UserGroupAPIController{
		app:         app,
		groups:      app.Service(services.GroupService{}).(*services.GroupService),
		memberships: app.Service(services.MembershipService{}).(*services.MembershipService),
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
		basePath:    "/usergroups/api",
	}
}

func (c *UserGroupAPIController) Key() string {
	return c.basePath
}

func (c *UserGroupAPIController) Register(r *mux.Router) {
	api := r.PathPrefix(c.basePath).Subrouter()
	api.Use(middleware.ProvideLocalizer(c.app))

	api.HandleFunc("/groups", metrics.InstrumentAPI("groups.list", c.ListGroups)).Methods(http.MethodGet)
	api.HandleFunc("/groups:delete-multiple", metrics.InstrumentAPI("groups.delete_multiple", c.DeleteGroups)).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id}", metrics.InstrumentAPI("groups.get", c.GetGroup)).Methods(http.MethodGet)

	sessions := "/membership-sessions"
	api.HandleFunc(sessions, metrics.InstrumentAPI("membership.open", c.OpenSession)).Methods(http.MethodPost)
	api.HandleFunc(sessions+"/{sid}", metrics.InstrumentAPI("membership.get", c.GetSession)).Methods(http.MethodGet)
	api.HandleFunc(sessions+"/{sid}", metrics.InstrumentAPI("membership.close", c.CloseSession)).Methods(http.MethodDelete)
	api.HandleFunc(sessions+"/{sid}/lists/{side}", metrics.InstrumentAPI("membership.render", c.RenderList)).Methods(http.MethodGet)
	api.HandleFunc(sessions+"/{sid}/refresh", metrics.InstrumentAPI("membership.refresh", c.Refresh)).Methods(http.MethodPost)
	api.HandleFunc(sessions+"/{sid}/filter", metrics.InstrumentAPI("membership.filter", c.Filter)).Methods(http.MethodPost)
	api.HandleFunc(sessions+"/{sid}/page", metrics.InstrumentAPI("membership.page", c.Page)).Methods(http.MethodPost)
	api.HandleFunc(sessions+"/{sid}/select", metrics.InstrumentAPI("membership.select", c.Select)).Methods(http.MethodPost)
	api.HandleFunc(sessions+"/{sid}/transfer", metrics.InstrumentAPI("membership.transfer", c.Transfer)).Methods(http.MethodPost)
	api.HandleFunc(sessions+"/{sid}/zones", metrics.InstrumentAPI("membership.zones", c.Zones)).Methods(http.MethodPut)
	api.HandleFunc(sessions+"/{sid}/pointer", metrics.InstrumentAPI("membership.pointer", c.Pointer)).Methods(http.MethodPost)
	api.HandleFunc(sessions+"/{sid}/save", metrics.InstrumentAPI("membership.save", c.Save)).Methods(http.MethodPost)
}

func (c *UserGroupAPIController) searchGroups(ctx context.Context, q dtos.GroupQuery) (dtos.GroupPage, error) {
	params := &group.FindParams{Query: q.Q, Page: q.Page, PerPage: q.PerPage}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 {
		params.PerPage = c.pageSize
	}
	if c.maxPageSize > 0 && params.PerPage > c.maxPageSize {
		params.PerPage = c.maxPageSize
	}
	items, total, err := c.groups.Search(ctx, params)
	if err != nil {
		return dtos.GroupPage{}, err
	}
	out := make([]dtos.Group, len(items))
	for i, g := range items {
		out[i] = dtos.GroupFromDomain(g)
	}
	return dtos.GroupPage{
		Items:   out,
		Total:   total,
		Page:    params.Page,
		PerPage: params.PerPage,
		HasMore: int64(params.Page*params.PerPage) < total,
	}, nil
}

func (c *UserGroupAPIController) ListGroups(w http.ResponseWriter, r *http.Request) {
	paginated := composables.UsePaginated(r, c.pageSize, c.maxPageSize)
	page, err := c.searchGroups(r.Context(), dtos.GroupQuery{
		Q:       composables.GetLastQueryParam(r, "q"),
		Page:    paginated.Page,
		PerPage: paginated.PerPage,
	})
	if err != nil {
		httpapi.WriteServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, page)
}

func (c *UserGroupAPIController) GetGroup(w http.ResponseWriter, r *http.Request) {
	g, err := c.groups.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.GroupFromDomain(g))
}

func (c *UserGroupAPIController) DeleteGroups(w http.ResponseWriter, r *http.Request) {
	var req dtos.DeleteMultipleRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, httpapi.CodeInvalidRequest, err.Error())
		return
	}
	if errs, ok := req.Ok(r.Context()); !ok {
		httpapi.WriteInvalidRequest(w, r, intl.T(r.Context(), "Errors.ValidationFailed", "validation failed", nil), errs)
		return
	}
	var refreshed any
	collector := &bulkdelete.Collector{RefreshFunc: func(ctx context.Context) error {
		page, err := c.searchGroups(ctx, req.Query)
		if err != nil {
			return err
		}
		refreshed = page
		return nil
	}}
	res := c.groups.DeleteMultiple(r.Context(), req.Items, collector.Hooks())
	_ = httpapi.WriteJSON(w, http.StatusOK, bulkdelete.NewResponse(r.Context(), res, collector, refreshed))
}

// writeSessionError maps session and gesture errors; upstream failures fall
// through to the shared mapping.
func writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, session.ErrNotFound) {
		httpapi.WriteAPIError(w, r, http.StatusNotFound, httpapi.CodeNotFound,
			intl.T(r.Context(), "UserGroups.Errors.SessionNotFound", "session not found", nil))
		return
	}
	var coded *serrors.Error
	if errors.As(err, &coded) {
		l, _ := intl.UseLocalizer(r.Context())
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrSaveInProgress) {
			status = http.StatusConflict
		}
		httpapi.WriteAPIError(w, r, status, coded.Code, coded.Localize(l))
		return
	}
	httpapi.WriteServiceError(w, r, err)
}

func writeSession(w http.ResponseWriter, r *http.Request, status int, snap services.MembershipSnapshot, err error) {
	if err != nil {
		writeSessionError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, status, dtos.SessionFromSnapshot(snap))
}

// decode answers 400 itself and reports whether the handler may continue.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpapi.DecodeJSON(r, v); err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, httpapi.CodeInvalidRequest, err.Error())
		return false
	}
	return true
}
