package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/iota-uz/refconsole/modules/partners/domain/aggregates/partner"
	"github.com/iota-uz/refconsole/modules/partners/presentation/controllers/dtos"
	"github.com/iota-uz/refconsole/modules/partners/services"
	"github.com/iota-uz/refconsole/pkg/application"
	"github.com/iota-uz/refconsole/pkg/bulkdelete"
	"github.com/iota-uz/refconsole/pkg/composables"
	"github.com/iota-uz/refconsole/pkg/excel"
	"github.com/iota-uz/refconsole/pkg/httpapi"
	"github.com/iota-uz/refconsole/pkg/intl"
	"github.com/iota-uz/refconsole/pkg/metrics"
	"github.com/iota-uz/refconsole/pkg/middleware"
)

type PartnerAPIControllerOptions struct {
	PageSize    int
	MaxPageSize int
}

type PartnerAPIController struct {
	app      application.Application
	partners *services.PartnerService
	opts     PartnerAPIControllerOptions
	basePath string
}

func NewPartnerAPIController(app application.Application, opts PartnerAPIControllerOptions) application.Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	return &PartnerAPIController{
		app:      app,
		partners: app.Service(services.PartnerService{}).(*services.PartnerService),
		opts:     opts,
		basePath: "/partners/api",
	}
}

func (c *PartnerAPIController) Key() string {
	return c.basePath
}

func (c *PartnerAPIController) Register(r *mux.Router) {
	api := r.PathPrefix(c.basePath).Subrouter()
	api.Use(middleware.ProvideLocalizer(c.app))

	api.HandleFunc("/partners", metrics.InstrumentAPI("partners.list", c.List)).Methods(http.MethodGet)
	api.HandleFunc("/partners", metrics.InstrumentAPI("partners.create", c.Create)).Methods(http.MethodPost)
	api.HandleFunc("/partners:delete-multiple", metrics.InstrumentAPI("partners.delete_multiple", c.DeleteMultiple)).Methods(http.MethodPost)
	api.HandleFunc("/partners:export", metrics.InstrumentAPI("partners.export", c.Export)).Methods(http.MethodGet)
	api.HandleFunc("/partners/{id}", metrics.InstrumentAPI("partners.get", c.Get)).Methods(http.MethodGet)
	api.HandleFunc("/partners/{id}", metrics.InstrumentAPI("partners.update", c.Update)).Methods(http.MethodPut)
}

func (c *PartnerAPIController) findParams(q dtos.PartnerQuery) *partner.FindParams {
	params := &partner.FindParams{
		Query:   q.Q,
		Status:  partner.Status(q.Status),
		Page:    q.Page,
		PerPage: q.PerPage,
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 {
		params.PerPage = c.opts.PageSize
	}
	if c.opts.MaxPageSize > 0 && params.PerPage > c.opts.MaxPageSize {
		params.PerPage = c.opts.MaxPageSize
	}
	if !params.Status.Valid() {
		params.Status = ""
	}
	return params
}

func (c *PartnerAPIController) search(ctx context.Context, q dtos.PartnerQuery) (dtos.PartnerPage, error) {
	params := c.findParams(q)
	items, total, err := c.partners.Search(ctx, params)
	if err != nil {
		return dtos.PartnerPage{}, err
	}
	return dtos.NewPartnerPage(items, total, params.Page, params.PerPage), nil
}

func (c *PartnerAPIController) List(w http.ResponseWriter, r *http.Request) {
	paginated := composables.UsePaginated(r, c.opts.PageSize, c.opts.MaxPageSize)
	page, err := c.search(r.Context(), dtos.PartnerQuery{
		Q:       composables.GetLastQueryParam(r, "q"),
		Status:  composables.GetLastQueryParam(r, "status"),
		Page:    paginated.Page,
		PerPage: paginated.PerPage,
	})
	if err != nil {
		httpapi.WriteServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, page)
}

func (c *PartnerAPIController) Get(w http.ResponseWriter, r *http.Request) {
	p, err := c.partners.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.PartnerFromDomain(p))
}

func (c *PartnerAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto partner.CreateDTO
	if err := httpapi.DecodeJSON(r, &dto); err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, httpapi.CodeInvalidRequest, err.Error())
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		httpapi.WriteValidationError(w, r, intl.T(r.Context(), "Errors.ValidationFailed", "validation failed", nil), errs)
		return
	}
	created, err := c.partners.Create(r.Context(), &dto)
	if err != nil {
		httpapi.WriteServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, dtos.PartnerFromDomain(created))
}

func (c *PartnerAPIController) Update(w http.ResponseWriter, r *http.Request) {
	var dto partner.UpdateDTO
	if err := httpapi.DecodeJSON(r, &dto); err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, httpapi.CodeInvalidRequest, err.Error())
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		httpapi.WriteValidationError(w, r, intl.T(r.Context(), "Errors.ValidationFailed", "validation failed", nil), errs)
		return
	}
	updated, err := c.partners.Update(r.Context(), mux.Vars(r)["id"], &dto)
	if err != nil {
		httpapi.WriteServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.PartnerFromDomain(updated))
}

// DeleteMultiple answers 200 for every protocol outcome; the outcome field
// tells the client what happened.
func (c *PartnerAPIController) DeleteMultiple(w http.ResponseWriter, r *http.Request) {
	var req dtos.DeleteMultipleRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, httpapi.CodeInvalidRequest, err.Error())
		return
	}
	if errs, ok := req.Ok(r.Context()); !ok {
		httpapi.WriteInvalidRequest(w, r, intl.T(r.Context(), "Errors.ValidationFailed", "validation failed", nil), errs)
		return
	}

	var refreshed *dtos.PartnerPage
	collector := &bulkdelete.Collector{RefreshFunc: func(ctx context.Context) error {
		page, err := c.search(ctx, req.Query)
		if err != nil {
			return err
		}
		refreshed = &page
		return nil
	}}
	res := c.partners.DeleteMultiple(r.Context(), req.Items, collector.Hooks())

	var refreshedBody any
	if refreshed != nil {
		refreshedBody = refreshed
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, bulkdelete.NewResponse(r.Context(), res, collector, refreshedBody))
}

func (c *PartnerAPIController) Export(w http.ResponseWriter, r *http.Request) {
	q, err := composables.UseQuery(&dtos.PartnerQuery{}, r)
	if err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, httpapi.CodeInvalidRequest, err.Error())
		return
	}
	params := c.findParams(*q)
	data, err := c.partners.Export(r.Context(), *params)
	if err != nil {
		httpapi.WriteServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", excel.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", excel.Filename("partners", time.Now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
