package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/iota-uz/refconsole/modules/tasktypes/domain/aggregates/tasktype"
	"github.com/iota-uz/refconsole/modules/tasktypes/presentation/controllers/dtos"
	"github.com/iota-uz/refconsole/modules/tasktypes/services"
	"github.com/iota-uz/refconsole/pkg/application"
	"github.com/iota-uz/refconsole/pkg/bulkdelete"
	"github.com/iota-uz/refconsole/pkg/composables"
	"github.com/iota-uz/refconsole/pkg/excel"
	"github.com/iota-uz/refconsole/pkg/httpapi"
	"github.com/iota-uz/refconsole/pkg/intl"
	"github.com/iota-uz/refconsole/pkg/metrics"
	"github.com/iota-uz/refconsole/pkg/middleware"
)

type TaskTypeAPIController struct {
	app         application.Application
	taskTypes   *services.TaskTypeService
	pageSize    int
	maxPageSize int
	basePath    string
}

func NewTaskTypeAPIController(app application.Application, pageSize, maxPageSize int) application.Controller {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &TaskTypeAPIController{
		app:         app,
		taskTypes:   app.Service(services.TaskTypeService{}).(*services.TaskTypeService),
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
		basePath:    "/task-types/api",
	}
}

func (c *TaskTypeAPIController) Key() string {
	return c.basePath
}

func (c *TaskTypeAPIController) Register(r *mux.Router) {
	api := r.PathPrefix(c.basePath).Subrouter()
	api.Use(middleware.ProvideLocalizer(c.app))

	api.HandleFunc("/task-types", metrics.InstrumentAPI("task_types.list", c.List)).Methods(http.MethodGet)
	api.HandleFunc("/task-types", metrics.InstrumentAPI("task_types.create", c.Create)).Methods(http.MethodPost)
	api.HandleFunc("/task-types:delete-multiple", metrics.InstrumentAPI("task_types.delete_multiple", c.DeleteMultiple)).Methods(http.MethodPost)
	api.HandleFunc("/task-types:export", metrics.InstrumentAPI("task_types.export", c.Export)).Methods(http.MethodGet)
	api.HandleFunc("/task-types/{id}", metrics.InstrumentAPI("task_types.get", c.Get)).Methods(http.MethodGet)
	api.HandleFunc("/task-types/{id}", metrics.InstrumentAPI("task_types.update", c.Update)).Methods(http.MethodPut)
}

func (c *TaskTypeAPIController) params(q dtos.TaskTypeQuery) *tasktype.FindParams {
	p := &tasktype.FindParams{Query: q.Q, Page: q.Page, PerPage: q.PerPage}
	if s := tasktype.Status(q.Status); s.Valid() {
		p.Status = s
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = c.pageSize
	}
	if c.maxPageSize > 0 && p.PerPage > c.maxPageSize {
		p.PerPage = c.maxPageSize
	}
	return p
}

func (c *TaskTypeAPIController) search(ctx context.Context, q dtos.TaskTypeQuery) (dtos.TaskTypePage, error) {
	p := c.params(q)
	items, total, err := c.taskTypes.Search(ctx, p)
	if err != nil {
		return dtos.TaskTypePage{}, err
	}
	out := make([]dtos.TaskType, len(items))
	for i, t := range items {
		out[i] = dtos.TaskTypeFromDomain(t)
	}
	return dtos.TaskTypePage{
		Items:   out,
		Total:   total,
		Page:    p.Page,
		PerPage: p.PerPage,
		HasMore: int64(p.Page*p.PerPage) < total,
	}, nil
}

func (c *TaskTypeAPIController) List(w http.ResponseWriter, r *http.Request) {
	paginated := composables.UsePaginated(r, c.pageSize, c.maxPageSize)
	page, err := c.search(r.Context(), dtos.TaskTypeQuery{
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

func (c *TaskTypeAPIController) Get(w http.ResponseWriter, r *http.Request) {
	t, err := c.taskTypes.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.TaskTypeFromDomain(t))
}

func (c *TaskTypeAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto tasktype.CreateDTO
	if err := httpapi.DecodeJSON(r, &dto); err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, httpapi.CodeInvalidRequest, err.Error())
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		httpapi.WriteValidationError(w, r, intl.T(r.Context(), "Errors.ValidationFailed", "validation failed", nil), errs)
		return
	}
	created, err := c.taskTypes.Create(r.Context(), &dto)
	if err != nil {
		httpapi.WriteServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, dtos.TaskTypeFromDomain(created))
}

func (c *TaskTypeAPIController) Update(w http.ResponseWriter, r *http.Request) {
	var dto tasktype.UpdateDTO
	if err := httpapi.DecodeJSON(r, &dto); err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, httpapi.CodeInvalidRequest, err.Error())
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		httpapi.WriteValidationError(w, r, intl.T(r.Context(), "Errors.ValidationFailed", "validation failed", nil), errs)
		return
	}
	updated, err := c.taskTypes.Update(r.Context(), mux.Vars(r)["id"], &dto)
	if err != nil {
		httpapi.WriteServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.TaskTypeFromDomain(updated))
}

func (c *TaskTypeAPIController) DeleteMultiple(w http.ResponseWriter, r *http.Request) {
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
		page, err := c.search(ctx, req.Query)
		if err != nil {
			return err
		}
		refreshed = page
		return nil
	}}
	res := c.taskTypes.DeleteMultiple(r.Context(), req.Items, collector.Hooks())
	_ = httpapi.WriteJSON(w, http.StatusOK, bulkdelete.NewResponse(r.Context(), res, collector, refreshed))
}

func (c *TaskTypeAPIController) Export(w http.ResponseWriter, r *http.Request) {
	q, err := composables.UseQuery(&dtos.TaskTypeQuery{}, r)
	if err != nil {
		httpapi.WriteAPIError(w, r, http.StatusBadRequest, httpapi.CodeInvalidRequest, err.Error())
		return
	}
	data, err := c.taskTypes.Export(r.Context(), *c.params(*q))
	if err != nil {
		httpapi.WriteServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", excel.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", excel.Filename("task-types", time.Now())))
	_, _ = w.Write(data)
}
