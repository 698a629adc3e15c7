package refapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-faster/errors"

	"github.com/iota-uz/refconsole/pkg/bulkdelete"
)

type SearchParams struct {
	Query   string
	Filters map[string]string
	Page    int
	PerPage int
}

func (p SearchParams) body() map[string]any {
	body := make(map[string]any, len(p.Filters)+3)
	for k, v := range p.Filters {
		if strings.TrimSpace(v) != "" {
			body[k] = v
		}
	}
	if q := strings.TrimSpace(p.Query); q != "" {
		body["q"] = q
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	body["page"] = page
	if p.PerPage > 0 {
		body["perPage"] = p.PerPage
	}
	return body
}

type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

type SaveResult[T any] struct {
	StatusCode int
	Message    string
	Data       T
}

func (r SaveResult[T]) OK() bool {
	return r.StatusCode == StatusSuccess
}

// Err converts a rejected save into an *Error matching the status sentinels.
func (r SaveResult[T]) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Status: r.StatusCode, Message: r.Message}
}

// Resource is a typed view of one reference API collection. It implements
// bulkdelete.Gateway.
type Resource[T any] struct {
	client *Client
	path   string
}

func NewResource[T any](client *Client, path string) *Resource[T] {
	return &Resource[T]{client: client, path: "/" + strings.Trim(path, "/")}
}

func (r *Resource[T]) Path() string {
	return r.path
}

// DeleteURL is the commit endpoint handed to conflict reports.
func (r *Resource[T]) DeleteURL() string {
	return r.path + "/delete-multiple"
}

func (r *Resource[T]) item(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func (r *Resource[T]) Search(ctx context.Context, params SearchParams) (Page[T], error) {
	env, err := r.client.Do(ctx, http.MethodPost, r.path+"/search", nil, params.body())
	if err != nil {
		return Page[T]{}, err
	}
	if err := env.Err(); err != nil {
		return Page[T]{}, err
	}
	page, err := decode[Page[T]](env)
	if err != nil {
		return Page[T]{}, err
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if strings.TrimSpace(id) == "" {
		return zero, errors.New("refapi: empty id")
	}
	env, err := r.client.Do(ctx, http.MethodGet, r.item(id), nil, nil)
	if err != nil {
		return zero, err
	}
	if err := env.Err(); err != nil {
		return zero, err
	}
	return decode[T](env)
}

// Save creates the record when id is empty and updates it otherwise. The
// upstream status marker is returned rather than turned into an error.
func (r *Resource[T]) Save(ctx context.Context, id string, payload any) (SaveResult[T], error) {
	method, path := http.MethodPost, r.path
	if strings.TrimSpace(id) != "" {
		method, path = http.MethodPut, r.item(id)
	}
	env, err := r.client.Do(ctx, method, path, nil, payload)
	if err != nil {
		return SaveResult[T]{}, err
	}
	res := SaveResult[T]{StatusCode: env.Status, Message: env.Message}
	if !env.Success {
		res.StatusCode = nonSuccess(env.Status)
		return res, nil
	}
	data, err := decode[T](env)
	if err != nil {
		return res, err
	}
	res.Data = data
	return res, nil
}

type deleteRequest struct {
	Items []bulkdelete.Candidate `json:"items"`
}

func (r *Resource[T]) CheckDeleteMultiple(ctx context.Context, items []bulkdelete.Candidate) (bulkdelete.CheckResult, error) {
	env, err := r.client.Do(ctx, http.MethodPost, r.path+"/check-delete-multiple", nil, deleteRequest{Items: items})
	if err != nil {
		return bulkdelete.CheckResult{}, err
	}
	if !env.Success {
		return bulkdelete.CheckResult{Success: false}, nil
	}
	report, err := decode[bulkdelete.ConflictReport](env)
	if err != nil {
		return bulkdelete.CheckResult{}, err
	}
	return bulkdelete.CheckResult{Success: true, Report: report}, nil
}

func (r *Resource[T]) DeleteMultiple(ctx context.Context, items []bulkdelete.Candidate) (bulkdelete.CommitResult, error) {
	env, err := r.client.Do(ctx, http.MethodPost, r.DeleteURL(), nil, deleteRequest{Items: items})
	if err != nil {
		return bulkdelete.CommitResult{}, err
	}
	status := env.Status
	if !env.Success {
		status = nonSuccess(status)
	}
	return bulkdelete.CommitResult{Success: env.Success, StatusCode: status}, nil
}

// nonSuccess keeps an unsuccessful envelope from carrying the success marker.
func nonSuccess(status int) int {
	if status == StatusSuccess {
		return http.StatusUnprocessableEntity
	}
	return status
}
