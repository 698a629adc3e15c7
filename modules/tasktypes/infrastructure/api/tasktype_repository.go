package api

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/iota-uz/refconsole/modules/tasktypes/domain/aggregates/tasktype"
	"github.com/iota-uz/refconsole/pkg/bulkdelete"
	"github.com/iota-uz/refconsole/pkg/refapi"
)

type taskTypeDTO struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type saveTaskTypeRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	Version     int64  `json:"version,omitempty"`
}

func toDomainTaskType(dto taskTypeDTO) tasktype.TaskType {
	return tasktype.Hydrate(dto.ID, tasktype.Fields{
		Code:        dto.Code,
		Name:        dto.Name,
		Description: dto.Description,
		Status:      tasktype.Status(dto.Status),
	}, dto.Version, dto.CreatedAt, dto.UpdatedAt)
}

type TaskTypeRepository struct {
	resource *refapi.Resource[taskTypeDTO]
}

func NewTaskTypeRepository(client *refapi.Client, path string) tasktype.Repository {
	return &TaskTypeRepository{resource: refapi.NewResource[taskTypeDTO](client, path)}
}

func (r *TaskTypeRepository) Search(ctx context.Context, params *tasktype.FindParams) ([]tasktype.TaskType, int64, error) {
	var search refapi.SearchParams
	if params != nil {
		search = refapi.SearchParams{
			Query:   params.Query,
			Filters: map[string]string{"status": string(params.Status)},
			Page:    params.Page,
			PerPage: params.PerPage,
		}
	}
	page, err := r.resource.Search(ctx, search)
	if err != nil {
		return nil, 0, errors.Wrap(err, "search task types")
	}
	out := make([]tasktype.TaskType, 0, len(page.Items))
	for _, dto := range page.Items {
		out = append(out, toDomainTaskType(dto))
	}
	return out, page.Total, nil
}

func (r *TaskTypeRepository) GetByID(ctx context.Context, id string) (tasktype.TaskType, error) {
	dto, err := r.resource.Get(ctx, id)
	if err != nil {
		return tasktype.TaskType{}, errors.Wrapf(err, "get task type %s", id)
	}
	return toDomainTaskType(dto), nil
}

func (r *TaskTypeRepository) Save(ctx context.Context, t tasktype.TaskType) (tasktype.TaskType, error) {
	res, err := r.resource.Save(ctx, t.ID(), saveTaskTypeRequest{
		Code:        t.Code(),
		Name:        t.Name(),
		Description: t.Description(),
		Status:      string(t.Status()),
		Version:     t.Version(),
	})
	if err != nil {
		return tasktype.TaskType{}, errors.Wrap(err, "save task type")
	}
	if err := res.Err(); err != nil {
		return tasktype.TaskType{}, err
	}
	if res.Data.ID == "" {
		return t, nil
	}
	return toDomainTaskType(res.Data), nil
}

func (r *TaskTypeRepository) CheckDeleteMultiple(ctx context.Context, items []bulkdelete.Candidate) (bulkdelete.CheckResult, error) {
	return r.resource.CheckDeleteMultiple(ctx, items)
}

func (r *TaskTypeRepository) DeleteMultiple(ctx context.Context, items []bulkdelete.Candidate) (bulkdelete.CommitResult, error) {
	return r.resource.DeleteMultiple(ctx, items)
}

func (r *TaskTypeRepository) DeleteURL() string {
	return r.resource.DeleteURL()
}
