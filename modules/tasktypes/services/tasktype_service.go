package services

import (
	"context"
	"strings"

	"github.com/go-faster/errors"

	"github.com/iota-uz/refconsole/modules/tasktypes/domain/aggregates/tasktype"
	"github.com/iota-uz/refconsole/pkg/bulkdelete"
	"github.com/iota-uz/refconsole/pkg/eventbus"
	"github.com/iota-uz/refconsole/pkg/excel"
)

const ResourceName = "task-types"

type TaskTypeService struct {
	repo      tasktype.Repository
	publisher eventbus.EventBus
	protocol  *bulkdelete.Protocol
	exporter  *excel.Exporter
}

func NewTaskTypeService(repo tasktype.Repository, publisher eventbus.EventBus) *TaskTypeService {
	return &TaskTypeService{
		repo:      repo,
		publisher: publisher,
		protocol: bulkdelete.New(repo, bulkdelete.Options{
			Resource:  ResourceName,
			DeleteURL: repo.DeleteURL(),
		}),
		exporter: excel.NewExporter(excel.DefaultOptions()),
	}
}

func (s *TaskTypeService) Search(ctx context.Context, params *tasktype.FindParams) ([]tasktype.TaskType, int64, error) {
	if params != nil {
		params.Query = strings.TrimSpace(params.Query)
	}
	return s.repo.Search(ctx, params)
}

func (s *TaskTypeService) GetByID(ctx context.Context, id string) (tasktype.TaskType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TaskTypeService) Create(ctx context.Context, dto *tasktype.CreateDTO) (tasktype.TaskType, error) {
	if dto == nil {
		return tasktype.TaskType{}, errors.New("missing dto")
	}
	return s.repo.Save(ctx, tasktype.New(dto.Fields()))
}

func (s *TaskTypeService) Update(ctx context.Context, id string, dto *tasktype.UpdateDTO) (tasktype.TaskType, error) {
	if dto == nil {
		return tasktype.TaskType{}, errors.New("missing dto")
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return tasktype.TaskType{}, err
	}
	next := tasktype.Hydrate(current.ID(), dto.Fields(), dto.Version, current.CreatedAt(), current.UpdatedAt())
	return s.repo.Save(ctx, next)
}

func (s *TaskTypeService) DeleteMultiple(ctx context.Context, items []bulkdelete.Candidate, hooks bulkdelete.Hooks) bulkdelete.Result {
	res := s.protocol.Run(ctx, items, hooks)
	if s.publisher != nil {
		s.publisher.Publish(&bulkdelete.OutcomeEvent{
			Resource:   ResourceName,
			Outcome:    res.Outcome,
			Candidates: items,
		})
	}
	return res
}

// Export writes a single page of the search, capped at the upstream page limit.
func (s *TaskTypeService) Export(ctx context.Context, params tasktype.FindParams) ([]byte, error) {
	items, _, err := s.Search(ctx, &params)
	if err != nil {
		return nil, err
	}
	return s.exporter.Export(ctx, taskTypeSheet(items))
}

type taskTypeSheet []tasktype.TaskType

func (taskTypeSheet) SheetName() string { return "Task types" }

func (taskTypeSheet) Headers() []string {
	return []string{"Code", "Name", "Description", "Status", "Version"}
}

func (s taskTypeSheet) Rows(context.Context) ([][]any, error) {
	rows := make([][]any, len(s))
	for i, t := range s {
		rows[i] = []any{t.Code(), t.Name(), t.Description(), string(t.Status()), t.Version()}
	}
	return rows, nil
}
