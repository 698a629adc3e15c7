package tasktype

import (
	"context"

	"github.com/iota-uz/refconsole/pkg/bulkdelete"
)

type FindParams struct {
	Query   string
	Status  Status
	Page    int
	PerPage int
}

type Repository interface {
	bulkdelete.Gateway

	Search(ctx context.Context, params *FindParams) ([]TaskType, int64, error)
	GetByID(ctx context.Context, id string) (TaskType, error)
	Save(ctx context.Context, t TaskType) (TaskType, error)
	DeleteURL() string
}
