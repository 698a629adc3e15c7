package partner

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

	Search(ctx context.Context, params *FindParams) ([]Partner, int64, error)
	GetByID(ctx context.Context, id string) (Partner, error)
	Save(ctx context.Context, p Partner) (Partner, error)
	DeleteURL() string
}
