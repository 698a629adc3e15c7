package group

import (
	"context"

	"github.com/iota-uz/refconsole/pkg/bulkdelete"
)

type FindParams struct {
	Query   string
	Page    int
	PerPage int
}

type Repository interface {
	bulkdelete.Gateway

	Search(ctx context.Context, params *FindParams) ([]Group, int64, error)
	GetByID(ctx context.Context, id string) (Group, error)
	// Save sends the group with its members and version. A rejected save
	// returns a *refapi.Error carrying the upstream status.
	Save(ctx context.Context, g Group) (Group, error)
	DeleteURL() string
}
