package api

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/refconsole/modules/usergroups/domain/entities/user"
	"github.com/iota-uz/refconsole/pkg/refapi"
)

type UserRepository struct {
	resource *refapi.Resource[userDTO]
}

func NewUserRepository(client *refapi.Client, path string) user.Repository {
	return &UserRepository{resource: refapi.NewResource[userDTO](client, path)}
}

// Search returns the first page of users matching params. Limit bounds the
// page size so the candidate list stays renderable.
func (r *UserRepository) Search(ctx context.Context, params *user.FindParams) ([]user.User, error) {
	search := refapi.SearchParams{Page: 1}
	if params != nil {
		search.Query = params.Query
		search.Filters = map[string]string{"department": params.Department}
		search.PerPage = params.Limit
	}
	page, err := r.resource.Search(ctx, search)
	if err != nil {
		return nil, errors.Wrap(err, "search users")
	}
	users := make([]user.User, len(page.Items))
	for i, dto := range page.Items {
		users[i] = toDomainUser(dto)
	}
	return users, nil
}
