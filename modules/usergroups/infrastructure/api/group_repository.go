package api

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/refconsole/modules/usergroups/domain/aggregates/group"
	"github.com/iota-uz/refconsole/pkg/bulkdelete"
	"github.com/iota-uz/refconsole/pkg/refapi"
)

type GroupRepository struct {
	resource *refapi.Resource[groupDTO]
}

func NewGroupRepository(client *refapi.Client, path string) group.Repository {
	return &GroupRepository{resource: refapi.NewResource[groupDTO](client, path)}
}

func (r *GroupRepository) Search(ctx context.Context, params *group.FindParams) ([]group.Group, int64, error) {
	var search refapi.SearchParams
	if params != nil {
		search = refapi.SearchParams{Query: params.Query, Page: params.Page, PerPage: params.PerPage}
	}
	page, err := r.resource.Search(ctx, search)
	if err != nil {
		return nil, 0, errors.Wrap(err, "search groups")
	}
	groups := make([]group.Group, len(page.Items))
	for i, dto := range page.Items {
		groups[i] = toDomainGroup(dto)
	}
	return groups, page.Total, nil
}

func (r *GroupRepository) GetByID(ctx context.Context, id string) (group.Group, error) {
	dto, err := r.resource.Get(ctx, id)
	if err != nil {
		return group.Group{}, errors.Wrapf(err, "get group %s", id)
	}
	return toDomainGroup(dto), nil
}

func (r *GroupRepository) Save(ctx context.Context, g group.Group) (group.Group, error) {
	res, err := r.resource.Save(ctx, g.ID(), toSaveGroupRequest(g))
	if err != nil {
		return group.Group{}, errors.Wrap(err, "save group")
	}
	if err := res.Err(); err != nil {
		return group.Group{}, err
	}
	if res.Data.ID == "" {
		return g, nil
	}
	return toDomainGroup(res.Data), nil
}

func (r *GroupRepository) CheckDeleteMultiple(ctx context.Context, items []bulkdelete.Candidate) (bulkdelete.CheckResult, error) {
	return r.resource.CheckDeleteMultiple(ctx, items)
}

func (r *GroupRepository) DeleteMultiple(ctx context.Context, items []bulkdelete.Candidate) (bulkdelete.CommitResult, error) {
	return r.resource.DeleteMultiple(ctx, items)
}

func (r *GroupRepository) DeleteURL() string {
	return r.resource.DeleteURL()
}
