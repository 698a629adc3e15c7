package api

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/refconsole/modules/partners/domain/aggregates/partner"
	"github.com/iota-uz/refconsole/pkg/bulkdelete"
	"github.com/iota-uz/refconsole/pkg/refapi"
)

type PartnerRepository struct {
	resource *refapi.Resource[partnerDTO]
}

func NewPartnerRepository(client *refapi.Client, path string) partner.Repository {
	return &PartnerRepository{resource: refapi.NewResource[partnerDTO](client, path)}
}

func (r *PartnerRepository) Search(ctx context.Context, params *partner.FindParams) ([]partner.Partner, int64, error) {
	search := refapi.SearchParams{}
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
		return nil, 0, errors.Wrap(err, "search partners")
	}
	out := make([]partner.Partner, len(page.Items))
	for i, dto := range page.Items {
		out[i] = toDomainPartner(dto)
	}
	return out, page.Total, nil
}

func (r *PartnerRepository) GetByID(ctx context.Context, id string) (partner.Partner, error) {
	dto, err := r.resource.Get(ctx, id)
	if err != nil {
		return partner.Partner{}, errors.Wrapf(err, "get partner %s", id)
	}
	return toDomainPartner(dto), nil
}

func (r *PartnerRepository) Save(ctx context.Context, p partner.Partner) (partner.Partner, error) {
	res, err := r.resource.Save(ctx, p.ID(), toSaveRequest(p))
	if err != nil {
		return partner.Partner{}, errors.Wrap(err, "save partner")
	}
	if err := res.Err(); err != nil {
		return partner.Partner{}, err
	}
	if res.Data.ID == "" {
		return p, nil
	}
	return toDomainPartner(res.Data), nil
}

func (r *PartnerRepository) CheckDeleteMultiple(ctx context.Context, items []bulkdelete.Candidate) (bulkdelete.CheckResult, error) {
	return r.resource.CheckDeleteMultiple(ctx, items)
}

func (r *PartnerRepository) DeleteMultiple(ctx context.Context, items []bulkdelete.Candidate) (bulkdelete.CommitResult, error) {
	return r.resource.DeleteMultiple(ctx, items)
}

func (r *PartnerRepository) DeleteURL() string {
	return r.resource.DeleteURL()
}
