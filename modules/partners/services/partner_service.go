package services

import (
	"context"
	"strings"

	"github.com/go-faster/errors"

	"github.com/iota-uz/refconsole/modules/partners/domain/aggregates/partner"
	"github.com/iota-uz/refconsole/pkg/bulkdelete"
	"github.com/iota-uz/refconsole/pkg/eventbus"
	"github.com/iota-uz/refconsole/pkg/excel"
)

const (
	ResourceName = "partners"

	exportPageSize = 200
	exportMaxRows  = 5000
)

var ErrMissingDTO = errors.New("missing dto")

type PartnerService struct {
	repo      partner.Repository
	publisher eventbus.EventBus
	protocol  *bulkdelete.Protocol
	exporter  *excel.Exporter
}

func NewPartnerService(repo partner.Repository, publisher eventbus.EventBus) *PartnerService {
	exportOpts := excel.DefaultOptions()
	exportOpts.MaxRows = exportMaxRows
	return &PartnerService{
		repo:      repo,
		publisher: publisher,
		protocol: bulkdelete.New(repo, bulkdelete.Options{
			Resource:  ResourceName,
			DeleteURL: repo.DeleteURL(),
		}),
		exporter: excel.NewExporter(exportOpts),
	}
}

func (s *PartnerService) Search(ctx context.Context, params *partner.FindParams) ([]partner.Partner, int64, error) {
	if params != nil {
		params.Query = strings.TrimSpace(params.Query)
	}
	return s.repo.Search(ctx, params)
}

func (s *PartnerService) GetByID(ctx context.Context, id string) (partner.Partner, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PartnerService) Create(ctx context.Context, dto *partner.CreateDTO) (partner.Partner, error) {
	if dto == nil {
		return partner.Partner{}, ErrMissingDTO
	}
	return s.repo.Save(ctx, dto.ToEntity())
}

// Update loads the partner and saves it with the version the client read.
func (s *PartnerService) Update(ctx context.Context, id string, dto *partner.UpdateDTO) (partner.Partner, error) {
	if dto == nil {
		return partner.Partner{}, ErrMissingDTO
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return partner.Partner{}, err
	}
	next := partner.Hydrate(current.ID(), dto.Fields(), dto.Version, current.CreatedAt(), current.UpdatedAt())
	return s.repo.Save(ctx, next)
}

// DeleteMultiple runs the check then commit protocol and publishes the outcome.
func (s *PartnerService) DeleteMultiple(ctx context.Context, items []bulkdelete.Candidate, hooks bulkdelete.Hooks) bulkdelete.Result {
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

// Export renders every partner matching params into an xlsx workbook.
func (s *PartnerService) Export(ctx context.Context, params partner.FindParams) ([]byte, error) {
	return s.exporter.Export(ctx, &partnerSheet{service: s, params: params})
}

type partnerSheet struct {
	service *PartnerService
	params  partner.FindParams
}

func (p *partnerSheet) SheetName() string { return "Partners" }

func (p *partnerSheet) Headers() []string {
	return []string{"Code", "Name", "Tax code", "Email", "Phone", "Address", "Status", "Updated"}
}

func (p *partnerSheet) Rows(ctx context.Context) ([][]any, error) {
	params := p.params
	params.PerPage = exportPageSize
	var rows [][]any
	for page := 1; len(rows) < exportMaxRows; page++ {
		params.Page = page
		items, total, err := p.service.Search(ctx, &params)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			rows = append(rows, []any{
				it.Code(), it.Name(), it.TaxCode(), it.Email(), it.Phone(), it.Address(),
				string(it.Status()), it.UpdatedAt(),
			})
		}
		if len(items) == 0 || int64(len(rows)) >= total {
			break
		}
	}
	return rows, nil
}
