package dtos

import (
	"time"

	"github.com/iota-uz/refconsole/modules/partners/domain/aggregates/partner"
	"github.com/iota-uz/refconsole/pkg/bulkdelete"
)

type Partner struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	TaxCode   string    `json:"taxCode,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func PartnerFromDomain(p partner.Partner) Partner {
	return Partner{
		ID:        p.ID(),
		Code:      p.Code(),
		Name:      p.Name(),
		TaxCode:   p.TaxCode(),
		Email:     p.Email(),
		Phone:     p.Phone(),
		Address:   p.Address(),
		Status:    string(p.Status()),
		Version:   p.Version(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}

type PartnerPage struct {
	Items   []Partner `json:"items"`
	Total   int64     `json:"total"`
	Page    int       `json:"page"`
	PerPage int       `json:"perPage"`
	HasMore bool      `json:"hasMore"`
}

func NewPartnerPage(items []partner.Partner, total int64, page, perPage int) PartnerPage {
	out := make([]Partner, len(items))
	for i, p := range items {
		out[i] = PartnerFromDomain(p)
	}
	return PartnerPage{
		Items:   out,
		Total:   total,
		Page:    page,
		PerPage: perPage,
		HasMore: int64(page*perPage) < total,
	}
}

// PartnerQuery is the list filter, echoed back by the bulk delete endpoint
// so the refreshed page matches what the user was looking at.
type PartnerQuery struct {
	Q       string `json:"q" form:"q"`
	Status  string `json:"status" form:"status"`
	Page    int    `json:"page" form:"page"`
	PerPage int    `json:"limit" form:"limit"`
}

type DeleteMultipleRequest struct {
	bulkdelete.Selection
	Query PartnerQuery `json:"query"`
}
