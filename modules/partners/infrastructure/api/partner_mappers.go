package api

import (
	"time"

	"github.com/iota-uz/refconsole/modules/partners/domain/aggregates/partner"
)

type partnerDTO struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	TaxCode   string    `json:"taxCode"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type savePartnerRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	TaxCode string `json:"taxCode,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Status  string `json:"status"`
	Version int64  `json:"version,omitempty"`
}

func toDomainPartner(dto partnerDTO) partner.Partner {
	return partner.Hydrate(dto.ID, partner.Fields{
		Code:    dto.Code,
		Name:    dto.Name,
		TaxCode: dto.TaxCode,
		Email:   dto.Email,
		Phone:   dto.Phone,
		Address: dto.Address,
		Status:  partner.Status(dto.Status),
	}, dto.Version, dto.CreatedAt, dto.UpdatedAt)
}

func toSaveRequest(p partner.Partner) savePartnerRequest {
	return savePartnerRequest{
		Code:    p.Code(),
		Name:    p.Name(),
		TaxCode: p.TaxCode(),
		Email:   p.Email(),
		Phone:   p.Phone(),
		Address: p.Address(),
		Status:  string(p.Status()),
		Version: p.Version(),
	}
}
