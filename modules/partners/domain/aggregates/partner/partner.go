package partner

import (
	"strings"
	"time"

	"github.com/iota-uz/refconsole/pkg/bulkdelete"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

type Partner struct {
	id        string
	code      string
	name      string
	taxCode   string
	email     string
	phone     string
	address   string
	status    Status
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

type Fields struct {
	Code    string
	Name    string
	TaxCode string
	Email   string
	Phone   string
	Address string
	Status  Status
}

func New(f Fields) Partner {
	p := Partner{}.apply(f)
	if !p.status.Valid() {
		p.status = StatusActive
	}
	return p
}

func Hydrate(id string, f Fields, version int64, createdAt, updatedAt time.Time) Partner {
	p := Partner{}.apply(f)
	p.id = id
	p.version = version
	p.createdAt = createdAt
	p.updatedAt = updatedAt
	return p
}

// Update returns a copy with new field values. The version is kept so the
// upstream can reject concurrent edits.
func (p Partner) Update(f Fields) Partner {
	return p.apply(f)
}

func (p Partner) apply(f Fields) Partner {
	p.code = strings.TrimSpace(f.Code)
	p.name = strings.TrimSpace(f.Name)
	p.taxCode = strings.TrimSpace(f.TaxCode)
	p.email = strings.TrimSpace(f.Email)
	p.phone = strings.TrimSpace(f.Phone)
	p.address = strings.TrimSpace(f.Address)
	p.status = f.Status
	return p
}

func (p Partner) ID() string           { return p.id }
func (p Partner) Code() string         { return p.code }
func (p Partner) Name() string         { return p.name }
func (p Partner) TaxCode() string      { return p.taxCode }
func (p Partner) Email() string        { return p.email }
func (p Partner) Phone() string        { return p.phone }
func (p Partner) Address() string      { return p.address }
func (p Partner) Status() Status       { return p.status }
func (p Partner) Version() int64       { return p.version }
func (p Partner) CreatedAt() time.Time { return p.createdAt }
func (p Partner) UpdatedAt() time.Time { return p.updatedAt }
func (p Partner) IsNew() bool          { return p.id == "" }

// DeleteCandidate captures the row as selected, version included.
func (p Partner) DeleteCandidate() bulkdelete.Candidate {
	return bulkdelete.Candidate{ID: p.id, Name: p.name, Code: p.code, Version: p.version}
}
