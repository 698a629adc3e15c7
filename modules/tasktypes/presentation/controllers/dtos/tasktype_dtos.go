package dtos

import (
	"time"

	"github.com/iota-uz/refconsole/modules/tasktypes/domain/aggregates/tasktype"
	"github.com/iota-uz/refconsole/pkg/bulkdelete"
)

type TaskType struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func TaskTypeFromDomain(t tasktype.TaskType) TaskType {
	return TaskType{
		ID:          t.ID(),
		Code:        t.Code(),
		Name:        t.Name(),
		Description: t.Description(),
		Status:      string(t.Status()),
		Version:     t.Version(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

type TaskTypePage struct {
	Items   []TaskType `json:"items"`
	Total   int64      `json:"total"`
	Page    int        `json:"page"`
	PerPage int        `json:"perPage"`
	HasMore bool       `json:"hasMore"`
}

type TaskTypeQuery struct {
	Q       string `json:"q" form:"q"`
	Status  string `json:"status" form:"status"`
	Page    int    `json:"page" form:"page"`
	PerPage int    `json:"limit" form:"limit"`
}

type DeleteMultipleRequest struct {
	bulkdelete.Selection
	Query TaskTypeQuery `json:"query"`
}
