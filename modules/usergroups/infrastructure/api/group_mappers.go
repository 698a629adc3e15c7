package api

import (
	"time"

	"github.com/iota-uz/refconsole/modules/usergroups/domain/aggregates/group"
	"github.com/iota-uz/refconsole/modules/usergroups/domain/entities/user"
)

type groupDTO struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemberIDs   []string  `json:"memberIds"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type saveGroupRequest struct {
	ID          string   `json:"id,omitempty"`
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	MemberIDs   []string `json:"memberIds"`
	Version     int64    `json:"version"`
}

type userDTO struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

func toDomainGroup(dto groupDTO) group.Group {
	return group.Hydrate(dto.ID, group.Fields{
		Code:        dto.Code,
		Name:        dto.Name,
		Description: dto.Description,
	}, dto.MemberIDs, dto.Version, dto.CreatedAt, dto.UpdatedAt)
}

func toSaveGroupRequest(g group.Group) saveGroupRequest {
	members := g.MemberIDs()
	if members == nil {
		members = []string{}
	}
	return saveGroupRequest{
		ID:          g.ID(),
		Code:        g.Code(),
		Name:        g.Name(),
		Description: g.Description(),
		MemberIDs:   members,
		Version:     g.Version(),
	}
}

func toDomainUser(dto userDTO) user.User {
	return user.New(dto.ID, dto.Username, dto.FullName, dto.Email, dto.Department)
}
