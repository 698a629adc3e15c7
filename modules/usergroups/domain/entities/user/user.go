package user

import (
	"context"

	"github.com/iota-uz/refconsole/pkg/transfer"
)

// Display field names used by the assignment widget.
const (
	FieldUsername   = "username"
	FieldFullName   = "fullName"
	FieldEmail      = "email"
	FieldDepartment = "department"
)

type User struct {
	id         string
	username   string
	fullName   string
	email      string
	department string
}

func New(id, username, fullName, email, department string) User {
	return User{id: id, username: username, fullName: fullName, email: email, department: department}
}

func (u User) ID() string         { return u.id }
func (u User) Username() string   { return u.username }
func (u User) FullName() string   { return u.fullName }
func (u User) Email() string      { return u.email }
func (u User) Department() string { return u.department }

// Candidate converts the user into a row of the assignment widget.
func (u User) Candidate() transfer.Candidate {
	return transfer.Candidate{
		ID: u.id,
		DisplayFields: map[string]string{
			FieldUsername:   u.username,
			FieldFullName:   u.fullName,
			FieldEmail:      u.email,
			FieldDepartment: u.department,
		},
	}
}

type FindParams struct {
	Query      string
	Department string
	Limit      int
}

type Repository interface {
	Search(ctx context.Context, params *FindParams) ([]User, error)
}
