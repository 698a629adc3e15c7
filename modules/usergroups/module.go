package usergroups

import (
	"embed"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/refconsole/modules/usergroups/domain/aggregates/group"
	"github.com/iota-uz/refconsole/modules/usergroups/infrastructure/api"
	"github.com/iota-uz/refconsole/modules/usergroups/presentation/controllers"
	"github.com/iota-uz/refconsole/modules/usergroups/presentation/templates"
	"github.com/iota-uz/refconsole/modules/usergroups/services"
	"github.com/iota-uz/refconsole/pkg/application"
	"github.com/iota-uz/refconsole/pkg/refapi"
)

//go:embed presentation/locales/*.toml
var LocaleFiles embed.FS

type ModuleOptions struct {
	Client         *refapi.Client
	GroupsPath     string
	UsersPath      string
	PageSize       int
	MaxPageSize    int
	ListPageSize   int
	DragThreshold  float64
	CandidateLimit int
	SessionTTL     time.Duration
	Logger         logrus.FieldLogger
}

func NewModule(opts *ModuleOptions) application.Module {
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	app.RegisterLocaleFiles(&LocaleFiles)

	groupService := services.NewGroupService(
		api.NewGroupRepository(m.options.Client, m.options.GroupsPath),
		app.EventPublisher(),
	)
	membershipService := services.NewMembershipService(
		groupService,
		api.NewUserRepository(m.options.Client, m.options.UsersPath),
		app.EventPublisher(),
		services.MembershipOptions{
			PageSize:       m.options.ListPageSize,
			DragThreshold:  m.options.DragThreshold,
			CandidateLimit: m.options.CandidateLimit,
			SessionTTL:     m.options.SessionTTL,
			Renderer:       templates.MemberList,
		},
	)
	app.RegisterServices(groupService, membershipService)

	if log := m.options.Logger; log != nil {
		app.EventPublisher().Subscribe(func(e *group.MembershipChangedEvent) {
			log.WithFields(logrus.Fields{
				"session":   e.SessionID,
				"group":     e.GroupID,
				"direction": e.Direction,
				"moved":     len(e.Moved),
				"members":   len(e.TargetKeys),
			}).Debug("membership changed")
		})
	}

	app.RegisterControllers(
		controllers.NewUserGroupAPIController(app, m.options.PageSize, m.options.MaxPageSize),
	)
	return nil
}

func (m *Module) Name() string {
	return "usergroups"
}
