package logging

import (
	"embed"
	"io/fs"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/refconsole/modules/logging/handlers"
	"github.com/iota-uz/refconsole/modules/logging/infrastructure/persistence"
	"github.com/iota-uz/refconsole/modules/logging/presentation/controllers"
	"github.com/iota-uz/refconsole/modules/logging/services"
	"github.com/iota-uz/refconsole/pkg/application"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

type ModuleOptions struct {
	// Enabled turns on request and event recording. The module stays
	// registered without it so the list endpoint answers consistently.
	Enabled     bool
	PageSize    int
	MaxPageSize int
	Logger      logrus.FieldLogger
}

func NewModule(opts *ModuleOptions) application.Module {
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	if app.DB() != nil {
		schema, err := fs.Sub(migrationFiles, "infrastructure/persistence/schema")
		if err != nil {
			return err
		}
		app.Migrations().RegisterSchema("logging", schema)
	}
	app.RegisterServices(
		services.NewLogsService(persistence.NewActionLogRepository()),
	)
	app.RegisterControllers(
		controllers.NewLogsController(app, m.options.PageSize, m.options.MaxPageSize),
	)
	if m.options.Enabled && app.DB() != nil {
		handlers.RegisterAuditHandlers(app, m.options.Logger)
		app.RegisterMiddleware(handlers.ActionLogMiddleware(app))
	}
	return nil
}

func (m *Module) Name() string {
	return "logging"
}
