package tasktypes

import (
	"embed"

	"github.com/iota-uz/refconsole/modules/tasktypes/infrastructure/api"
	"github.com/iota-uz/refconsole/modules/tasktypes/presentation/controllers"
	"github.com/iota-uz/refconsole/modules/tasktypes/services"
	"github.com/iota-uz/refconsole/pkg/application"
	"github.com/iota-uz/refconsole/pkg/refapi"
)

//go:embed presentation/locales/*.toml
var LocaleFiles embed.FS

type ModuleOptions struct {
	Client      *refapi.Client
	Path        string
	PageSize    int
	MaxPageSize int
}

func NewModule(opts *ModuleOptions) application.Module {
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	app.RegisterLocaleFiles(&LocaleFiles)
	app.RegisterServices(
		services.NewTaskTypeService(api.NewTaskTypeRepository(m.options.Client, m.options.Path), app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewTaskTypeAPIController(app, m.options.PageSize, m.options.MaxPageSize),
	)
	return nil
}

func (m *Module) Name() string {
	return "tasktypes"
}
