package partners

import (
	"embed"

	"github.com/iota-uz/refconsole/modules/partners/infrastructure/api"
	"github.com/iota-uz/refconsole/modules/partners/presentation/controllers"
	"github.com/iota-uz/refconsole/modules/partners/services"
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
		services.NewPartnerService(api.NewPartnerRepository(m.options.Client, m.options.Path), app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewPartnerAPIController(app, controllers.PartnerAPIControllerOptions{
			PageSize:    m.options.PageSize,
			MaxPageSize: m.options.MaxPageSize,
		}),
	)
	return nil
}

func (m *Module) Name() string {
	return "partners"
}
