package application

import (
	"context"
	"embed"
	"io/fs"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/refconsole/pkg/eventbus"
)

type Controller interface {
	Register(r *mux.Router)
	Key() string
}

type Module interface {
	Name() string
	Register(app Application) error
}

// MigrationManager applies the SQL schemas modules register.
type MigrationManager interface {
	RegisterSchema(name string, fsys fs.FS)
	Schemas() []string
	Run(ctx context.Context) error
}

// Application is the registry modules plug into.
type Application interface {
	DB() *pgxpool.Pool
	EventPublisher() eventbus.EventBus
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	Migrations() MigrationManager
	Bundle() *i18n.Bundle
	GetSupportedLanguages() []string

	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterLocaleFiles(fs ...*embed.FS)
	RegisterServices(services ...any)

	Service(service any) any
	Services() map[reflect.Type]any
}
