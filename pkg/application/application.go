package application

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/iota-uz/refconsole/pkg/eventbus"
)

func listFiles(fsys fs.FS, dir string) ([]string, error) {
	var fileList []string

	err := fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			fileList = append(fileList, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error reading directory %q: %w", dir, err)
	}

	return fileList, nil
}

type ApplicationOptions struct {
	Pool               *pgxpool.Pool
	EventBus           eventbus.EventBus
	Logger             *logrus.Logger
	Bundle             *i18n.Bundle
	SupportedLanguages []string
}

// LoadBundle returns an English-default bundle that reads JSON and TOML
// message files.
func LoadBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return bundle
}

func defaultSupportedLanguageCodes() []string {
	return []string{"en", "zh"}
}

func New(opts *ApplicationOptions) Application {
	supportedLanguages := opts.SupportedLanguages
	if len(supportedLanguages) == 0 {
		supportedLanguages = defaultSupportedLanguageCodes()
	}
	bundle := opts.Bundle
	if bundle == nil {
		bundle = LoadBundle()
	}
	bus := opts.EventBus
	if bus == nil {
		if opts.Logger != nil {
			bus = eventbus.NewEventPublisher(opts.Logger)
		} else {
			bus = eventbus.NewEventPublisher(nil)
		}
	}

	return &application{
		pool:               opts.Pool,
		eventPublisher:     bus,
		controllers:        make(map[string]Controller),
		services:           make(map[reflect.Type]any),
		bundle:             bundle,
		migrations:         NewMigrationManager(opts.Pool, opts.Logger),
		supportedLanguages: supportedLanguages,
	}
}

// application with a dynamically extendable service registry
type application struct {
	mu                 sync.RWMutex
	pool               *pgxpool.Pool
	eventPublisher     eventbus.EventBus
	services           map[reflect.Type]any
	controllers        map[string]Controller
	middleware         []mux.MiddlewareFunc
	bundle             *i18n.Bundle
	migrations         MigrationManager
	supportedLanguages []string
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	return app.middleware
}

func (app *application) DB() *pgxpool.Pool {
	return app.pool
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.eventPublisher
}

// Controllers are returned sorted by key so routes register deterministically.
func (app *application) Controllers() []Controller {
	app.mu.RLock()
	defer app.mu.RUnlock()
	keys := make([]string, 0, len(app.controllers))
	for k := range app.controllers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	controllers := make([]Controller, 0, len(keys))
	for _, k := range keys {
		controllers = append(controllers, app.controllers[k])
	}
	return controllers
}

func (app *application) Migrations() MigrationManager {
	return app.migrations
}

func (app *application) RegisterControllers(controllers ...Controller) {
	app.mu.Lock()
	defer app.mu.Unlock()
	for _, c := range controllers {
		app.controllers[c.Key()] = c
	}
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.middleware = append(app.middleware, middleware...)
}

func (app *application) RegisterLocaleFiles(fs ...*embed.FS) {
	for _, localeFs := range fs {
		files, err := listFiles(localeFs, ".")
		if err != nil {
			panic(err)
		}
		for _, file := range files {
			localeFile, err := localeFs.ReadFile(file)
			if err != nil {
				panic(err)
			}
			app.bundle.MustParseMessageFileBytes(localeFile, filepath.Base(file))
		}
	}
}

// RegisterServices registers services by their pointer's element type.
func (app *application) RegisterServices(services ...any) {
	app.mu.Lock()
	defer app.mu.Unlock()
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		app.services[serviceType] = service
	}
}

// Service retrieves a service by its type. Pass the zero value:
// app.Service(services.PartnerService{}).(*services.PartnerService).
func (app *application) Service(service any) any {
	app.mu.RLock()
	defer app.mu.RUnlock()
	serviceType := reflect.TypeOf(service)
	svc, exists := app.services[serviceType]
	if !exists {
		panic(fmt.Sprintf("service %s not found", serviceType.Name()))
	}
	return svc
}

func (app *application) Services() map[reflect.Type]any {
	app.mu.RLock()
	defer app.mu.RUnlock()
	out := make(map[reflect.Type]any, len(app.services))
	for k, v := range app.services {
		out[k] = v
	}
	return out
}

func (app *application) Bundle() *i18n.Bundle {
	return app.bundle
}

func (app *application) GetSupportedLanguages() []string {
	return app.supportedLanguages
}
