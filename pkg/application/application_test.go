package application

import (
	"context"
	"embed"
	"testing"
	"testing/fstest"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/*.json
var testLocales embed.FS

type partnerService struct{ name string }

type stubController struct{ key string }

func (c stubController) Register(r *mux.Router) {}
func (c stubController) Key() string            { return c.key }

func TestApplication_ServiceRegistry(t *testing.T) {
	app := New(&ApplicationOptions{})
	svc := &partnerService{name: "partners"}
	app.RegisterServices(svc)

	got := app.Service(partnerService{}).(*partnerService)
	require.Same(t, svc, got)
	require.Len(t, app.Services(), 1)
	require.Panics(t, func() { app.Service(stubController{}) })
}

func TestApplication_ControllersSortedByKey(t *testing.T) {
	app := New(&ApplicationOptions{})
	app.RegisterControllers(stubController{key: "/usergroups"}, stubController{key: "/partners"})
	app.RegisterControllers(stubController{key: "/partners"})

	controllers := app.Controllers()
	require.Len(t, controllers, 2)
	require.Equal(t, "/partners", controllers[0].Key())
	require.Equal(t, "/usergroups", controllers[1].Key())
}

func TestApplication_LocaleFiles(t *testing.T) {
	app := New(&ApplicationOptions{})
	app.RegisterLocaleFiles(&testLocales)

	l := i18n.NewLocalizer(app.Bundle(), "zh")
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: "Common.Save"})
	require.NoError(t, err)
	require.Equal(t, "保存", msg)
	require.Equal(t, []string{"en", "zh"}, app.GetSupportedLanguages())
	require.NotNil(t, app.EventPublisher())
}

func TestMigrationManager_RequiresPool(t *testing.T) {
	m := NewMigrationManager(nil, nil)
	require.NoError(t, m.Run(context.Background()), "nothing registered")

	m.RegisterSchema("logging", fstest.MapFS{"00001_init.sql": {Data: []byte("-- +goose Up\nSELECT 1;\n")}})
	require.Equal(t, []string{"logging"}, m.Schemas())
	require.ErrorIs(t, m.Run(context.Background()), ErrNoDatabase)
}
