package routelint

import (
	"sort"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	internalserver "github.com/iota-uz/refconsole/internal/server"
	"github.com/iota-uz/refconsole/modules"
	"github.com/iota-uz/refconsole/pkg/application"
	"github.com/iota-uz/refconsole/pkg/configuration"
	"github.com/iota-uz/refconsole/pkg/eventbus"
	"github.com/iota-uz/refconsole/pkg/intl"
	"github.com/iota-uz/refconsole/pkg/metrics"
	"github.com/iota-uz/refconsole/pkg/refapi"
	"github.com/iota-uz/refconsole/pkg/routing"
)

func TestServerRoutes_FollowModuleAPIConventionOrAllowlist(t *testing.T) {
	router := buildServerRouter(t)

	rules, err := routing.LoadAllowlist("", "server")
	require.NoError(t, err)
	classifier := routing.NewClassifier(rules)

	var offending []string
	for _, p := range collectRoutePaths(t, router) {
		if _, ok := classifier.ClassifyPath(p); !ok {
			offending = append(offending, p)
		}
	}
	if len(offending) > 0 {
		t.Fatalf("routes outside /{module}/api and not in the allowlist:\n%s", strings.Join(offending, "\n"))
	}
}

func TestServerRoutes_EveryModuleMountsAnAPI(t *testing.T) {
	router := buildServerRouter(t)

	prefixes := map[string]struct{}{}
	for _, p := range collectRoutePaths(t, router) {
		if strings.HasSuffix(firstTwoSegments(p), "/api") {
			prefixes[firstTwoSegments(p)] = struct{}{}
		}
	}
	got := make([]string, 0, len(prefixes))
	for p := range prefixes {
		got = append(got, p)
	}
	sort.Strings(got)

	require.Equal(t, []string{"/logs/api", "/partners/api", "/task-types/api", "/usergroups/api"}, got)
}

func TestServerRoutes_BulkDeleteUsesColonVerb(t *testing.T) {
	router := buildServerRouter(t)
	paths := collectRoutePaths(t, router)

	for _, want := range []string{
		"/partners/api/partners:delete-multiple",
		"/task-types/api/task-types:delete-multiple",
		"/usergroups/api/groups:delete-multiple",
	} {
		require.Contains(t, paths, want)
	}
}

func buildServerRouter(t *testing.T) *mux.Router {
	t.Helper()

	conf := configuration.Use()
	logger := conf.Logger()

	client, err := refapi.NewClient(refapi.Options{BaseURL: "http://upstream.invalid"})
	require.NoError(t, err)

	app := application.New(&application.ApplicationOptions{
		Bundle:   application.LoadBundle(),
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	app.RegisterLocaleFiles(&intl.LocaleFiles)
	require.NoError(t, modules.Load(app, modules.BuiltInModules(conf, client)...))
	app.RegisterControllers(
		metrics.NewHealthController(),
		metrics.NewPrometheusController(conf.Prometheus.Path),
	)

	srv, err := internalserver.Default(&internalserver.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
	})
	require.NoError(t, err)
	return srv.Router()
}

func collectRoutePaths(t *testing.T, router *mux.Router) []string {
	t.Helper()

	var paths []string
	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		p := routePath(route)
		if strings.TrimSpace(p) != "" {
			paths = append(paths, p)
		}
		return nil
	})
	require.NoError(t, err)

	sort.Strings(paths)
	return paths
}

func routePath(route *mux.Route) string {
	if route == nil {
		return ""
	}
	if tmpl, err := route.GetPathTemplate(); err == nil {
		return tmpl
	}
	regexp, err := route.GetPathRegexp()
	if err != nil {
		return ""
	}
	result := strings.TrimPrefix(regexp, "^")
	return strings.TrimSuffix(result, "$")
}

func firstTwoSegments(path string) string {
	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 3)
	if len(parts) < 2 {
		return "/" + parts[0]
	}
	return "/" + parts[0] + "/" + parts[1]
}
