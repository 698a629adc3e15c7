package server

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/iota-uz/refconsole/pkg/application"
	"github.com/iota-uz/refconsole/pkg/configuration"
	"github.com/iota-uz/refconsole/pkg/constants"
	"github.com/iota-uz/refconsole/pkg/httpapi"
	"github.com/iota-uz/refconsole/pkg/middleware"
	"github.com/iota-uz/refconsole/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

// Default builds the HTTP server. The core middleware stack wraps the
// middleware modules registered, so module middleware sees the request
// logger and parameters.
func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, middleware.LoggerOptions{
			LogRequestBody:  conf.LogrusLogLevel() >= logrus.DebugLevel,
			LogResponseBody: conf.LogrusLogLevel() >= logrus.DebugLevel,
			MaxBodyLength:   512,
			RequestIDHeader: conf.RequestIDHeader,
			RealIPHeader:    conf.RealIPHeader,
			Entrypoint:      "server",
		}),
		middleware.TracedMiddleware("provide"),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),

		middleware.TracedMiddleware("cors"),
		middleware.Cors(conf.Cors.AllowedOrigins...),
	}

	if conf.RateLimit.Enabled {
		var store limiter.Store
		var err error

		switch conf.RateLimit.Storage {
		case "redis":
			store, err = middleware.NewRedisStore(conf.RateLimit.RedisURL)
			if err != nil {
				options.Logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
				store = middleware.NewMemoryStore()
			}
		default:
			store = middleware.NewMemoryStore()
		}

		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: conf.RateLimit.GlobalRPS,
				Store:             store,
			}),
		)
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("requestParams"),
		middleware.RequestParams(conf.RealIPHeader),
	)

	serverInstance := server.NewHTTPServer(app, httpapi.NotFound(), httpapi.MethodNotAllowed())
	serverInstance.Middlewares = append(middlewares, serverInstance.Middlewares...)
	return serverInstance, nil
}
