package server

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/plexdi/studio/pkg/application"
	"github.com/plexdi/studio/pkg/configuration"
	"github.com/plexdi/studio/pkg/constants"
	"github.com/plexdi/studio/pkg/httpapi"
	"github.com/plexdi/studio/pkg/middleware"
	"github.com/plexdi/studio/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger), // creates the root span for each request
		middleware.Provide(constants.AppKey, app),
		middleware.Cors(strings.Split(conf.AllowedOrigins, ",")),
	}

	if conf.RateLimit.Enabled {
		middlewares = append(middlewares, middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerPeriod: int64(conf.RateLimit.GlobalRPS),
		}))
	}

	middlewares = append(middlewares, middleware.RequestParams())

	app.RegisterMiddleware(middlewares...)

	serverInstance := server.NewHTTPServer(
		app,
		http.HandlerFunc(notFound),
		http.HandlerFunc(methodNotAllowed),
	)
	return serverInstance, nil
}

func notFound(w http.ResponseWriter, r *http.Request) {
	httpapi.WriteError(r.Context(), w, http.StatusNotFound, "not found", "NOT_FOUND")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httpapi.WriteError(r.Context(), w, http.StatusMethodNotAllowed, "method not allowed", "METHOD_NOT_ALLOWED")
}
