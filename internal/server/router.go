package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"accumulator-api/internal/accumulator"
	"accumulator-api/internal/handlers"
	"accumulator-api/internal/observability"
)

func NewRouter(svc *accumulator.Service) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	svc.RegisterRoutes(r)

	return r
}
