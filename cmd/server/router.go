package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/we-edu/enrollment-api/internal/api"
	apiMiddleware "github.com/we-edu/enrollment-api/internal/api/middleware"
	"github.com/we-edu/enrollment-api/internal/api/shared"
)

// setupRouter creates the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)
	r.Use(apiMiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	uploadHandler := api.NewUploadHandler(app.uploadService)
	enrollmentHandler := api.NewEnrollmentHandler(app.enrollmentService)
	catalogHandler := api.NewCatalogHandler(app.catalogService)

	r.Post("/upload/sign", uploadHandler.SignUpload)
	r.Get("/file/view", uploadHandler.ViewFile)
	r.Post("/inscripcion", enrollmentHandler.Submit)
	r.Post("/programlist", catalogHandler.ProgramList)

	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		shared.RespondWithJSON(w, req, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
