package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rgordon/item-api/internal/api"
	apimiddleware "github.com/rgordon/item-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	itemHandler := api.NewItemHandler(app.itemStore, app.processor, app.logger)

	r.Route("/api/items", func(r chi.Router) {
		r.Get("/", itemHandler.ListItems)
		r.Post("/", itemHandler.CreateItem)

		// Registered before /{id} so chi does not treat "process" as an id.
		r.Get("/process", itemHandler.ProcessItems)

		r.Get("/{id}", itemHandler.GetItem)
		r.Put("/{id}", itemHandler.UpdateItem)
		r.Delete("/{id}", itemHandler.DeleteItem)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
