package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/campus-market/listing-service/internal/adapter/http/middleware"
	"github.com/campus-market/listing-service/internal/platform/logger"
)

// NewRouter wires the REST surface. uploadsDir is the static photo area; an
// empty string disables the /uploads route (the S3 driver serves photos by
// object URL instead).
func NewRouter(h *Handler, adminAuth middleware.Authorizer, log *logger.Logger, uploadsDir string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging(log))

	r.Get("/", h.HandleWelcome)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.HandleListProducts)
		r.Post("/", h.HandleCreateProduct)
		r.Get("/{id}", h.HandleGetProduct)
		r.With(middleware.AdminOnly(adminAuth, log)).Delete("/{id}", h.HandleDeleteProduct)
	})

	if uploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
		r.Get("/uploads/*", func(w http.ResponseWriter, req *http.Request) {
			fs.ServeHTTP(w, req)
		})
	}

	return r
}
