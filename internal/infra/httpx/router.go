package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lojavirtual/api/internal/infra/httpx/middlewares"
)

// NewRouter wires the API routes and serves stored uploads statically.
func NewRouter(h *Handler, uploadsDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.Trace)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CORS)

	r.Route("/api", func(r chi.Router) {
		r.Post("/clientes", h.CreateCustomer)
		r.Get("/clientes", h.ListCustomers)

		r.Post("/produtos", h.CreateProduct)
		r.Get("/produtos", h.ListProducts)
		r.Put("/produtos/{id}", h.UpdateProduct)
		r.Delete("/produtos/{id}", h.DeleteProduct)

		r.Post("/pedidos", h.CreateOrder)
		r.Get("/pedidos", h.ListOrders)
		r.Put("/pedidos/{id}/status", h.UpdateOrderStatus)

		r.Get("/estatisticas", h.GetStatistics)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	files := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
	r.Get("/uploads/*", files.ServeHTTP)

	return r
}
