package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lojavirtual/api/internal/core/ports"
	"github.com/lojavirtual/api/internal/core/service"
)

// maxUploadMemory bounds how much of a multipart body is held in memory
// before spilling to temp files.
const maxUploadMemory = 32 << 20

// Handler maps the HTTP surface onto the entity services.
type Handler struct {
	customers  *service.CustomerService
	products   *service.ProductService
	orders     *service.OrderService
	statistics *service.StatisticsService
}

func NewHandler(
	customers *service.CustomerService,
	products *service.ProductService,
	orders *service.OrderService,
	statistics *service.StatisticsService,
) *Handler {
	return &Handler{
		customers:  customers,
		products:   products,
		orders:     orders,
		statistics: statistics,
	}
}

// CreateCustomer stores an arbitrary customer document.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	id, err := h.customers.Create(r.Context(), fields)
	if err != nil {
		writeMutationError(w, err)
		return
	}

	slog.InfoContext(r.Context(), "customer created", "id", id)
	writeJSON(w, http.StatusOK, MutationResponse{Success: true, ID: id})
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	docs, err := h.customers.List(r.Context())
	if err != nil {
		writeReadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// CreateProduct reads a multipart form with the product fields and an
// optional image file.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, MutationError{Error: "invalid multipart form"})
		return
	}

	in := service.ProductInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Stock:       r.FormValue("stock"),
	}

	var image *service.ProductImage
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		image = &service.ProductImage{Filename: header.Filename, Data: file}
	case errors.Is(err, http.ErrMissingFile):
		// image is optional
	default:
		writeJSON(w, http.StatusBadRequest, MutationError{Error: "invalid image upload"})
		return
	}

	id, err := h.products.Create(r.Context(), in, image)
	if err != nil {
		writeMutationError(w, err)
		return
	}

	slog.InfoContext(r.Context(), "product created", "id", id, "has_image", image != nil)
	writeJSON(w, http.StatusOK, MutationResponse{Success: true, ID: id})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	docs, err := h.products.List(r.Context())
	if err != nil {
		writeReadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, MutationError{Error: "invalid JSON body"})
		return
	}

	id := chi.URLParam(r, "id")
	err := h.products.Update(r.Context(), id, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price.String(),
		Stock:       req.Stock.String(),
	})
	if err != nil {
		writeMutationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MutationResponse{Success: true})
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MutationResponse{Success: true})
}

// CreateOrder stores an arbitrary order document. The service forces the
// initial status regardless of what the body supplies.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	id, err := h.orders.Create(r.Context(), fields)
	if err != nil {
		writeMutationError(w, err)
		return
	}

	slog.InfoContext(r.Context(), "order created", "id", id)
	writeJSON(w, http.StatusOK, MutationResponse{Success: true, ID: id})
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	docs, err := h.orders.List(r.Context())
	if err != nil {
		writeReadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, MutationError{Error: "invalid JSON body"})
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.orders.UpdateStatus(r.Context(), id, req.Status); err != nil {
		writeMutationError(w, err)
		return
	}

	slog.InfoContext(r.Context(), "order status updated", "id", id, "status", req.Status)
	writeJSON(w, http.StatusOK, MutationResponse{Success: true})
}

func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statistics.Compute(r.Context())
	if err != nil {
		writeReadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// decodeFields reads an arbitrary JSON object body. A false return means the
// error response has already been written.
func decodeFields(w http.ResponseWriter, r *http.Request) (ports.Document, bool) {
	var fields ports.Document
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, MutationError{Error: "invalid JSON body"})
		return nil, false
	}
	if fields == nil {
		fields = ports.Document{}
	}
	return fields, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps the error taxonomy onto HTTP codes: rejected client input is
// 400, unknown ids are 404, everything else is a server failure.
func statusFor(err error) int {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, ports.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeMutationError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), MutationError{Error: err.Error()})
}

func writeReadError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), ReadError{Error: err.Error()})
}
