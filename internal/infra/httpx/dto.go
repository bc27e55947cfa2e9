package httpx

import "encoding/json"

// MutationResponse acknowledges a successful create/update/delete. ID is set
// for creations only.
type MutationResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
}

// MutationError is the envelope for failed mutations.
type MutationError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ReadError is the envelope for failed reads.
type ReadError struct {
	Error string `json:"error"`
}

// UpdateProductRequest carries the four mutable product fields. Price and
// stock are kept as raw numbers here and coerced by the service.
type UpdateProductRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Stock       json.Number `json:"stock"`
}

// UpdateOrderStatusRequest carries the new status value.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
