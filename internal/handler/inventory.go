package handler

import (
	"net/http"

	"github.com/efreitasn/resexchange/internal/domain"
	"github.com/efreitasn/resexchange/internal/service"
	"github.com/go-chi/chi/v5"
)

// InventoryHandler handles HTTP requests for agent buffers.
type InventoryHandler struct {
	inventorySvc *service.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventorySvc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventorySvc: inventorySvc}
}

// createBufferRequest is the JSON request body for POST /agents/{agent_id}/buffers.
// A missing capacity means the server default.
type createBufferRequest struct {
	Name     string   `json:"name"`
	Capacity *float64 `json:"capacity"`
}

// setCapacityRequest is the JSON request body for PUT .../capacity.
type setCapacityRequest struct {
	Capacity *float64 `json:"capacity"`
}

// depositRequest is the JSON request body for POST .../resources.
type depositRequest struct {
	Quality  string   `json:"quality"`
	Quantity *float64 `json:"quantity"`
}

// withdrawRequest is the optional JSON request body for POST .../pop.
// Without a key the oldest entry is popped.
type withdrawRequest struct {
	Key string `json:"key"`
}

// bufferResponse is the JSON view of a buffer. Capacity and space are null
// when the buffer is unbounded.
type bufferResponse struct {
	Name     string          `json:"name"`
	Size     int             `json:"size"`
	Quantity float64         `json:"quantity"`
	Capacity *float64        `json:"capacity"`
	Space    *float64        `json:"space"`
	Entries  []entryResponse `json:"entries"`
}

type entryResponse struct {
	Key       string  `json:"key"`
	ProductID string  `json:"product_id"`
	Quality   string  `json:"quality"`
	Quantity  float64 `json:"quantity"`
}

// productResponse is the JSON view of a single product.
type productResponse struct {
	ProductID string  `json:"product_id"`
	Quality   string  `json:"quality"`
	Quantity  float64 `json:"quantity"`
}

// CreateBuffer handles POST /agents/{agent_id}/buffers.
func (h *InventoryHandler) CreateBuffer(w http.ResponseWriter, r *http.Request) {
	var req createBufferRequest
	if err := ParseJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", errInvalidBody.Error())
		return
	}

	sum, err := h.inventorySvc.CreateBuffer(chi.URLParam(r, "agent_id"), service.CreateBufferRequest{
		Name:     req.Name,
		Capacity: req.Capacity,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toBufferResponse(sum))
}

// GetBuffer handles GET /agents/{agent_id}/buffers/{buffer}.
func (h *InventoryHandler) GetBuffer(w http.ResponseWriter, r *http.Request) {
	sum, err := h.inventorySvc.GetBuffer(chi.URLParam(r, "agent_id"), chi.URLParam(r, "buffer"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toBufferResponse(sum))
}

// SetCapacity handles PUT /agents/{agent_id}/buffers/{buffer}/capacity.
func (h *InventoryHandler) SetCapacity(w http.ResponseWriter, r *http.Request) {
	var req setCapacityRequest
	if err := ParseJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", errInvalidBody.Error())
		return
	}
	if req.Capacity == nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "capacity is required")
		return
	}

	sum, err := h.inventorySvc.SetCapacity(chi.URLParam(r, "agent_id"), chi.URLParam(r, "buffer"), *req.Capacity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toBufferResponse(sum))
}

// Deposit handles POST /agents/{agent_id}/buffers/{buffer}/resources.
func (h *InventoryHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if err := ParseJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", errInvalidBody.Error())
		return
	}
	if req.Quantity == nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "quantity is required")
		return
	}

	p, err := h.inventorySvc.Deposit(chi.URLParam(r, "agent_id"), chi.URLParam(r, "buffer"), service.DepositRequest{
		Quality:  req.Quality,
		Quantity: *req.Quantity,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toProductResponse(p))
}

// Withdraw handles POST /agents/{agent_id}/buffers/{buffer}/pop.
func (h *InventoryHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req withdrawRequest
	if r.ContentLength != 0 {
		if err := ParseJSON(w, r, &req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid_request", errInvalidBody.Error())
			return
		}
	}

	p, err := h.inventorySvc.Withdraw(chi.URLParam(r, "agent_id"), chi.URLParam(r, "buffer"), req.Key)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toProductResponse(p))
}

// Erase handles DELETE /agents/{agent_id}/buffers/{buffer}/resources/{key}.
func (h *InventoryHandler) Erase(w http.ResponseWriter, r *http.Request) {
	err := h.inventorySvc.Erase(chi.URLParam(r, "agent_id"), chi.URLParam(r, "buffer"), chi.URLParam(r, "key"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toBufferResponse(s *service.BufferSummary) bufferResponse {
	entries := make([]entryResponse, len(s.Entries))
	for i, e := range s.Entries {
		entries[i] = entryResponse{
			Key:       e.Key,
			ProductID: e.ProductID,
			Quality:   e.Quality,
			Quantity:  e.Quantity,
		}
	}
	return bufferResponse{
		Name:     s.Name,
		Size:     s.Size,
		Quantity: s.Quantity,
		Capacity: finiteOrNil(s.Capacity),
		Space:    finiteOrNil(s.Space),
		Entries:  entries,
	}
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ProductID: p.ID,
		Quality:   p.Quality,
		Quantity:  p.Quantity(),
	}
}
