package handler

import (
	"net/http"
	"strconv"

	"github.com/efreitasn/resexchange/internal/domain"
	"github.com/efreitasn/resexchange/internal/service"
	"github.com/go-chi/chi/v5"
)

// PortfolioHandler handles HTTP requests for request portfolios and cycles.
type PortfolioHandler struct {
	exchangeSvc *service.ExchangeService
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(exchangeSvc *service.ExchangeService) *PortfolioHandler {
	return &PortfolioHandler{exchangeSvc: exchangeSvc}
}

// requestInput is one request in a submission. A request either references a
// resource held in one of the requester's buffers (buffer + key) or describes
// a new target (quality + quantity).
type requestInput struct {
	Commodity  string  `json:"commodity"`
	Preference float64 `json:"preference"`
	Buffer     string  `json:"buffer,omitempty"`
	Key        string  `json:"key,omitempty"`
	Quality    string  `json:"quality,omitempty"`
	Quantity   float64 `json:"quantity,omitempty"`
}

type constraintInput struct {
	Capacity  float64 `json:"capacity"`
	Converter string  `json:"converter"`
}

// submitPortfolioRequest is the JSON request body for POST /portfolios.
type submitPortfolioRequest struct {
	RequesterID string            `json:"requester_id"`
	Requests    []requestInput    `json:"requests"`
	Constraints []constraintInput `json:"constraints"`
}

// addRequestsRequest is the JSON request body for POST /portfolios/{portfolio_id}/requests.
type addRequestsRequest struct {
	RequesterID string         `json:"requester_id"`
	Requests    []requestInput `json:"requests"`
}

type portfolioResponse struct {
	PortfolioID int64                `json:"portfolio_id"`
	RequesterID string               `json:"requester_id"`
	Quantity    float64              `json:"quantity"`
	Requests    []requestResponse    `json:"requests"`
	Constraints []constraintResponse `json:"constraints"`
}

type requestResponse struct {
	RequestID      int64   `json:"request_id"`
	Commodity      string  `json:"commodity"`
	Preference     float64 `json:"preference"`
	RequesterID    string  `json:"requester_id"`
	TargetID       string  `json:"target_id"`
	TargetQuality  string  `json:"target_quality"`
	TargetQuantity float64 `json:"target_quantity"`
}

type constraintResponse struct {
	Capacity  float64 `json:"capacity"`
	Converter string  `json:"converter"`
}

type listPortfoliosResponse struct {
	Portfolios []portfolioResponse `json:"portfolios"`
}

type resolveCycleResponse struct {
	Released int `json:"released"`
}

// Submit handles POST /portfolios.
func (h *PortfolioHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitPortfolioRequest
	if err := ParseJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", errInvalidBody.Error())
		return
	}

	constraints := make([]service.ConstraintInput, len(req.Constraints))
	for i, c := range req.Constraints {
		constraints[i] = service.ConstraintInput{Capacity: c.Capacity, Converter: c.Converter}
	}

	view, err := h.exchangeSvc.SubmitPortfolio(service.SubmitPortfolioRequest{
		RequesterID: req.RequesterID,
		Requests:    toRequestInputs(req.Requests),
		Constraints: constraints,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toPortfolioResponse(view))
}

// List handles GET /portfolios. An optional requester_id query parameter
// filters by requester.
func (h *PortfolioHandler) List(w http.ResponseWriter, r *http.Request) {
	views := h.exchangeSvc.ListPortfolios(r.URL.Query().Get("requester_id"))

	resp := listPortfoliosResponse{Portfolios: make([]portfolioResponse, len(views))}
	for i, v := range views {
		resp.Portfolios[i] = toPortfolioResponse(v)
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Get handles GET /portfolios/{portfolio_id}.
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := portfolioID(w, r)
	if !ok {
		return
	}

	view, err := h.exchangeSvc.GetPortfolio(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toPortfolioResponse(view))
}

// AddRequests handles POST /portfolios/{portfolio_id}/requests.
func (h *PortfolioHandler) AddRequests(w http.ResponseWriter, r *http.Request) {
	id, ok := portfolioID(w, r)
	if !ok {
		return
	}

	var req addRequestsRequest
	if err := ParseJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", errInvalidBody.Error())
		return
	}

	view, err := h.exchangeSvc.AddRequests(id, service.AddRequestsRequest{
		RequesterID: req.RequesterID,
		Requests:    toRequestInputs(req.Requests),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toPortfolioResponse(view))
}

// ResolveCycle handles POST /cycles/resolve.
func (h *PortfolioHandler) ResolveCycle(w http.ResponseWriter, r *http.Request) {
	n := h.exchangeSvc.ResolveCycle()
	WriteJSON(w, http.StatusOK, resolveCycleResponse{Released: n})
}

// portfolioID parses the portfolio_id path parameter, writing a 404 when it
// is not a valid id.
func portfolioID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "portfolio_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		WriteError(w, http.StatusNotFound, "portfolio_not_found", domain.ErrPortfolioNotFound.Error())
		return 0, false
	}
	return id, true
}

func toRequestInputs(in []requestInput) []service.RequestInput {
	out := make([]service.RequestInput, len(in))
	for i, r := range in {
		out[i] = service.RequestInput{
			Commodity:  r.Commodity,
			Preference: r.Preference,
			Buffer:     r.Buffer,
			Key:        r.Key,
			Quality:    r.Quality,
			Quantity:   r.Quantity,
		}
	}
	return out
}

func toPortfolioResponse(v *service.PortfolioView) portfolioResponse {
	resp := portfolioResponse{
		PortfolioID: v.PortfolioID,
		RequesterID: v.RequesterID,
		Quantity:    v.Quantity,
		Requests:    make([]requestResponse, len(v.Requests)),
		Constraints: make([]constraintResponse, len(v.Constraints)),
	}
	for i, r := range v.Requests {
		resp.Requests[i] = requestResponse{
			RequestID:      r.RequestID,
			Commodity:      r.Commodity,
			Preference:     r.Preference,
			RequesterID:    r.RequesterID,
			TargetID:       r.TargetID,
			TargetQuality:  r.TargetQuality,
			TargetQuantity: r.TargetQuantity,
		}
	}
	for i, c := range v.Constraints {
		resp.Constraints[i] = constraintResponse{Capacity: c.Capacity, Converter: c.Converter}
	}
	return resp
}
