package handler

import (
	"net/http"
	"time"

	"github.com/efreitasn/resexchange/internal/service"
	"github.com/go-chi/chi/v5"
)

// AgentHandler handles HTTP requests for agent endpoints.
type AgentHandler struct {
	agentSvc     *service.AgentService
	inventorySvc *service.InventoryService
}

// NewAgentHandler creates a new AgentHandler.
func NewAgentHandler(agentSvc *service.AgentService, inventorySvc *service.InventoryService) *AgentHandler {
	return &AgentHandler{
		agentSvc:     agentSvc,
		inventorySvc: inventorySvc,
	}
}

// registerAgentRequest is the JSON request body for POST /agents.
type registerAgentRequest struct {
	Name string `json:"name"`
}

// agentResponse is the JSON response for agent endpoints.
type agentResponse struct {
	AgentID   string           `json:"agent_id"`
	Name      string           `json:"name"`
	Buffers   []bufferResponse `json:"buffers"`
	CreatedAt string           `json:"created_at"`
}

// Register handles POST /agents.
func (h *AgentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerAgentRequest
	if err := ParseJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", errInvalidBody.Error())
		return
	}

	agent, err := h.agentSvc.Register(service.RegisterAgentRequest{Name: req.Name})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, agentResponse{
		AgentID:   agent.AgentID,
		Name:      agent.Name,
		Buffers:   []bufferResponse{},
		CreatedAt: agent.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// Get handles GET /agents/{agent_id}.
func (h *AgentHandler) Get(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "agent_id")

	agent, err := h.agentSvc.Get(agentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	summaries, err := h.inventorySvc.ListBuffers(agentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	buffers := make([]bufferResponse, len(summaries))
	for i, s := range summaries {
		buffers[i] = toBufferResponse(s)
	}

	WriteJSON(w, http.StatusOK, agentResponse{
		AgentID:   agent.AgentID,
		Name:      agent.Name,
		Buffers:   buffers,
		CreatedAt: agent.CreatedAt.UTC().Format(time.RFC3339),
	})
}
