package handlers

import (
	"net/http"

	"github.com/pennyflow/Personal-Finance-Backend/internal/api/response"
	"github.com/pennyflow/Personal-Finance-Backend/internal/apperrors"
	"github.com/pennyflow/Personal-Finance-Backend/internal/service"
)

// EnrichmentHandler triggers categorization of stored transactions through
// the external categorizer.
type EnrichmentHandler struct {
	enrichmentService *service.EnrichmentService
}

// NewEnrichmentHandler creates a new EnrichmentHandler with the provided service dependency.
func NewEnrichmentHandler(enrichmentService *service.EnrichmentService) *EnrichmentHandler {
	return &EnrichmentHandler{
		enrichmentService: enrichmentService,
	}
}

// EnrichResponse reports how many transactions received enrichment data.
type EnrichResponse struct {
	Enriched int `json:"enriched"`
}

// Enrich handles POST requests that classify all uncategorized transactions.
//
// Endpoint: POST /api/transaction/enrich
// Response: 200 OK with EnrichResponse
// Error: 502 Bad Gateway if the categorizer call fails
func (h *EnrichmentHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	enriched, err := h.enrichmentService.EnrichAll(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToEnrichTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, EnrichResponse{Enriched: enriched})
}
