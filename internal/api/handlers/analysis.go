package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/pennyflow/Personal-Finance-Backend/internal/api/request"
	"github.com/pennyflow/Personal-Finance-Backend/internal/api/response"
	"github.com/pennyflow/Personal-Finance-Backend/internal/apperrors"
	"github.com/pennyflow/Personal-Finance-Backend/internal/service"
	"github.com/pennyflow/Personal-Finance-Backend/internal/validation"
)

// AnalysisHandler handles HTTP requests for the transaction analysis
// endpoints. Range selection arrives as query parameters; the heavy lifting
// lives in the analysis service and engine.
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler with the provided service dependency.
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

// parseAnalysisRequest extracts the range selection from query parameters:
// mode (range token, default applied downstream), start/end (ISO dates for
// custom mode) and an optional balance override for the runway estimate.
func parseAnalysisRequest(r *http.Request) (request.AnalysisRequest, error) {
	req := request.AnalysisRequest{
		Mode:  r.URL.Query().Get("mode"),
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}

	if raw := r.URL.Query().Get("balance"); raw != "" {
		balance, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return request.AnalysisRequest{}, err
		}
		req.KnownBalance = &balance
	}

	return req, nil
}

// GetAnalysis handles GET requests to compute the analysis for a range.
//
// Endpoint: GET /api/analysis?mode=30d[&start=YYYY-MM-DD&end=YYYY-MM-DD][&balance=1234.56]
// Response: 200 OK with Analysis
// Error: 400 Bad Request if the range selection is invalid
// Error: 404 Not Found if there are no transactions to analyze at all
// Error: 500 Internal Server Error if the computation fails
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	req, err := parseAnalysisRequest(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid balance parameter", err.Error())
		return
	}

	if err := validation.ValidateAnalysisRequest(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.analysisService.GetAnalysis(req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoTransactions) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrNoTransactions.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalysis.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// GetSnapshot handles GET requests for the persisted analysis snapshot.
// Intended for cold-start rendering before the first recomputation.
//
// Endpoint: GET /api/analysis/snapshot
// Response: 200 OK with the cached Analysis
// Error: 404 Not Found if no current-version snapshot exists
// Error: 500 Internal Server Error if the read fails
func (h *AnalysisHandler) GetSnapshot(w http.ResponseWriter, _ *http.Request) {
	result, err := h.analysisService.GetCachedAnalysis()
	if err != nil {
		if errors.Is(err, apperrors.ErrSnapshotNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSnapshotNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalysis.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// InRangeTransactions handles GET requests for the raw transactions inside
// the resolved range, for collaborators that need the filtered list itself.
//
// Endpoint: GET /api/analysis/transactions?mode=30d[...]
// Response: 200 OK with array of Transaction
// Error: 400 Bad Request if the range selection is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *AnalysisHandler) InRangeTransactions(w http.ResponseWriter, r *http.Request) {
	req, err := parseAnalysisRequest(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid balance parameter", err.Error())
		return
	}

	if err := validation.ValidateAnalysisRequest(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transactions, err := h.analysisService.GetInRangeTransactions(req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}
