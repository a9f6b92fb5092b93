package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdulsz/toxic-chat-classifier-api/internal/usecase"
)

// ClassifyHandler handles classification HTTP requests
type ClassifyHandler struct {
	uc usecase.ToxicityUsecase
}

// NewClassifyHandler creates a new classify handler
func NewClassifyHandler(uc usecase.ToxicityUsecase) *ClassifyHandler {
	return &ClassifyHandler{uc: uc}
}

// ClassifyRequest is the body for POST /api/v1/classify.
// Text is a pointer so that key presence and the empty string can be
// told apart; an empty string is a valid input.
type ClassifyRequest struct {
	Text *string `json:"text"`
}

// ClassifyBatchRequest is the body for POST /api/v1/classify/batch
type ClassifyBatchRequest struct {
	Texts []string `json:"texts" binding:"required,min=1,max=100"`
}

// Classify handles POST /api/v1/classify
func (h *ClassifyHandler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if req.Text == nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing required field: text")
		return
	}

	result, err := h.uc.Analyze(c.Request.Context(), *req.Text)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, result)
}

// ClassifyBatch handles POST /api/v1/classify/batch
func (h *ClassifyHandler) ClassifyBatch(c *gin.Context) {
	var req ClassifyBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	results, err := h.uc.AnalyzeBatch(c.Request.Context(), req.Texts)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"results": results,
		"count":   len(results),
	})
}
