package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keyfort/keyfort/internal/apikeys/http/dto"
	apikeysUseCase "github.com/keyfort/keyfort/internal/apikeys/usecase"
	"github.com/keyfort/keyfort/internal/httputil"
	customValidation "github.com/keyfort/keyfort/internal/validation"
)

// APIKeyHandler handles HTTP requests for API key management.
type APIKeyHandler struct {
	apiKeyUseCase apikeysUseCase.APIKeyUseCase
	logger        *slog.Logger
}

// NewAPIKeyHandler creates a new API key handler.
func NewAPIKeyHandler(
	apiKeyUseCase apikeysUseCase.APIKeyUseCase,
	logger *slog.Logger,
) *APIKeyHandler {
	return &APIKeyHandler{
		apiKeyUseCase: apiKeyUseCase,
		logger:        logger,
	}
}

// CreateHandler generates a new API key.
// POST /v1/api-keys
// Returns 201 Created with the plaintext credential. The credential appears
// in this response only and cannot be recovered afterwards.
func (h *APIKeyHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ttl := time.Duration(req.TTLDays) * 24 * time.Hour

	apiKey, plainCredential, err := h.apiKeyUseCase.Generate(c.Request.Context(), req.Label, ttl)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAPIKeyToCreateResponse(apiKey, plainCredential))
}

// RevokeHandler permanently deactivates an API key by label.
// DELETE /v1/api-keys/:label
// Returns 204 No Content.
func (h *APIKeyHandler) RevokeHandler(c *gin.Context) {
	label := c.Param("label")
	if err := customValidation.Name.Validate(label); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.apiKeyUseCase.Revoke(c.Request.Context(), label); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
