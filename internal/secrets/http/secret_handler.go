// Package http provides HTTP handlers for secret storage operations.
package http

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/keyfort/keyfort/internal/crypto/domain"
	"github.com/keyfort/keyfort/internal/httputil"
	"github.com/keyfort/keyfort/internal/secrets/http/dto"
	secretsUseCase "github.com/keyfort/keyfort/internal/secrets/usecase"
	customValidation "github.com/keyfort/keyfort/internal/validation"
)

// SecretHandler handles HTTP requests for secret storage operations.
type SecretHandler struct {
	secretUseCase secretsUseCase.SecretUseCase
	logger        *slog.Logger
}

// NewSecretHandler creates a new secret handler.
func NewSecretHandler(
	secretUseCase secretsUseCase.SecretUseCase,
	logger *slog.Logger,
) *SecretHandler {
	return &SecretHandler{
		secretUseCase: secretUseCase,
		logger:        logger,
	}
}

// serviceName extracts and validates the service name URL parameter.
func (h *SecretHandler) serviceName(c *gin.Context) (string, bool) {
	name := c.Param("service_name")
	if err := customValidation.Name.Validate(name); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return "", false
	}
	return name, true
}

// PutHandler stores or updates a secret.
// PUT /v1/secrets/:service_name
// Returns 200 OK with metadata and the new version; the value is never echoed.
func (h *SecretHandler) PutHandler(c *gin.Context) {
	name, ok := h.serviceName(c)
	if !ok {
		return
	}

	var req dto.PutSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	value, err := base64.StdEncoding.DecodeString(req.Value)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	defer cryptoDomain.Zero(value)

	secret, err := h.secretUseCase.Put(
		c.Request.Context(), name, value, req.Metadata, req.ExpectedVersion,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSecretToPutResponse(secret))
}

// GetHandler retrieves and decrypts a secret.
// GET /v1/secrets/:service_name
// Returns 200 OK with the base64-encoded value. The plaintext is zeroed
// after the response is mapped.
func (h *SecretHandler) GetHandler(c *gin.Context) {
	name, ok := h.serviceName(c)
	if !ok {
		return
	}

	secret, err := h.secretUseCase.Get(c.Request.Context(), name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer cryptoDomain.Zero(secret.Plaintext)

	c.JSON(http.StatusOK, dto.MapSecretToGetResponse(secret))
}

// DeleteHandler removes a secret.
// DELETE /v1/secrets/:service_name
// Returns 204 No Content.
func (h *SecretHandler) DeleteHandler(c *gin.Context) {
	name, ok := h.serviceName(c)
	if !ok {
		return
	}

	if err := h.secretUseCase.Delete(c.Request.Context(), name); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListHandler retrieves secret metadata with pagination.
// GET /v1/secrets?offset=0&limit=50
// Returns 200 OK. Values are never decrypted for listings.
func (h *SecretHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	secrets, err := h.secretUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSecretsToListResponse(secrets))
}
