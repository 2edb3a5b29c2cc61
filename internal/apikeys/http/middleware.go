package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	apikeysUseCase "github.com/keyfort/keyfort/internal/apikeys/usecase"
	apperrors "github.com/keyfort/keyfort/internal/errors"
	"github.com/keyfort/keyfort/internal/httputil"
)

// APIKeyHeader is the request header carrying the plaintext credential.
const APIKeyHeader = "X-API-Key"

// AuthenticationMiddleware authenticates requests via the X-API-Key header.
//
// The middleware validates the presented credential with
// apiKeyUseCase.Validate and stores the matching key record in the request
// context for downstream handlers. A missing, unknown, revoked or expired
// credential yields 401 before any handler runs; the reason is logged but
// never disclosed to the caller.
func AuthenticationMiddleware(
	apiKeyUseCase apikeysUseCase.APIKeyUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(APIKeyHeader)
		if presented == "" {
			logger.Debug("authentication failed: missing api key header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		apiKey, err := apiKeyUseCase.Validate(c.Request.Context(), presented)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithAPIKey(c.Request.Context(), apiKey)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("api_key_label", apiKey.Label))

		c.Next()
	}
}
