package middleware

import (
	"net/http"
	"strings"

	"github.com/flexprice/budgetpdf/internal/auth"
	ierr "github.com/flexprice/budgetpdf/internal/errors"
	"github.com/flexprice/budgetpdf/internal/logger"
	"github.com/flexprice/budgetpdf/internal/types"
	"github.com/gin-gonic/gin"
)

// AuthenticateMiddleware verifies the bearer token in the Authorization
// header and puts the user ID in the request context for downstream handlers
func AuthenticateMiddleware(verifier auth.Verifier, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			unauthorized(c, "Unauthorized")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			unauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := verifier.ValidateToken(c.Request.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			logger.Debugw("failed to validate token", "error", err)
			unauthorized(c, "Invalid token")
			return
		}

		if claims == nil || claims.UserID <= 0 {
			unauthorized(c, "Invalid token claims")
			return
		}

		ctx := types.SetUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ierr.ErrorResponse{
		Success: false,
		Error:   ierr.ErrorDetail{Display: message},
	})
}
