package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hrdesk/review-api/internal/middleware"
	"github.com/hrdesk/review-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// actorFromContext resolves the audit identity for the request. Routes behind
// the JWT middleware always have claims; "anonymous" is a guard for tests
// wiring handlers directly.
func actorFromContext(c *gin.Context) string {
	if claims := claimsFromContext(c); claims != nil && claims.Username != "" {
		return claims.Username
	}
	return "anonymous"
}
