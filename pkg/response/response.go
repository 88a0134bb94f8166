package response

import (
	"log"
	"net/http"

	"rosalia.com/connect/pkg/apperror"
	"rosalia.com/connect/pkg/token"

	"github.com/gin-gonic/gin"
)

// ContextClaimsKey is where RequireAuth stores the verified identity.
const ContextClaimsKey = "claims"

// GetClaims retrieves the authenticated identity from the gin context.
func GetClaims(c *gin.Context) (*token.Claims, error) {
	val, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, apperror.ErrUnauthorized
	}

	claims, ok := val.(*token.Claims)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	return claims, nil
}

// Error writes the standardized error body {"error": message}.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		log.Printf("[internal error]: %v", err)
		// Internal detail stays out of the response body.
		c.JSON(code, gin.H{"error": apperror.ErrInternal.Error()})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
