// Package respond writes ledger errors as JSON error bodies.
package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/ledger"
	"github.com/rs/zerolog/log"
)

// Status maps a ledger error to its HTTP status.
func Status(err error) int {
	switch {
	case errors.Is(err, ledger.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInsufficientStock), errors.Is(err, ledger.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrConflict), errors.Is(err, ledger.ErrStockConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error aborts the request with {"error", "code"}. Unexpected errors are
// logged and reported without their detail.
func Error(c *gin.Context, err error) {
	status := Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("❌ Request failed")
		msg = "Internal server error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "code": ledger.Code(err)})
}

// BadRequest reports a request body or parameter that failed validation.
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg, "code": "invalid_input"})
}
