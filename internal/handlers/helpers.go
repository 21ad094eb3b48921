package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

// bindJSON binds the body and writes a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return false
	}
	return true
}
