package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acodelab/backend/internal/app/models/dto"
)

// BindJSON binds and validates a JSON request body. On failure it writes the
// structured validation response and reports false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
