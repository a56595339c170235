package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Recovery logs panics and converts them into a JSON 500 instead of gin's
// default plain-text response. Aggregation and classification errors are
// handled per-request in the handlers; this is the last resort.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic recovered: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					ErrorResponse{Error: "internal server error"})
			}
		}()
		c.Next()
	}
}
