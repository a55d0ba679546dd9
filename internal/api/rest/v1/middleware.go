package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewAPIKeyMiddleware guards the administrative API. The Authorization
// header must carry the configured key verbatim.
func NewAPIKeyMiddleware(apiKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetHeader("Authorization") != apiKey {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
			return
		}
		ctx.Next()
	}
}
