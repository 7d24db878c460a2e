package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realtora/realtor-api/internal/domain/entity"
	"github.com/realtora/realtor-api/pkg/response"
)

// RequireUserType rejects callers whose account role is not in the
// allow list. Must run after Auth.
func RequireUserType(types ...entity.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := entity.UserType(c.GetString(CtxUserTypeKey))
		for _, t := range types {
			if got == t {
				c.Next()
				return
			}
		}
		response.Error[any](c, http.StatusForbidden, "forbidden", nil)
		c.Abort()
	}
}
