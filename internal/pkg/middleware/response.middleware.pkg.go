package middleware

import (
	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/helper"

	"github.com/gin-gonic/gin"
)

// ResponseInit installs the "send" closure handlers use to write the
// standard envelope.
func ResponseInit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("send", func(r *types.Response) {
			if r == nil {
				r = helper.ParseResponse(&types.Response{})
			}
			c.AbortWithStatusJSON(r.Code, helper.ToResponseAPI(r))
		})
		c.Next()
	}
}
