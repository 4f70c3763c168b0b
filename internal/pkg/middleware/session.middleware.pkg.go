package middleware

import (
	"net/http"

	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/helper"

	"github.com/gin-gonic/gin"
)

const (
	SessionHeader = "X-Funnel-Session"
	SessionKey    = "funnel_session"
)

type TokenValidator interface {
	ValidateToken(raw string) (*types.FunnelSession, error)
}

// SessionMiddleware reads X-Funnel-Session. With required set, a missing or
// invalid token ends the request with 401; otherwise it is ignored.
func SessionMiddleware(v TokenValidator, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionHeader)
		if token == "" {
			if required {
				send := c.MustGet("send").(func(r *types.Response))
				send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "session token not found"}))
				return
			}
			c.Next()
			return
		}

		session, err := v.ValidateToken(token)
		if err != nil {
			if required {
				send := c.MustGet("send").(func(r *types.Response))
				send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "invalid session token", Error: err}))
				return
			}
			c.Next()
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

// Session returns the session SessionMiddleware attached, if any.
func Session(c *gin.Context) (*types.FunnelSession, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*types.FunnelSession)
	return s, ok
}
