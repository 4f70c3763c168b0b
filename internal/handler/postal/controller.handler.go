package postal

import (
	"context"

	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/middleware"
	postalService "partner-funnel/internal/service/postal"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx           context.Context
	postalService postalService.IService
	session       gin.HandlerFunc
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, postalService postalService.IService, session gin.HandlerFunc) IHandler {
	return &Handler{
		ctx:           ctx,
		postalService: postalService,
		session:       session,
	}
}

func (h *Handler) Lookup(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	sessionID := ""
	if s, ok := middleware.Session(c); ok {
		sessionID = s.ID
	}

	send(h.postalService.Lookup(c.Request.Context(), sessionID, c.Param("code"), c.Query("country")))
}
