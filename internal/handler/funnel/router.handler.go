package funnel

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	funnel := e.Group("/v1/funnel")

	funnel.POST("/sessions", h.StartSession)
	funnel.GET("/loading", h.Loading)

	session := funnel.Group("", h.session)
	session.GET("/session", h.GetSession)
	session.DELETE("/session", h.Reset)
	session.POST("/postal-modal", h.SetPostalModal)
	session.POST("/postal/confirm", h.ConfirmPostal)
	session.POST("/steps/:step", h.Advance)
}
