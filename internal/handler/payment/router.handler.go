package payment

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	payments := e.Group("/v1/payments")

	payments.POST("/pix", h.session, h.Checkout)
	payments.GET("/pix/:transaction_id", h.CheckStatus)
}
