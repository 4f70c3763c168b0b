package municipality

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	e.GET("/v1/municipalities", h.List)
}
