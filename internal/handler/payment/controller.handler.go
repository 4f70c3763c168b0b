package payment

import (
	"context"
	"net/http"

	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/helper"
	"partner-funnel/internal/pkg/middleware"
	"partner-funnel/internal/pkg/validation"
	paymentService "partner-funnel/internal/service/payment"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx            context.Context
	paymentService paymentService.IService
	session        gin.HandlerFunc
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

// NewHandler takes the optional session middleware so a checkout can be
// linked to the visitor's funnel session.
func NewHandler(ctx context.Context, paymentService paymentService.IService, session gin.HandlerFunc) IHandler {
	return &Handler{
		ctx:            ctx,
		paymentService: paymentService,
		session:        session,
	}
}

func (h *Handler) Checkout(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req paymentService.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   validation.BindError(err),
		}))
		return
	}

	sessionID := ""
	if s, ok := middleware.Session(c); ok {
		sessionID = s.ID
	}

	send(h.paymentService.Checkout(c.Request.Context(), sessionID, &req))
}

func (h *Handler) CheckStatus(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	transactionID := c.Param("transaction_id")
	if transactionID == "" {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "transaction_id is required",
		}))
		return
	}

	send(h.paymentService.CheckStatus(c.Request.Context(), transactionID))
}
