package funnel

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"partner-funnel/internal/common/enum"
	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/helper"
	"partner-funnel/internal/pkg/logger"
	"partner-funnel/internal/pkg/middleware"
	"partner-funnel/internal/pkg/validation"
	funnelService "partner-funnel/internal/service/funnel"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx           context.Context
	funnelService funnelService.IService
	session       gin.HandlerFunc
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

// NewHandler takes the required-session middleware guarding every route
// except session creation and the loading stream.
func NewHandler(ctx context.Context, funnelService funnelService.IService, session gin.HandlerFunc) IHandler {
	return &Handler{
		ctx:           ctx,
		funnelService: funnelService,
		session:       session,
	}
}

func (h *Handler) StartSession(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.funnelService.StartSession())
}

func (h *Handler) GetSession(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.funnelService.GetSession(sessionID(c)))
}

func (h *Handler) SetPostalModal(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req funnelService.PostalModalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(badRequest(err))
		return
	}
	send(h.funnelService.SetPostalModal(sessionID(c), &req))
}

func (h *Handler) ConfirmPostal(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req funnelService.ConfirmPostalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(badRequest(err))
		return
	}
	send(h.funnelService.ConfirmPostal(sessionID(c), &req))
}

func (h *Handler) Advance(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req funnelService.AdvanceRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			send(badRequest(err))
			return
		}
	}
	send(h.funnelService.Advance(sessionID(c), enum.StepEnum(c.Param("step")), &req))
}

func (h *Handler) Reset(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.funnelService.Reset(sessionID(c)))
}

// Loading streams the loading-page statuses as server-sent events:
// one "status" per text, then a single "complete".
func (h *Handler) Loading(c *gin.Context) {
	durationMs, _ := strconv.Atoi(c.Query("duration_ms"))
	seq := h.funnelService.Loading(durationMs)
	total := len(seq.Statuses)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	err := seq.Run(c.Request.Context(),
		func(i int, status string) {
			c.SSEvent("status", gin.H{"index": i, "total": total, "text": status})
			c.Writer.Flush()
		},
		func() {
			c.SSEvent("complete", gin.H{"total": total})
			c.Writer.Flush()
		},
	)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Warning.Printf("Loading stream ended early: %v\n", err)
	}
	c.Abort()
}

func sessionID(c *gin.Context) string {
	if s, ok := middleware.Session(c); ok {
		return s.ID
	}
	return ""
}

func badRequest(err error) *types.Response {
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
		Error:   validation.BindError(err),
	})
}
