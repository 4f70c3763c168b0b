package municipality

import (
	"context"
	"net/http"
	"strconv"

	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/helper"
	"partner-funnel/internal/pkg/municipality"

	"github.com/gin-gonic/gin"
)

const defaultLimit = 50

type Handler struct {
	ctx     context.Context
	catalog *municipality.Catalog
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, catalog *municipality.Catalog) IHandler {
	return &Handler{ctx: ctx, catalog: catalog}
}

// List answers the state list without ?state, otherwise the state's
// municipalities filtered by ?q.
func (h *Handler) List(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	state := c.Query("state")
	if state == "" {
		send(helper.ParseResponse(&types.Response{Data: gin.H{"states": h.catalog.States()}}))
		return
	}
	if len(state) != 2 {
		send(helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: "state must be a two-letter code"}))
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 0 {
		limit = defaultLimit
	}

	send(helper.ParseResponse(&types.Response{
		Data: h.catalog.Search(state, c.Query("q"), limit),
	}))
}
