package main

import (
	"fmt"
	"net/http"
	"time"

	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/helper"
	"partner-funnel/internal/pkg/middleware"
	"partner-funnel/internal/pkg/pixpay"
	"partner-funnel/internal/pkg/postal"
	serverApp "partner-funnel/internal/server"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

func newEngine(dir string) *gin.Engine {
	e := gin.New()
	e.Use(gin.Recovery(), middleware.CorsMiddleware(), middleware.RequestInit(), middleware.ResponseInit())

	e.GET("/static-health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	mock := e.Group("/api/mock")
	mock.GET("/postal/:code", mockPostal)
	mock.POST("/payment", mockPayment)

	e.NoRoute(serverApp.SPAHandler(dir))
	return e
}

// mockPostal answers any well-formed code with a fixed address and marks
// everything else invalid.
func mockPostal(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	code, cc, ok := postal.Normalize(c.Param("code"), c.Query("country"))
	if !ok {
		send(helper.ParseResponse(&types.Response{Message: "Invalid postal code", Data: postal.Invalid(code, cc)}))
		return
	}

	send(helper.ParseResponse(&types.Response{
		Message: "Postal code found",
		Data: &postal.Result{
			PostalCode:   code,
			Street:       "Avenida Paulista",
			Neighborhood: "Bela Vista",
			City:         "São Paulo",
			State:        "SP",
			Country:      cc,
			IsValid:      true,
		},
	}))
}

type mockPaymentRequest struct {
	Amount float64 `json:"amount"`
}

func mockPayment(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req mockPaymentRequest
	_ = c.ShouldBindJSON(&req)
	if req.Amount == 0 {
		req.Amount = 84.70
	}
	amount, err := pixpay.ToMinorUnits(req.Amount)
	if err != nil {
		send(helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: "Invalid amount", Error: err}))
		return
	}

	id, err := gonanoid.New(12)
	if err != nil {
		send(helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Error: err}))
		return
	}

	send(helper.ParseResponse(&types.Response{
		Code:    http.StatusCreated,
		Message: "Mock PIX payment created",
		Data: pixpay.Purchase{
			TransactionID: "mock_" + id,
			PixCode:       fmt.Sprintf("00020126MOCK%s5204000053039865406%.2f5802BR", id, req.Amount),
			Status:        "pending",
			AmountMinor:   amount,
		},
	}))
}
