package serverApp

import (
	"context"
	"net/http"
	"sync"
	"time"

	config "partner-funnel/configs"
	"partner-funnel/internal/pkg/beacon"
	"partner-funnel/internal/pkg/helper"
	"partner-funnel/internal/pkg/jwt"
	"partner-funnel/internal/pkg/logger"
	"partner-funnel/internal/pkg/middleware"
	"partner-funnel/internal/pkg/rabbitmq"
	"partner-funnel/internal/repository"
	paymentRepo "partner-funnel/internal/repository/payment"
	sessionRepo "partner-funnel/internal/repository/session"

	funnelHandler "partner-funnel/internal/handler/funnel"
	municipalityHandler "partner-funnel/internal/handler/municipality"
	paymentHandler "partner-funnel/internal/handler/payment"
	postalHandler "partner-funnel/internal/handler/postal"
	funnelService "partner-funnel/internal/service/funnel"
	paymentService "partner-funnel/internal/service/payment"
	postalService "partner-funnel/internal/service/postal"

	"github.com/gin-gonic/gin"
)

// Setup initializes the HTTP server with middleware and routes
func Setup(engine *gin.Engine, payload *config.SetupServerDto) {
	InitMiddleware(engine)

	engine.GET("/health", healthHandler(payload))

	e := engine.Group(BasePath())
	InitRoutes(e, payload)

	engine.NoRoute(SPAHandler(payload.Env.WebDistDir))
}

// BasePath returns the base API path
func BasePath() string {
	return "/api"
}

// InitMiddleware initializes global middleware
func InitMiddleware(e *gin.Engine) {
	e.Use(middleware.CorsMiddleware())
	e.Use(middleware.RequestInit())
	e.Use(middleware.ResponseInit())
}

func InitRoutes(e *gin.RouterGroup, payload *config.SetupServerDto) {
	ctx := *payload.Ctx
	env := payload.Env

	// setup repo
	rp := repository.IRepository{
		Payment: paymentRepo.NewRepo(payload.Db),
		Session: sessionRepo.NewRepo(payload.Rds, helper.SecondsToDuration(env.FunnelSessionTTL)),
	}

	signer := jwt.NewSigner(env.JWTSecret, helper.SecondsToDuration(env.FunnelSessionTTL))
	requireSession := middleware.SessionMiddleware(signer, true)
	optionalSession := middleware.SessionMiddleware(signer, false)
	emitter := newEmitter(ctx, payload)

	// === Funnel ===
	FunnelService := funnelService.NewService(ctx, rp, signer, emitter, funnelService.Config{
		Brand:    env.AppBrandName,
		Loading:  helper.MillisToDuration(env.LoadingDurationMs),
		Statuses: payload.Statuses,
	})
	funnelHandler.NewHandler(ctx, FunnelService, requireSession).NewRoutes(e)

	// === Postal ===
	PostalService := postalService.NewService(ctx, payload.Rds, rp, payload.Postal, helper.SecondsToDuration(env.PostalCacheTTL))
	postalHandler.NewHandler(ctx, PostalService, optionalSession).NewRoutes(e)

	// === Municipality ===
	municipalityHandler.NewHandler(ctx, payload.Municipality).NewRoutes(e)

	// === Payment ===
	PaymentService := paymentService.NewService(ctx, rp, payload.Pix, emitter, env.PixAmount)
	paymentHandler.NewHandler(ctx, PaymentService, optionalSession).NewRoutes(e)
}

// newEmitter queues conversion events when RabbitMQ is up and dispatches
// in-process otherwise.
func newEmitter(ctx context.Context, payload *config.SetupServerDto) beacon.Emitter {
	if payload.Rb == nil {
		return payload.Beacon
	}
	publisher := rabbitmq.NewPublisher(ctx, payload.Rb, beacon.QueueName)
	return beacon.NewQueueEmitter(publisher, payload.Beacon)
}

type dependencyStatus struct {
	Status string `json:"status"`
}

func healthHandler(payload *config.SetupServerDto) gin.HandlerFunc {
	return func(c *gin.Context) {
		services := map[string]dependencyStatus{
			"database": {Status: "unhealthy"},
			"redis":    {Status: "unhealthy"},
			"rabbitmq": {Status: "disabled"},
		}

		var wg sync.WaitGroup
		var mu sync.Mutex
		set := func(name, status string) {
			mu.Lock()
			services[name] = dependencyStatus{Status: status}
			mu.Unlock()
		}
		check := func(name string, ok func() bool) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if ok() {
					set(name, "healthy")
				}
			}()
		}

		check("database", func() bool { return payload.Db != nil && !payload.Db.IsCloseConnection() })
		check("redis", func() bool { return payload.Rds != nil && payload.Rds.Ping() == nil })
		if payload.Rb != nil {
			set("rabbitmq", "unhealthy")
			check("rabbitmq", func() bool { return !payload.Rb.IsClosed() })
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(3 * time.Second):
			logger.Warning.Println("Health check timed out")
		}

		mu.Lock()
		defer mu.Unlock()
		code := http.StatusOK
		for _, s := range services {
			if s.Status == "unhealthy" {
				code = http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status":  code,
			"brand":   payload.Env.AppBrandName,
			"service": services,
		})
	}
}
