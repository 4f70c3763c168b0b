package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	config "partner-funnel/configs"
	"partner-funnel/internal/pkg/beacon"
	database "partner-funnel/internal/pkg/db"
	"partner-funnel/internal/pkg/helper"
	"partner-funnel/internal/pkg/logger"
	"partner-funnel/internal/pkg/municipality"
	"partner-funnel/internal/pkg/pixpay"
	"partner-funnel/internal/pkg/postal"
	"partner-funnel/internal/pkg/progress"
	"partner-funnel/internal/pkg/rabbitmq"
	"partner-funnel/internal/pkg/redis"
	"partner-funnel/internal/pkg/validation"
	serverApp "partner-funnel/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	logger.Setup()
	defer logger.Sync()

	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	// Setup Redis
	redisClient, err := setupRedis(ctx, env)
	if err != nil {
		logger.Error.Println("Error setting up Redis", err)
		cancel()
		return
	}

	// Setup RabbitMQ (optional)
	var rabbit *rabbitmq.ConnectionManager
	if env.RabbitEnabled {
		rabbit, err = setupRabbitMQ(ctx, env)
		if err != nil {
			logger.Error.Println("Error setting up RabbitMQ", err)
			cancel()
			return
		}
	}

	// Setup Database
	db, err := setupDB(env, redisClient)
	if err != nil {
		logger.Error.Println("Error setting up Database", err)
		cancel()
		return
	}

	catalog, err := municipality.Load(env.MunicipalityData)
	if err != nil {
		logger.Error.Println("Error loading municipality data", err)
		cancel()
		return
	}

	statuses, err := progress.LoadStatuses(env.LoadingCopyFile)
	if err != nil {
		logger.Error.Println("Error loading loading-page copy", err)
		cancel()
		return
	}

	httpClient := helper.NewHTTPClient(&helper.HTTPClientConfig{
		ProxyURL:       env.HTTPProxyURL,
		RequestTimeout: helper.MillisToDuration(env.HTTPTimeoutMillis),
	})

	dispatcher, err := setupBeacon(env, redisClient, httpClient)
	if err != nil {
		logger.Error.Println("Error setting up beacon dispatcher", err)
		cancel()
		return
	}

	// Setup Server
	setupServer(&config.SetupServerDto{
		Rds:          redisClient,
		Env:          env,
		Ctx:          &ctx,
		Cancel:       cancel,
		Db:           db,
		Wg:           &wg,
		Rb:           rabbit,
		Postal:       setupPostal(env, httpClient),
		Pix:          setupPix(env, httpClient),
		Beacon:       dispatcher,
		Municipality: catalog,
		Statuses:     statuses,
	})
}

func setupRedis(ctx context.Context, env *config.Config) (*redis.Client, error) {
	return redis.Setup(ctx, &redis.Config{
		Host:     env.RedisHost,
		Username: env.RedisUser,
		Port:     env.RedisPort,
		Password: env.RedisPass,
		PoolSize: env.RedisPoolSize,
	})
}

func setupRabbitMQ(ctx context.Context, env *config.Config) (*rabbitmq.ConnectionManager, error) {
	return rabbitmq.NewConnectionManager(ctx, &rabbitmq.Config{
		Username: env.RabbitUser,
		Password: env.RabbitPass,
		Host:     env.RabbitHost,
		Port:     env.RabbitPort,
	})
}

func setupDB(env *config.Config, rds *redis.Client) (*database.Database, error) {
	return database.Setup(&database.Config{
		Host:      env.DBHost,
		Port:      env.DBPort,
		User:      env.DBUser,
		Password:  env.DBPass,
		Database:  env.DBName,
		SSLMode:   "disable",
		Driver:    database.DriverEnum(env.DBDriver),
		Cache:     env.DBCache,
		Rds:       rds,
		CacheTime: helper.SecondsToDuration(env.DBCacheSeconds),
	})
}

func setupPostal(env *config.Config, client *helper.HTTPClient) postal.Provider {
	return postal.NewChain(
		postal.NewViaCEP(env.ViaCEPBaseURL, client),
		postal.NewGeocoder(env.GeocoderBaseURL, client),
	)
}

func setupPix(env *config.Config, client *helper.HTTPClient) pixpay.IClient {
	return pixpay.NewClient(&pixpay.Config{
		BaseURL:          env.PixAPIURL,
		SecretKey:        env.PixSecretKey,
		DefaultItemTitle: env.PixDefaultItemTitle,
	}, client)
}

// setupBeacon registers the log and counter sinks always, plus the webhook
// and Telegram sinks when configured.
func setupBeacon(env *config.Config, rds redis.IRedis, client *helper.HTTPClient) (*beacon.Dispatcher, error) {
	sinks := []beacon.Sink{
		beacon.NewLogSink(logger.Zap()),
		beacon.NewCounterSink(rds),
	}
	if env.BeaconWebhookURL != "" {
		sinks = append(sinks, beacon.NewWebhookSink(env.BeaconWebhookURL, env.BeaconWebhookToken, client))
	}
	if env.TelegramBotToken != "" && env.TelegramChatID != 0 {
		b, err := beacon.NewTelegramBot(env.TelegramBotToken)
		if err != nil {
			return nil, fmt.Errorf("failed to create telegram bot: %w", err)
		}
		sinks = append(sinks, beacon.NewTelegramSink(b, env.TelegramChatID, env.AppBrandName))
	}

	d, err := beacon.NewDispatcher(beacon.DispatcherOptions{
		RetryDelay: helper.MillisToDuration(env.BeaconRetryDelayMs),
	}, sinks...)
	if err != nil {
		return nil, err
	}
	logger.Info.Printf("Beacon sinks: %v\n", d.SinkNames())
	return d, nil
}

func setupServer(payload *config.SetupServerDto) {
	rds := payload.Rds
	env := payload.Env
	ctx := payload.Ctx
	cancel := payload.Cancel
	wg := payload.Wg
	rb := payload.Rb
	db := payload.Db

	var stopWorkers func()
	defer func() {
		if stopWorkers != nil {
			stopWorkers()
		}
		payload.Beacon.Close()
		if rb != nil {
			_ = rb.Close()
		}
		if db != nil {
			_ = db.Close()
		}
		if rds != nil {
			_ = rds.Close()
		}
		cancel()
		wg.Wait()
	}()

	err := validation.Setup()
	if err != nil {
		logger.Error.Println("Failed to setup validation")
		panic(err)
	}

	if env.AppEnv.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	e := gin.New()
	e.Use(gin.Recovery())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", env.AppPort),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverApp.Setup(e, payload)
	if rb != nil {
		stopWorkers, err = serverApp.InitWorker(*ctx, rb, payload.Beacon)
		if err != nil {
			logger.Error.Println("Failed to start workers:", err)
		}
	}

	go func() {
		logger.HTTP.Println("========= Server Started =========")
		logger.HTTP.Println("=========", env.AppBrandName, env.AppPort, "=========")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error.Println("Server error:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.HTTP.Println("========= Server Shutting Down =========")

	shutdownCtx, done := context.WithTimeout(context.Background(), 15*time.Second)
	defer done()
	_ = server.Shutdown(shutdownCtx)
}
