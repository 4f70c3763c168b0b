package config

import (
	"context"
	"partner-funnel/internal/common/enum"
	"partner-funnel/internal/pkg/beacon"
	database "partner-funnel/internal/pkg/db"
	"partner-funnel/internal/pkg/municipality"
	"partner-funnel/internal/pkg/pixpay"
	"partner-funnel/internal/pkg/postal"
	"partner-funnel/internal/pkg/rabbitmq"
	"partner-funnel/internal/pkg/redis"
	"sync"
)

// Config holds all application configuration loaded from environment variables
type Config struct {
	AppEnv       enum.EnvEnum `env:"APP_ENV" envDefault:"development"`
	AppPort      int          `env:"APP_PORT" envDefault:"8080"`
	AppBrandName string       `env:"APP_BRAND_NAME" envDefault:"Partner Onboarding"`
	WebDistDir   string       `env:"WEB_DIST_DIR" envDefault:"web/dist"`
	JWTSecret    string       `env:"JWT_SECRET" envDefault:""`

	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisUser     string `env:"REDIS_USER" envDefault:"default"`
	RedisPass     string `env:"REDIS_PASS" envDefault:""`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	RabbitEnabled bool   `env:"RABBIT_ENABLED" envDefault:"false"`
	RabbitHost    string `env:"RABBIT_HOST" envDefault:"localhost"`
	RabbitPort    int    `env:"RABBIT_PORT" envDefault:"5672"`
	RabbitUser    string `env:"RABBIT_USER" envDefault:"guest"`
	RabbitPass    string `env:"RABBIT_PASS" envDefault:"guest"`

	DBDriver       string `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost         string `env:"DB_HOST" envDefault:"localhost"`
	DBPort         int    `env:"DB_PORT" envDefault:"5432"`
	DBUser         string `env:"DB_USER" envDefault:"postgres"`
	DBPass         string `env:"DB_PASS" envDefault:""`
	DBName         string `env:"DB_NAME" envDefault:"postgres"`
	DBCache        bool   `env:"DB_CACHE" envDefault:"false"`
	DBCacheSeconds int    `env:"DB_CACHE_SECONDS" envDefault:"60"`

	HTTPProxyURL      string `env:"HTTP_PROXY_URL" envDefault:""`
	HTTPTimeoutMillis int    `env:"HTTP_TIMEOUT_MS" envDefault:"15000"`

	ViaCEPBaseURL   string `env:"VIACEP_BASE_URL" envDefault:"https://viacep.com.br"`
	GeocoderBaseURL string `env:"GEOCODER_BASE_URL" envDefault:"https://api.zippopotam.us"`
	PostalCacheTTL  int    `env:"POSTAL_CACHE_TTL" envDefault:"86400"`

	FunnelSessionTTL  int    `env:"FUNNEL_SESSION_TTL" envDefault:"7200"`
	LoadingDurationMs int    `env:"LOADING_DURATION_MS" envDefault:"6000"`
	LoadingCopyFile   string `env:"LOADING_COPY_FILE" envDefault:""`

	PixAPIURL           string  `env:"PIX_API_URL" envDefault:"https://pix-provider.example/api/v1"`
	PixSecretKey        string  `env:"PIX_SECRET_KEY" envDefault:""`
	PixAmount           float64 `env:"PIX_AMOUNT" envDefault:"84.70"`
	PixDefaultItemTitle string  `env:"PIX_DEFAULT_ITEM_TITLE" envDefault:"Partner starter kit"`

	MunicipalityData string `env:"MUNICIPALITY_DATA" envDefault:"data/municipalities.csv"`

	BeaconRetryDelayMs int    `env:"BEACON_RETRY_DELAY_MS" envDefault:"2000"`
	BeaconWebhookURL   string `env:"BEACON_WEBHOOK_URL" envDefault:""`
	BeaconWebhookToken string `env:"BEACON_WEBHOOK_TOKEN" envDefault:""`
	TelegramBotToken   string `env:"TELEGRAM_BOT_TOKEN" envDefault:""`
	TelegramChatID     int64  `env:"TELEGRAM_CHAT_ID" envDefault:"0"`
}

// SetupServerDto contains dependencies for server setup
type SetupServerDto struct {
	Ctx          *context.Context
	Cancel       context.CancelFunc
	Wg           *sync.WaitGroup
	Env          *Config
	Db           *database.Database
	Rds          redis.IRedis
	Rb           *rabbitmq.ConnectionManager
	Postal       postal.Provider
	Pix          pixpay.IClient
	Beacon       *beacon.Dispatcher
	Municipality *municipality.Catalog
	Statuses     []string
}
