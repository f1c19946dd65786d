package config

import (
	"log"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTP        HTTP
	Postgres    Postgres
	Redis       Redis
	API         API
	Cache       Cache
	Bulk        Bulk
	Jobs        Jobs
	Session     Session
	GoogleDrive GoogleDrive
}

type HTTP struct {
	Addr           string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout    time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout   time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	AllowedOrigins []string      `env:"HTTP_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}

type Postgres struct {
	Host            string `env:"PG_HOST"`
	Port            int    `env:"PG_PORT"`
	DbName          string `env:"PG_DB_NAME"`
	Password        string `env:"PG_PASSWORD"`
	User            string `env:"PG_USER"`
	MaxOpenConns    int    `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	ConnMaxLifetime int    `env:"PG_CONN_MAX_LIFETIME" envDefault:"300"`
	MaxIdleConns    int    `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxIdleTime int    `env:"PG_CONN_MAX_IDLE_TIME" envDefault:"60"`
	MigrationDir    string `env:"PG_MIGRATION_DIR" envDefault:"./migrations"`
}

type Redis struct {
	Host     string `env:"REDIS_HOST"`
	Port     int    `env:"REDIS_PORT"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type API struct {
	Debug      bool          `env:"API_DEBUG" envDefault:"false"`
	Timeout    time.Duration `env:"API_TIMEOUT" envDefault:"5s"`
	TwelveData TwelveData
	Finnhub    Finnhub
}

type TwelveData struct {
	Url    string `env:"TWELVEDATA_API_URL" envDefault:"https://api.twelvedata.com"`
	ApiKey string `env:"TWELVEDATA_API_KEY"`
}

type Finnhub struct {
	Url    string `env:"FINNHUB_API_URL" envDefault:"https://finnhub.io/api/v1"`
	ApiKey string `env:"FINNHUB_API_KEY"`
}

type Cache struct {
	QuoteFreshness     time.Duration `env:"CACHE_QUOTE_FRESHNESS" envDefault:"60s"`
	DividendExpiration time.Duration `env:"CACHE_DIVIDEND_EXPIRATION" envDefault:"12h"`
}

type Bulk struct {
	BatchSize  int           `env:"BULK_BATCH_SIZE" envDefault:"5"`
	BatchPause time.Duration `env:"BULK_BATCH_PAUSE" envDefault:"200ms"`
}

type Jobs struct {
	WarmQuotesInterval time.Duration `env:"WARM_QUOTES_JOB_INTERVAL" envDefault:"5m"`
}

type Session struct {
	Expiration time.Duration `env:"SESSION_EXPIRATION" envDefault:"168h"`
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"session_token"`
	Secure     bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

type GoogleDrive struct {
	CredentialsFile string        `env:"GOOGLE_DRIVE_CREDENTIALS_FILE" envDefault:""`
	FileTTL         time.Duration `env:"GOOGLE_DRIVE_FILE_TTL" envDefault:"24h"`
	CleanupInterval time.Duration `env:"GOOGLE_DRIVE_CLEANUP_INTERVAL" envDefault:"1h"`
}

func MustLoad() *Config {
	_ = godotenv.Load(".env")

	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}

const redacted = "[REDACTED]"

// LogValue logs the config with passwords and api keys masked.
func (c Config) LogValue() slog.Value {
	// plain has no methods, so slog does not resolve it again
	type plain Config
	masked := plain(c)
	masked.Postgres.Password = mask(masked.Postgres.Password)
	masked.Redis.Password = mask(masked.Redis.Password)
	masked.API.TwelveData.ApiKey = mask(masked.API.TwelveData.ApiKey)
	masked.API.Finnhub.ApiKey = mask(masked.API.Finnhub.ApiKey)
	return slog.AnyValue(masked)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return redacted
}
