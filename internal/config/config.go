package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Seller   SellerConfig
	Update   UpdateConfig
	Cache    CacheConfig
	Archive  ArchiveConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// SellerConfig holds the marketplace seller API credentials and endpoint.
type SellerConfig struct {
	BaseURL  string
	ClientID string
	APIKey   string
}

// UpdateConfig controls the full-update pipeline: the advisory cooldown
// between runs, the report polling loop and the enrichment fan-out.
type UpdateConfig struct {
	CooldownSeconds     int
	PollIntervalSeconds int
	PollMaxAttempts     int
	SalesPeriodDays     int
	EnrichWorkers       int
	LockEnabled         bool
	LockTTLSeconds      int
}

type CacheConfig struct {
	Enabled       bool
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	DemandTTLSec  int
}

// ArchiveConfig configures optional S3-compatible archiving of downloaded
// report files. Archiving is disabled when the endpoint is empty.
type ArchiveConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	Prefix    string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 120)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "ozonator")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("OZON_API_URL", "https://api-seller.ozon.ru")
		viper.SetDefault("OZON_CLIENT_ID", "")
		viper.SetDefault("OZON_API_KEY", "")
		viper.SetDefault("UPDATE_COOLDOWN_SECONDS", 60)
		viper.SetDefault("REPORT_POLL_INTERVAL_SECONDS", 3)
		viper.SetDefault("REPORT_POLL_MAX_ATTEMPTS", 20)
		viper.SetDefault("SALES_PERIOD_DAYS", 30)
		viper.SetDefault("ENRICH_WORKERS", 4)
		viper.SetDefault("UPDATE_LOCK_ENABLED", false)
		viper.SetDefault("UPDATE_LOCK_TTL_SECONDS", 300)
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_DEMAND_TTL_SECONDS", 60)
		viper.SetDefault("ARCHIVE_ENDPOINT", "")
		viper.SetDefault("ARCHIVE_ACCESS_KEY", "")
		viper.SetDefault("ARCHIVE_SECRET_KEY", "")
		viper.SetDefault("ARCHIVE_BUCKET", "")
		viper.SetDefault("ARCHIVE_REGION", "")
		viper.SetDefault("ARCHIVE_USE_SSL", true)
		viper.SetDefault("ARCHIVE_PREFIX", "reports")

		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Seller: SellerConfig{
				BaseURL:  viper.GetString("OZON_API_URL"),
				ClientID: viper.GetString("OZON_CLIENT_ID"),
				APIKey:   viper.GetString("OZON_API_KEY"),
			},
			Update: UpdateConfig{
				CooldownSeconds:     viper.GetInt("UPDATE_COOLDOWN_SECONDS"),
				PollIntervalSeconds: viper.GetInt("REPORT_POLL_INTERVAL_SECONDS"),
				PollMaxAttempts:     viper.GetInt("REPORT_POLL_MAX_ATTEMPTS"),
				SalesPeriodDays:     viper.GetInt("SALES_PERIOD_DAYS"),
				EnrichWorkers:       viper.GetInt("ENRICH_WORKERS"),
				LockEnabled:         viper.GetBool("UPDATE_LOCK_ENABLED"),
				LockTTLSeconds:      viper.GetInt("UPDATE_LOCK_TTL_SECONDS"),
			},
			Cache: CacheConfig{
				Enabled:       viper.GetBool("CACHE_ENABLED"),
				RedisURL:      viper.GetString("REDIS_URL"),
				RedisHost:     viper.GetString("REDIS_HOST"),
				RedisPort:     viper.GetString("REDIS_PORT"),
				RedisPassword: viper.GetString("REDIS_PASSWORD"),
				RedisDB:       viper.GetInt("REDIS_DB"),
				DemandTTLSec:  viper.GetInt("CACHE_DEMAND_TTL_SECONDS"),
			},
			Archive: ArchiveConfig{
				Endpoint:  viper.GetString("ARCHIVE_ENDPOINT"),
				AccessKey: viper.GetString("ARCHIVE_ACCESS_KEY"),
				SecretKey: viper.GetString("ARCHIVE_SECRET_KEY"),
				Bucket:    viper.GetString("ARCHIVE_BUCKET"),
				Region:    viper.GetString("ARCHIVE_REGION"),
				UseSSL:    viper.GetBool("ARCHIVE_USE_SSL"),
				Prefix:    viper.GetString("ARCHIVE_PREFIX"),
			},
		}
	})

	return instance
}
