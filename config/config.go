package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	MaxUploadMB       int    `mapstructure:"MAX_UPLOAD_MB"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Gemini schedule extraction.
	GeminiAPIKey      string  `mapstructure:"GEMINI_API_KEY"`
	GeminiModel       string  `mapstructure:"GEMINI_MODEL"`
	GeminiTemperature float32 `mapstructure:"GEMINI_TEMPERATURE"`
	DefaultYear       int     `mapstructure:"DEFAULT_YEAR"`

	// Cloudinary image archive. Empty credentials disable archiving.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Free slot search.
	WorkStartTime          string        `mapstructure:"WORK_START_TIME"`
	WorkEndTime            string        `mapstructure:"WORK_END_TIME"`
	DefaultDurationMinutes int           `mapstructure:"DEFAULT_DURATION_MINUTES"`
	FreeSlotCacheTTL       time.Duration `mapstructure:"FREE_SLOT_CACHE_TTL"`

	// Events older than this many months are purged daily. Zero keeps everything.
	RetentionMonths int `mapstructure:"RETENTION_MONTHS"`

	// Prometheus metrics at /metrics.
	MetricsEnabled bool `mapstructure:"METRICS_ENABLED"`

	// Base URL the CLI talks to.
	APIBaseURL string `mapstructure:"API_BASE_URL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("MAX_UPLOAD_MB", 20)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "groupcal")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("GEMINI_TEMPERATURE", 0.8)
	viper.SetDefault("DEFAULT_YEAR", time.Now().Year())
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("WORK_START_TIME", "07:00")
	viper.SetDefault("WORK_END_TIME", "22:00")
	viper.SetDefault("DEFAULT_DURATION_MINUTES", 60)
	viper.SetDefault("FREE_SLOT_CACHE_TTL", "10m")
	viper.SetDefault("RETENTION_MONTHS", 0)
	viper.SetDefault("METRICS_ENABLED", true)
	viper.SetDefault("API_BASE_URL", "http://localhost:8080")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
