package utils

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	SeedOnStart     bool
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// LoadConfig reads .env (when present) and the process environment.
// Environment variables win over the file.
func LoadConfig() (*Config, error) {
	return loadConfig(".env")
}

func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "filme-catalog")
	v.SetDefault("PORT", "3000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("SEED_ON_START", false)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			SeedOnStart:     v.GetBool("SEED_ON_START"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		RateLimit: RateLimitConfig{
			Enabled: v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:     v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:   v.GetInt("RATE_LIMIT_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	return config, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
