package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	HTTPServer HTTPServerConfig
	Database   DatabaseConfig
	Portal     PortalConfig
	QR         QRConfig
	Document   DocumentConfig
	RateLimit  RateLimitConfig
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// PortalConfig covers the client-facing surface: the public base URL used to
// build asset deep links, and the external hosted-form tiles on the landing
// page (opaque navigation targets, not integrated).
type PortalConfig struct {
	PublicBaseURL  string
	RequestFormURL string
	SupportFormURL string
	AllowedOrigins []string
}

type QRConfig struct {
	Endpoint       string
	TimeoutSeconds int
	CacheTTLMin    int
	CacheSize      int
}

type DocumentConfig struct {
	LogoPath string
}

type RateLimitConfig struct {
	SubmitPerMin int
}

// DSN builds the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./configs and ., with
// environment variables taking precedence (DB_HOST, PORT, ...).
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.HTTPServer.Port = viper.GetInt("port")
	cfg.HTTPServer.Mode = viper.GetString("gin_mode")

	cfg.Database.Host = viper.GetString("db.host")
	cfg.Database.Port = viper.GetString("db.port")
	cfg.Database.User = viper.GetString("db.user")
	cfg.Database.Password = viper.GetString("db.password")
	cfg.Database.Name = viper.GetString("db.name")
	cfg.Database.SSLMode = viper.GetString("db.sslmode")

	cfg.Portal.PublicBaseURL = viper.GetString("portal.public_base_url")
	cfg.Portal.RequestFormURL = viper.GetString("portal.request_form_url")
	cfg.Portal.SupportFormURL = viper.GetString("portal.support_form_url")
	cfg.Portal.AllowedOrigins = viper.GetStringSlice("portal.allowed_origins")

	cfg.QR.Endpoint = viper.GetString("qr.endpoint")
	cfg.QR.TimeoutSeconds = viper.GetInt("qr.timeout_seconds")
	cfg.QR.CacheTTLMin = viper.GetInt("qr.cache_ttl_min")
	cfg.QR.CacheSize = viper.GetInt("qr.cache_size")

	cfg.Document.LogoPath = viper.GetString("document.logo_path")

	cfg.RateLimit.SubmitPerMin = viper.GetInt("rate_limit.submit_per_min")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("port", 8080)
	viper.SetDefault("gin_mode", "debug")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.name", "postgres")
	viper.SetDefault("db.sslmode", "disable")

	viper.SetDefault("portal.public_base_url", "http://localhost:5173/web-portal")
	viper.SetDefault("portal.request_form_url", "")
	viper.SetDefault("portal.support_form_url", "")
	viper.SetDefault("portal.allowed_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})

	viper.SetDefault("qr.endpoint", "https://api.qrserver.com/v1/create-qr-code/")
	viper.SetDefault("qr.timeout_seconds", 10)
	viper.SetDefault("qr.cache_ttl_min", 10)
	viper.SetDefault("qr.cache_size", 256)

	viper.SetDefault("document.logo_path", "configs/logo.png")

	viper.SetDefault("rate_limit.submit_per_min", 10)
}
