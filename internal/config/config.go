package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/devpaiola/cadastroLead/internal/models"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Prizes    []models.Prize
	Voucher   VoucherConfig
	RateLimit RateLimitConfig
	PromoAPI  PromoAPIConfig
	Widget    WidgetConfig
	LogLevel  string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// VoucherConfig holds the prize voucher signing configuration
type VoucherConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

// RateLimitConfig bounds requests per client IP on the write routes
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// PromoAPIConfig tells the widget runner where the API lives
type PromoAPIConfig struct {
	BaseURL string
	MockAPI bool
}

// WidgetConfig holds the widget timings
type WidgetConfig struct {
	SpinDuration     time.Duration
	RevealDelay      time.Duration
	SimulatedLatency time.Duration
	SuccessRate      float64
	Threshold        int
}

// Load reads .env files, then config.yaml from path (if any), then the
// environment. Environment keys use underscores: MONGODB_URI, SERVER_PORT.
func Load(path string) (*Config, error) {
	loadDotEnv(".env")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if len(cfg.Prizes) == 0 {
		cfg.Prizes = models.DefaultPrizes()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("Server.Port is required")
	}
	var total float64
	for _, p := range c.Prizes {
		if strings.TrimSpace(p.Label) == "" {
			return errors.New("every prize needs a label")
		}
		if p.Weight < 0 {
			return fmt.Errorf("prize %q has a negative weight", p.Label)
		}
		total += p.Weight
	}
	if len(c.Prizes) > 0 && total <= 0 {
		return errors.New("prize weights must not all be zero")
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return errors.New("rate limit values must not be negative")
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "5000")
	v.SetDefault("Server.AllowedHosts", []string{"*"})
	v.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	v.SetDefault("MongoDB.Database", "cadastro_leads")
	v.SetDefault("Voucher.Secret", "")
	v.SetDefault("Voucher.ExpiresIn", 30*24*time.Hour)
	v.SetDefault("RateLimit.RPS", 5.0)
	v.SetDefault("RateLimit.Burst", 10)
	v.SetDefault("PromoAPI.BaseURL", "http://localhost:5000/api")
	v.SetDefault("PromoAPI.MockAPI", false)
	v.SetDefault("Widget.SpinDuration", 3*time.Second)
	v.SetDefault("Widget.RevealDelay", time.Second)
	v.SetDefault("Widget.SimulatedLatency", 2*time.Second)
	v.SetDefault("Widget.SuccessRate", 0.7)
	v.SetDefault("Widget.Threshold", 5)
	v.SetDefault("LogLevel", "info")
}
