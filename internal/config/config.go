package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Sessions SessionConfig
	Charts   ChartConfig
	AWS      AWSConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// SessionConfig holds calculator session configuration
type SessionConfig struct {
	TTL time.Duration
}

// ChartConfig holds chart rendering configuration
type ChartConfig struct {
	DPI float64
}

// AWSConfig holds AWS/S3 configuration. An empty bucket disables publishing.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string
	URLExpiry       time.Duration
}

// PublishingEnabled reports whether exports can be published to object storage
func (c AWSConfig) PublishingEnabled() bool {
	return c.S3Bucket != ""
}

// SetDefaults registers the default value of every key
func SetDefaults() {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "dev")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("SESSION_TTL", "30m")
	viper.SetDefault("CHART_DPI", 300)
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_ACCESS_KEY_ID", "")
	viper.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("EXPORT_URL_EXPIRY", "15m")
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	SetDefaults()

	// Environment variables override .env file values
	viper.AutomaticEnv()

	// Read from .env files based on environment
	env := viper.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev" // Use "dev" to match .env.dev filename
	}

	// Try to read .env file for the current environment
	viper.SetConfigName(".env." + env)
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// Read .env file (ignore error if file doesn't exist)
	if err := viper.ReadInConfig(); err == nil {
		log.Info().Str("file", viper.ConfigFileUsed()).Msg("Loaded configuration file")
	}

	var config Config
	config.Server.Port = viper.GetString("PORT")
	config.Server.Env = viper.GetString("ENVIRONMENT")
	config.Server.AllowedOrigins = splitList(viper.GetString("ALLOWED_ORIGINS"))
	config.Sessions.TTL = viper.GetDuration("SESSION_TTL")
	config.Charts.DPI = viper.GetFloat64("CHART_DPI")
	config.AWS.Region = viper.GetString("AWS_REGION")
	config.AWS.AccessKeyID = viper.GetString("AWS_ACCESS_KEY_ID")
	config.AWS.SecretAccessKey = viper.GetString("AWS_SECRET_ACCESS_KEY")
	config.AWS.S3Bucket = viper.GetString("S3_BUCKET")
	config.AWS.S3Endpoint = viper.GetString("S3_ENDPOINT")
	config.AWS.URLExpiry = viper.GetDuration("EXPORT_URL_EXPIRY")

	log.Info().
		Str("env", config.Server.Env).
		Strs("allowed_origins", config.Server.AllowedOrigins).
		Dur("session_ttl", config.Sessions.TTL).
		Float64("chart_dpi", config.Charts.DPI).
		Bool("publishing", config.AWS.PublishingEnabled()).
		Msg("Configuration loaded")

	return &config, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
