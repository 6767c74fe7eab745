// Package config loads application configuration from environment
// variables, with a .env file as a development convenience.
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// CloudinaryConfig holds asset-host credentials.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// EmailConfig holds mail provider settings.
type EmailConfig struct {
	Provider           string
	FromAddress        string
	FromName           string
	SESRegion          string
	SESAccessKeyID     string
	SESSecretAccessKey string
}

// Config holds all configuration for the application.
type Config struct {
	Environment    string
	Port           string
	BaseURL        string
	AllowedOrigins []string
	MongoURI       string
	MongoDB        string
	Cloudinary     CloudinaryConfig
	Email          EmailConfig
}

// Load reads configuration from the environment. Outside production it
// first tries a .env file; a missing one is fine and only logged.
//
// MongoURI deliberately has no default: its absence surfaces as a
// configuration error on the first operation that needs the database, so a
// misconfigured process still boots and reports the problem per request.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		Port:        os.Getenv("PORT"),
		BaseURL:     normalizeBaseURL(os.Getenv("BASE_URL")),
		MongoURI:    os.Getenv("MONGODB_URI"),
		MongoDB:     os.Getenv("MONGODB_DB"),
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		Email: EmailConfig{
			Provider:           os.Getenv("EMAIL_PROVIDER"),
			FromAddress:        os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:           os.Getenv("EMAIL_FROM_NAME"),
			SESRegion:          os.Getenv("AWS_SES_REGION"),
			SESAccessKeyID:     os.Getenv("AWS_SES_ACCESS_KEY_ID"),
			SESSecretAccessKey: os.Getenv("AWS_SES_SECRET_ACCESS_KEY"),
		},
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "devevents"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	return cfg, nil
}

// IsDevelopment reports whether error detail strings may be exposed in API
// responses.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// normalizeBaseURL ensures the base URL carries a protocol; deployment
// platforms often provide a bare hostname.
func normalizeBaseURL(url string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "https://" + url
}
