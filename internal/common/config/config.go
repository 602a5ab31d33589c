package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/creativestories/backend/internal/common/constants"
	commonerrors "github.com/creativestories/backend/internal/common/errors"
)

type Config struct {
	HTTPPort string

	MongoURI      string
	MongoDatabase string

	NewsletterAPIKey string
	SiteURL          string

	SMTPServer   string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	RequestTimeout  time.Duration
	DispatchTimeout time.Duration
}

// Load reads configuration from the environment. A .env file is picked up
// when present so local runs match the deployed container.
func Load() (Config, error) {
	godotenv.Load()

	mongoURI, err := mustEnv("MONGODB_URI")
	if err != nil {
		return Config{}, err
	}

	apiKey, err := mustEnv("NEWSLETTER_API_KEY")
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:         getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		MongoURI:         mongoURI,
		MongoDatabase:    getEnv("MONGODB_DATABASE", "creative_stories"),
		NewsletterAPIKey: apiKey,
		SiteURL:          getEnv("SITE_URL", "http://localhost:3000"),
		SMTPServer:       getEnv("SMTP_SERVER", ""),
		SMTPPort:         getIntEnv("SMTP_PORT", 587),
		SMTPUser:         getEnv("SMTP_USER", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:         getEnv("SMTP_FROM", getEnv("SMTP_USER", "")),
		RequestTimeout:   getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		DispatchTimeout:  getDurationEnv("DISPATCH_TIMEOUT", constants.DefaultDispatchTimeout),
	}, nil
}

// SMTPConfigured reports whether a real mail transport can be built.
func (c Config) SMTPConfigured() bool {
	return c.SMTPServer != "" && c.SMTPFrom != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", commonerrors.ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
