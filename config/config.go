package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	// Backend API base URL. Every job/application call goes here.
	BackendURL string
	// Cognito hosted-UI settings. When domain, client id and redirect URI are
	// all present the login URL is built locally; otherwise we fall back to
	// the backend-proxied OAuth start path.
	CognitoDomain       string
	CognitoClientID     string
	CognitoRedirectURI  string
	CognitoIDP          string
	CognitoResponseType string
	CognitoScope        string
	// Redis/Upstash Configuration (optional token persistence)
	RedisURL      string
	RedisPassword string
	// Background refresh cadence for the application list
	RefreshIntervalMinutes int
}

var ErrMissingBackendURL = errors.New("BACKEND_API_URL is not set")

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally; ignored when the file is absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "3000"),
		// Strip trailing slash to prevent double slashes (e.g. .com//api)
		BackendURL:          strings.TrimRight(getEnv("BACKEND_API_URL", ""), "/"),
		CognitoDomain:       strings.TrimRight(getEnv("COGNITO_DOMAIN", ""), "/"),
		CognitoClientID:     getEnv("COGNITO_CLIENT_ID", ""),
		CognitoRedirectURI:  getEnv("COGNITO_REDIRECT_URI", ""),
		CognitoIDP:          getEnv("COGNITO_IDP", ""),
		CognitoResponseType: getEnv("COGNITO_RESPONSE_TYPE", "code"),
		CognitoScope:        getEnv("COGNITO_SCOPE", "openid+profile+email"),
		// Redis Configuration
		RedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		RedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Background Refresh Configuration
		RefreshIntervalMinutes: getEnvInt("REFRESH_INTERVAL_MINUTES", 5),
	}

	// Without a backend there is nothing this client can do.
	if cfg.BackendURL == "" {
		return nil, ErrMissingBackendURL
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
