package session

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenKey is the fixed key the bearer token lives under. One token per
// deployment; the client is single-user.
const tokenKey = "jobcal:auth_token"

const redisTimeout = 3 * time.Second

// RedisStore persists the token in Redis so a restart does not force the user
// back through the hosted login page. Read/write errors degrade to "no token"
// rather than failing the request that triggered them.
type RedisStore struct {
	client *redis.Client
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	URL      string // Upstash Redis URL (redis://...) or (rediss://... for TLS)
	Password string // Upstash Redis password
}

// NewRedisStore connects and pings the server; a dead Redis is reported at
// startup rather than on first use.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("session: redis URL not configured")
	}

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("session: invalid redis URL: %w", err)
	}

	// Determine TLS requirement from scheme
	useTLS := parsedURL.Scheme == "rediss"

	addr := parsedURL.Host
	if parsedURL.Port() == "" {
		addr = parsedURL.Host + ":6379"
	}

	password := cfg.Password
	if password == "" && parsedURL.User != nil {
		password, _ = parsedURL.User.Password()
	}

	opts := &redis.Options{
		Addr:     addr,
		Password: password,
	}
	if useTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("session: redis ping failed: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Token() (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	token, err := s.client.Get(ctx, tokenKey).Result()
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

func (s *RedisStore) SetToken(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	// No expiry: staleness is detected by the backend answering 401, which
	// evicts the token through Clear.
	_ = s.client.Set(ctx, tokenKey, token, 0).Err()
}

func (s *RedisStore) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	_ = s.client.Del(ctx, tokenKey).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
