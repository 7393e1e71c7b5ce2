// Package session implements the server-side session store. Sessions are
// keyed by an opaque UUID carried in a cookie; the session payload lives in
// Redis with a fixed absolute lifetime.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"smartshop/internal/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the name of the session id cookie.
	CookieName = "session_id"
	// Lifetime is the absolute session expiry.
	Lifetime = 30 * time.Minute

	keyPrefix = "session:"
)

// ErrNotFound is returned when the session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Data is the mutable session payload. OTP fields are transient login
// state; Flashes are one-time messages consumed on the next page render.
type Data struct {
	UserID      uint      `json:"user_id,omitempty"`
	UserName    string    `json:"user_name,omitempty"`
	OTP         string    `json:"otp,omitempty"`
	OTPPhone    string    `json:"otp_phone,omitempty"`
	OTPIssuedAt time.Time `json:"otp_issued_at,omitempty"`
	LastOTPTime time.Time `json:"last_otp_time,omitempty"`
	Flashes     []string  `json:"flashes,omitempty"`
}

// LoggedIn reports whether the session carries an authenticated user.
func (d *Data) LoggedIn() bool {
	return d.UserID != 0
}

// Flash queues a one-time message.
func (d *Data) Flash(message string) {
	d.Flashes = append(d.Flashes, message)
}

// ConsumeFlashes returns and clears the queued messages.
func (d *Data) ConsumeFlashes() []string {
	flashes := d.Flashes
	d.Flashes = nil
	return flashes
}

// ClearOTP drops all OTP state from the session.
func (d *Data) ClearOTP() {
	d.OTP = ""
	d.OTPPhone = ""
	d.OTPIssuedAt = time.Time{}
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NewRedisClient builds a Redis client from config.
func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewRedisClientFromEnv builds a Redis client from environment variables.
func NewRedisClientFromEnv() *redis.Client {
	return NewRedisClient(&RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
}

// Store persists sessions in Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client, ttl: Lifetime}
}

// Create allocates a fresh session id and stores the payload with the
// absolute lifetime.
func (s *Store) Create(ctx context.Context, data *Data) (string, error) {
	id := uuid.NewString()
	if data == nil {
		data = &Data{}
	}
	blob, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+id, blob, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return id, nil
}

// Get loads the session payload for id.
func (s *Store) Get(ctx context.Context, id string) (*Data, error) {
	val, err := s.client.Get(ctx, keyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var data Data
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &data, nil
}

// Save writes the payload back without extending the absolute expiry.
// A session that expired between Get and Save is not resurrected.
func (s *Store) Save(ctx context.Context, id string, data *Data) error {
	blob, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	set, err := s.client.SetXX(ctx, keyPrefix+id, blob, redis.KeepTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	if !set {
		return ErrNotFound
	}
	return nil
}

// Delete invalidates the session unconditionally.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}

// HealthCheck pings Redis.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}
