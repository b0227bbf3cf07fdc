package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"fleetops-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	client *redis.Client
	config config.RedisConfig
}

type HealthStatus struct {
	IsConnected    bool          `json:"isConnected"`
	LastPing       time.Time     `json:"lastPing"`
	ResponseTime   time.Duration `json:"responseTime"`
	ConnectionInfo string        `json:"connectionInfo"`
	Error          string        `json:"error,omitempty"`
}

// NewClient creates a new Redis client with connection pooling
func NewClient(cfg config.RedisConfig) *Client {
	var opt *redis.Options

	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			log.Printf("Failed to parse Redis URL: %v, falling back to host:port", err)
		} else {
			opt = parsed
		}
	}
	if opt == nil {
		opt = &redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	opt.PoolSize = cfg.PoolSize
	opt.MinIdleConns = cfg.MinIdleConns
	opt.DialTimeout = cfg.DialTimeout
	opt.ReadTimeout = cfg.ReadTimeout
	opt.WriteTimeout = cfg.WriteTimeout

	return &Client{
		client: redis.NewClient(opt),
		config: cfg,
	}
}

// GetClient returns the underlying go-redis client.
func (c *Client) GetClient() *redis.Client {
	return c.client
}

// HealthCheck pings the server and reports connection health.
func (c *Client) HealthCheck() HealthStatus {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	status := HealthStatus{
		LastPing:       start,
		ConnectionInfo: c.client.Options().Addr,
	}

	if err := c.client.Ping(ctx).Err(); err != nil {
		status.Error = err.Error()
		return status
	}

	status.IsConnected = true
	status.ResponseTime = time.Since(start)
	return status
}

// Close shuts down the client and its connection pool.
func (c *Client) Close() error {
	return c.client.Close()
}
