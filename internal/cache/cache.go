package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/outlaw-hq/admin-api/internal/config"
)

func NewClient(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	return client
}

// Cache wraps the redis usages of the admin API: token revocation,
// login rate limiting and the realtime dashboard snapshot.
type Cache struct {
	client *redis.Client
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func loginAttemptsKey(email string) string {
	return email + "_admin_login_attempts"
}

func revokedTokenKey(jti string) string {
	return jti + "_revoked_token"
}

const dashboardSnapshotKey = "admin_realtime_dashboard"

// --------- Token revocation ---------

func (c *Cache) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// token already expired, nothing to deny
		return nil
	}
	return c.client.Set(ctx, revokedTokenKey(jti), "1", ttl).Err()
}

func (c *Cache) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := c.client.Exists(ctx, revokedTokenKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// --------- Login rate limiting ---------

func (c *Cache) LoginAttempts(ctx context.Context, email string) (int, error) {
	n, err := c.client.Get(ctx, loginAttemptsKey(email)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (c *Cache) BumpLoginAttempts(ctx context.Context, email string, window time.Duration) error {
	key := loginAttemptsKey(email)
	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 1 {
		return c.client.Expire(ctx, key, window).Err()
	}
	return nil
}

func (c *Cache) ClearLoginAttempts(ctx context.Context, email string) error {
	return c.client.Del(ctx, loginAttemptsKey(email)).Err()
}

// --------- Realtime dashboard snapshot ---------

func (c *Cache) DashboardSnapshot(ctx context.Context) ([]byte, bool) {
	b, err := c.client.Get(ctx, dashboardSnapshotKey).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *Cache) SetDashboardSnapshot(ctx context.Context, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, dashboardSnapshotKey, payload, ttl).Err()
}
