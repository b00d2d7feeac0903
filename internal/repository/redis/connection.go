package redis

import (
	"context"
	"time"

	"github.com/dom/zodiac-catalog/internal/repository"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
)

// NewClient parses redisURL, instruments the client for tracing and checks
// the connection.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := redisotel.InstrumentTracing(client,
		redisotel.WithAttributes(attribute.String("db.name", "redis")),
	); err != nil {
		client.Close()
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

func NewRepositories(client redis.UniversalClient) *repository.Repositories {
	return &repository.Repositories{
		Character: NewCharacterRepository(client),
	}
}
