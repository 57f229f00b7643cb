// Package redis wraps the Redis client used for case storage and for
// publishing call decisions.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const apiTimeout = 3 * time.Second

type Redis struct {
	Client          *redis.Client
	Logger          *zap.SugaredLogger
	DecisionChannel string
}

func New(address, password, decisionChannel string, logger *zap.SugaredLogger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	_, err := client.Ping(ctx).Result()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Redis{
		Client:          client,
		Logger:          logger,
		DecisionChannel: decisionChannel,
	}, nil
}

// Produce publishes data as JSON on the decision channel.
func (r *Redis) Produce(ctx context.Context, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("redis: encode: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, apiTimeout)
	defer cancel()

	err = r.Client.Publish(ctx, r.DecisionChannel, jsonData).Err()
	if err != nil {
		return fmt.Errorf("redis: publish: %w", err)
	}

	r.Logger.Infow("redis: Produce", "channel", r.DecisionChannel, "data", data)

	return nil
}

func (r *Redis) Close() error {
	return r.Client.Close()
}
