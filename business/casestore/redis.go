package casestore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/superfeelapi/goEagiFraud/business/fraudcase"
)

const defaultKeyPrefix = "fraud:case:"

// RedisStore keeps each case as one JSON value. A SET replaces the whole
// record, so readers never observe a partial update.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisStore{
		client: client,
		prefix: keyPrefix,
	}
}

func (r *RedisStore) Find(ctx context.Context, customerName string) (fraudcase.FraudCase, error) {
	b, err := r.client.Get(ctx, r.prefix+fraudcase.Key(customerName)).Bytes()
	if errors.Is(err, redis.Nil) {
		return fraudcase.FraudCase{}, fraudcase.ErrNotFound
	}
	if err != nil {
		return fraudcase.FraudCase{}, unavailable("find case", err)
	}

	var c fraudcase.FraudCase
	if err := json.Unmarshal(b, &c); err != nil {
		return fraudcase.FraudCase{}, unavailable("decode case", err)
	}

	return c, nil
}

func (r *RedisStore) Save(ctx context.Context, c fraudcase.FraudCase) error {
	b, err := json.Marshal(c)
	if err != nil {
		return unavailable("encode case", err)
	}

	if err := r.client.Set(ctx, r.prefix+c.Key(), b, 0).Err(); err != nil {
		return unavailable("save case", err)
	}

	return nil
}
