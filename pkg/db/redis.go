package db

import (
	"context"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/gurinder1988/footyfeed/pkg/model"
)

// Redis keeps values in a Redis server. Useful when several instances share one snapshot.
type Redis struct {
	client *redis.Client
}

var _ Storage = (*Redis)(nil)

func NewRedis(redisURL string) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse redis url")
	}

	log.Infof("connecting to redis %s", opts.Addr)

	client := redis.NewClient(opts)

	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = 200 * time.Millisecond
	retry.MaxInterval = 2 * time.Second
	retry.MaxElapsedTime = 10 * time.Second

	if err := backoff.RetryNotify(func() error {
		return client.Ping().Err()
	}, retry, func(err error, next time.Duration) {
		log.WithError(err).Warnf("redis is not reachable, retrying in %s", next)
	}); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "failed to ping redis")
	}

	if err := client.SetNX(versionKey, CurrentVersion, 0).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "failed to write database version")
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Close() error {
	log.Debug("closing redis client")
	return r.client.Close()
}

func (r *Redis) Version() (int, error) {
	val, err := r.client.Get(versionKey).Result()
	if err == redis.Nil {
		return -1, model.ErrNotFound
	} else if err != nil {
		return -1, err
	}

	return strconv.Atoi(val)
}

func (r *Redis) Get(_ context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(fullKey(key)).Bytes()
	if err == redis.Nil {
		return nil, model.ErrNotFound
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to get key %q", key)
	}

	return data, nil
}

func (r *Redis) Set(_ context.Context, key string, value []byte) error {
	return r.client.Set(fullKey(key), value, 0).Err()
}

func (r *Redis) Delete(_ context.Context, key string) error {
	return r.client.Del(fullKey(key)).Err()
}
