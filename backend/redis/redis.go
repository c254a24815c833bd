package redis

import (
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"

	"humantask/backend"
	"humantask/backend/converter"
	"humantask/backend/metrics"
	"humantask/internal/metrickeys"
)

type RedisOptions struct {
	*backend.Options

	// KeyPrefix is prepended to every key the backend touches. Allows
	// multiple deployments to share a single redis instance.
	KeyPrefix string
}

type RedisBackendOption func(*RedisOptions)

func WithKeyPrefix(prefix string) RedisBackendOption {
	return func(o *RedisOptions) {
		o.KeyPrefix = prefix
	}
}

func WithBackendOptions(opts ...backend.BackendOption) RedisBackendOption {
	return func(o *RedisOptions) {
		for _, opt := range opts {
			opt(o.Options)
		}
	}
}

var _ backend.Backend = (*redisBackend)(nil)

func NewRedisBackend(client redis.UniversalClient, opts ...RedisBackendOption) (*redisBackend, error) {
	options := &RedisOptions{
		Options: backend.ApplyOptions(),
	}

	for _, opt := range opts {
		opt(options)
	}

	return &redisBackend{
		rdb:     client,
		options: options,
	}, nil
}

type redisBackend struct {
	rdb     redis.UniversalClient
	options *RedisOptions
}

func (rb *redisBackend) Tracer() trace.Tracer {
	return rb.options.TracerProvider.Tracer(backend.TracerName)
}

func (rb *redisBackend) Metrics() metrics.Client {
	return rb.options.Metrics.WithTags(metrics.Tags{metrickeys.Backend: "redis"})
}

func (rb *redisBackend) Converter() converter.Converter {
	return rb.options.Converter
}

func (rb *redisBackend) Options() *backend.Options {
	return rb.options.Options
}

func (rb *redisBackend) Close() error {
	return rb.rdb.Close()
}
