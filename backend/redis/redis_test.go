package redis

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"humantask/backend"
	"humantask/backend/test"
)

const (
	address  = "localhost:6379"
	user     = ""
	password = "RedisPassw0rd"
)

func Test_RedisBackend(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	client := getClient()

	test.BackendTest(t, func() backend.Backend {
		// Unique prefix per setup keeps test cases isolated.
		b, err := NewRedisBackend(client, WithKeyPrefix(uuid.NewString()+":"))
		if err != nil {
			panic(err)
		}

		return b
	}, nil)
}

func getClient() redis.UniversalClient {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{address},
		Username: user,
		Password: password,
		DB:       0,
	})

	if err := client.FlushDB(context.Background()).Err(); err != nil {
		panic(err)
	}

	return client
}
