package redis

import (
	"context"
	"fmt"
	"strconv"

	"humantask/backend"
	"humantask/core"
)

func (rb *redisBackend) GetStats(ctx context.Context) (*backend.Stats, error) {
	s := &backend.Stats{
		TasksByStatus: map[string]int64{},
	}

	ids, err := rb.rdb.ZRange(ctx, instancesByCreation(rb.options.KeyPrefix), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing task instances: %w", err)
	}

	for _, id := range ids {
		raw, err := rb.rdb.HGet(ctx, instanceKeyFromID(rb.options.KeyPrefix, id), "status").Result()
		if err != nil {
			return nil, fmt.Errorf("reading task status: %w", err)
		}

		status, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing task status: %w", err)
		}

		ts := core.TaskStatus(status)
		s.TasksByStatus[ts.String()]++

		if !ts.Final() {
			s.ActiveTasks++
		}
	}

	return s, nil
}
