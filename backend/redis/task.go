package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"humantask/backend"
	"humantask/backend/history"
	"humantask/core"
)

func (rb *redisBackend) CreateTaskInstance(ctx context.Context, instance *core.TaskInstance, events []*history.Event) error {
	now := time.Now().UTC()

	created, err := rb.rdb.HSetNX(ctx, instanceKey(rb.options.KeyPrefix, instance), "id", instance.InstanceID()).Result()
	if err != nil {
		return fmt.Errorf("creating task instance: %w", err)
	}

	if !created {
		return backend.ErrTaskAlreadyExists
	}

	p := rb.rdb.TxPipeline()

	p.HSet(ctx, instanceKey(rb.options.KeyPrefix, instance), map[string]any{
		"definition_id": instance.DefinitionID,
		"task_key":      instance.Key,
		"status":        int(core.TaskStatusReady),
		"created_at":    now.Format(time.RFC3339Nano),
	})

	p.ZAdd(ctx, instancesByCreation(rb.options.KeyPrefix), redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: instance.InstanceID(),
	})

	if err := addEventsToStreamP(ctx, p, rb.options.KeyPrefix, instance, 0, events); err != nil {
		return err
	}

	if _, err := p.Exec(ctx); err != nil {
		return fmt.Errorf("creating task instance: %w", err)
	}

	return nil
}

func (rb *redisBackend) AppendEvents(ctx context.Context, instance *core.TaskInstance, status core.TaskStatus, events []*history.Event) error {
	exists, err := rb.rdb.Exists(ctx, instanceKey(rb.options.KeyPrefix, instance)).Result()
	if err != nil {
		return err
	}

	if exists == 0 {
		return backend.ErrTaskNotFound
	}

	lastSequenceID, err := rb.lastSequenceID(ctx, instance)
	if err != nil {
		return err
	}

	p := rb.rdb.TxPipeline()

	p.HSet(ctx, instanceKey(rb.options.KeyPrefix, instance), "status", int(status))

	if status.Final() {
		p.HSetNX(ctx, instanceKey(rb.options.KeyPrefix, instance), "completed_at", time.Now().UTC().Format(time.RFC3339Nano))
	}

	if err := addEventsToStreamP(ctx, p, rb.options.KeyPrefix, instance, lastSequenceID, events); err != nil {
		return err
	}

	if _, err := p.Exec(ctx); err != nil {
		return fmt.Errorf("appending events: %w", err)
	}

	return nil
}

func (rb *redisBackend) GetTaskHistory(ctx context.Context, instance *core.TaskInstance, lastSequenceID *int64) ([]*history.Event, error) {
	exists, err := rb.rdb.Exists(ctx, instanceKey(rb.options.KeyPrefix, instance)).Result()
	if err != nil {
		return nil, err
	}

	if exists == 0 {
		return nil, backend.ErrTaskNotFound
	}

	start := "-"
	if lastSequenceID != nil {
		start = "(" + historyID(*lastSequenceID)
	}

	msgs, err := rb.rdb.XRange(ctx, historyKey(rb.options.KeyPrefix, instance), start, "+").Result()
	if err != nil {
		return nil, fmt.Errorf("reading task history: %w", err)
	}

	var events []*history.Event
	for _, msg := range msgs {
		var event *history.Event
		if err := json.Unmarshal([]byte(msg.Values["event"].(string)), &event); err != nil {
			return nil, fmt.Errorf("unmarshaling event: %w", err)
		}

		events = append(events, event)
	}

	return events, nil
}

func (rb *redisBackend) RemoveTaskInstance(ctx context.Context, instance *core.TaskInstance) error {
	completedAt, err := rb.rdb.HGet(ctx, instanceKey(rb.options.KeyPrefix, instance), "completed_at").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			exists, err := rb.rdb.Exists(ctx, instanceKey(rb.options.KeyPrefix, instance)).Result()
			if err != nil {
				return err
			}

			if exists == 0 {
				return backend.ErrTaskNotFound
			}

			return backend.ErrTaskNotFinished
		}

		return err
	}

	if completedAt == "" {
		return backend.ErrTaskNotFinished
	}

	p := rb.rdb.TxPipeline()
	p.Del(ctx, instanceKey(rb.options.KeyPrefix, instance))
	p.Del(ctx, historyKey(rb.options.KeyPrefix, instance))
	p.ZRem(ctx, instancesByCreation(rb.options.KeyPrefix), instance.InstanceID())

	if _, err := p.Exec(ctx); err != nil {
		return fmt.Errorf("removing task instance: %w", err)
	}

	return nil
}

// lastSequenceID reads the newest stream entry and recovers the sequence id
// encoded in its entry id.
func (rb *redisBackend) lastSequenceID(ctx context.Context, instance *core.TaskInstance) (int64, error) {
	msgs, err := rb.rdb.XRevRangeN(ctx, historyKey(rb.options.KeyPrefix, instance), "+", "-", 1).Result()
	if err != nil {
		return 0, fmt.Errorf("reading last event: %w", err)
	}

	if len(msgs) == 0 {
		return 0, nil
	}

	seq, _, found := strings.Cut(msgs[0].ID, "-")
	if !found {
		return 0, fmt.Errorf("malformed stream entry id: %v", msgs[0].ID)
	}

	return strconv.ParseInt(seq, 10, 64)
}

func addEventsToStreamP(ctx context.Context, p redis.Pipeliner, keyPrefix string, instance *core.TaskInstance, lastSequenceID int64, events []*history.Event) error {
	for _, event := range events {
		lastSequenceID++
		event.SequenceID = lastSequenceID

		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshaling event: %w", err)
		}

		p.XAdd(ctx, &redis.XAddArgs{
			Stream: historyKey(keyPrefix, instance),
			ID:     historyID(event.SequenceID),
			Values: map[string]any{
				"event": string(data),
			},
		})
	}

	return nil
}
