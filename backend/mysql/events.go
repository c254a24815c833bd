package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"humantask/backend/history"
)

func insertEvents(ctx context.Context, tx *sql.Tx, instanceID string, lastSequenceID int64, events []*history.Event) error {
	const batchSize = 20
	for batchStart := 0; batchStart < len(events); batchStart += batchSize {
		batchEnd := min(batchStart+batchSize, len(events))
		batchEvents := events[batchStart:batchEnd]

		query := "INSERT INTO `history` (id, instance_id, sequence_id, event_type, timestamp, attributes) VALUES (?, ?, ?, ?, ?, ?)" +
			strings.Repeat(", (?, ?, ?, ?, ?, ?)", len(batchEvents)-1)

		args := make([]any, 0, len(batchEvents)*6)

		for _, event := range batchEvents {
			a, err := history.SerializeAttributes(event.Attributes)
			if err != nil {
				return err
			}

			lastSequenceID++
			event.SequenceID = lastSequenceID

			args = append(args, event.ID, instanceID, event.SequenceID, int(event.Type), event.Timestamp, a)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*history.Event, error) {
	var attributes []byte
	var eventType int

	event := &history.Event{}

	if err := row.Scan(&event.ID, &event.SequenceID, &eventType, &event.Timestamp, &attributes); err != nil {
		return nil, fmt.Errorf("scanning event: %w", err)
	}

	event.Type = history.EventType(eventType)

	a, err := history.DeserializeAttributes(event.Type, attributes)
	if err != nil {
		return nil, fmt.Errorf("deserializing attributes: %w", err)
	}

	event.Attributes = a

	return event, nil
}
