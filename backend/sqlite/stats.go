package sqlite

import (
	"context"
	"fmt"

	"humantask/backend"
	"humantask/core"
)

func (sb *sqliteBackend) GetStats(ctx context.Context) (*backend.Stats, error) {
	s := &backend.Stats{
		TasksByStatus: map[string]int64{},
	}

	rows, err := sb.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM `instances` GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("counting task instances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status int
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scanning stats row: %w", err)
		}

		ts := core.TaskStatus(status)
		s.TasksByStatus[ts.String()] = count

		if !ts.Final() {
			s.ActiveTasks += count
		}
	}

	return s, rows.Err()
}
