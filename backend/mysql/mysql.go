package mysql

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.opentelemetry.io/otel/trace"

	"humantask/backend"
	"humantask/backend/converter"
	"humantask/backend/history"
	"humantask/backend/metrics"
	"humantask/core"
	"humantask/internal/metrickeys"
)

//go:embed db/migrations/*.sql
var migrationsFS embed.FS

func NewMysqlBackend(host string, port int, user, password, database string, opts ...option) *mysqlBackend {
	options := &options{
		Options:         backend.ApplyOptions(),
		ApplyMigrations: true,
	}

	for _, opt := range opts {
		opt(options)
	}

	// clientFoundRows makes RowsAffected count matched rows, so updates
	// that leave the status unchanged still confirm the instance exists.
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&interpolateParams=true&clientFoundRows=true", user, password, host, port, database)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		panic(err)
	}

	b := &mysqlBackend{
		dsn:     dsn,
		db:      db,
		options: options,
	}

	if options.ApplyMigrations {
		if err := b.Migrate(); err != nil {
			panic(err)
		}
	}

	return b
}

type mysqlBackend struct {
	dsn     string
	db      *sql.DB
	options *options
}

var _ backend.Backend = (*mysqlBackend)(nil)

// Migrate applies any pending database migrations.
func (mb *mysqlBackend) Migrate() error {
	dbi, err := migratemysql.WithInstance(mb.db, &migratemysql.Config{})
	if err != nil {
		return fmt.Errorf("creating migration instance: %w", err)
	}

	migrations, err := iofs.New(migrationsFS, "db/migrations")
	if err != nil {
		return fmt.Errorf("creating migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", migrations, "mysql", dbi)
	if err != nil {
		return fmt.Errorf("creating migration: %w", err)
	}

	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("running migrations: %w", err)
		}
	}

	return nil
}

func (mb *mysqlBackend) Tracer() trace.Tracer {
	return mb.options.TracerProvider.Tracer(backend.TracerName)
}

func (mb *mysqlBackend) Metrics() metrics.Client {
	return mb.options.Metrics.WithTags(metrics.Tags{metrickeys.Backend: "mysql"})
}

func (mb *mysqlBackend) Converter() converter.Converter {
	return mb.options.Converter
}

func (mb *mysqlBackend) Options() *backend.Options {
	return mb.options.Options
}

func (mb *mysqlBackend) Close() error {
	return mb.db.Close()
}

func (mb *mysqlBackend) CreateTaskInstance(ctx context.Context, instance *core.TaskInstance, events []*history.Event) error {
	tx, err := mb.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(
		ctx,
		"INSERT IGNORE INTO `instances` (id, definition_id, task_key, status, created_at) VALUES (?, ?, ?, ?, ?)",
		instance.InstanceID(),
		instance.DefinitionID,
		instance.Key,
		int(core.TaskStatusReady),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting task instance: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		return backend.ErrTaskAlreadyExists
	}

	if err := insertEvents(ctx, tx, instance.InstanceID(), 0, events); err != nil {
		return fmt.Errorf("inserting creation events: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("creating task instance: %w", err)
	}

	return nil
}

func (mb *mysqlBackend) AppendEvents(ctx context.Context, instance *core.TaskInstance, status core.TaskStatus, events []*history.Event) error {
	tx, err := mb.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var lastSequenceID int64
	row := tx.QueryRowContext(
		ctx, "SELECT COALESCE(MAX(sequence_id), 0) FROM `history` WHERE instance_id = ? FOR UPDATE", instance.InstanceID())
	if err := row.Scan(&lastSequenceID); err != nil {
		return fmt.Errorf("reading last sequence id: %w", err)
	}

	var completedAt *time.Time
	if status.Final() {
		now := time.Now().UTC()
		completedAt = &now
	}

	res, err := tx.ExecContext(
		ctx,
		"UPDATE `instances` SET status = ?, completed_at = COALESCE(completed_at, ?) WHERE id = ?",
		int(status),
		completedAt,
		instance.InstanceID(),
	)
	if err != nil {
		return fmt.Errorf("updating task instance: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		return backend.ErrTaskNotFound
	}

	if err := insertEvents(ctx, tx, instance.InstanceID(), lastSequenceID, events); err != nil {
		return fmt.Errorf("inserting events: %w", err)
	}

	return tx.Commit()
}

func (mb *mysqlBackend) GetTaskHistory(ctx context.Context, instance *core.TaskInstance, lastSequenceID *int64) ([]*history.Event, error) {
	row := mb.db.QueryRowContext(ctx, "SELECT 1 FROM `instances` WHERE id = ?", instance.InstanceID())
	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, backend.ErrTaskNotFound
		}

		return nil, err
	}

	query := "SELECT id, sequence_id, event_type, timestamp, attributes FROM `history` WHERE instance_id = ? ORDER BY sequence_id"
	args := []any{instance.InstanceID()}
	if lastSequenceID != nil {
		query = "SELECT id, sequence_id, event_type, timestamp, attributes FROM `history` WHERE instance_id = ? AND sequence_id > ? ORDER BY sequence_id"
		args = append(args, *lastSequenceID)
	}

	rows, err := mb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("getting task history: %w", err)
	}
	defer rows.Close()

	var events []*history.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}

		events = append(events, event)
	}

	return events, rows.Err()
}

func (mb *mysqlBackend) RemoveTaskInstance(ctx context.Context, instance *core.TaskInstance) error {
	tx, err := mb.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, "SELECT completed_at FROM `instances` WHERE id = ? LIMIT 1", instance.InstanceID())
	var completedAt *time.Time
	if err := row.Scan(&completedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return backend.ErrTaskNotFound
		}

		return err
	}

	if completedAt == nil {
		return backend.ErrTaskNotFinished
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM `instances` WHERE id = ?", instance.InstanceID()); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM `history` WHERE instance_id = ?", instance.InstanceID()); err != nil {
		return err
	}

	return tx.Commit()
}
