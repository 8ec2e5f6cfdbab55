package pgrepo

import (
	"context"
	"time"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/repository/repoargs"
	"github.com/fsdevblog/learnmarket/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const outboxColumns = `id, created_at, event_type, payload, attempts, locked_until, sent_at`

type OutboxRepository struct {
	conn uow.DBTX
}

func NewOutboxRepository(conn uow.DBTX) *OutboxRepository {
	return &OutboxRepository{conn: conn}
}

func (o *OutboxRepository) Create(ctx context.Context, args repoargs.CreateOutboxEvent) (*domain.OutboxEvent, error) {
	row := o.conn.QueryRow(ctx, `INSERT INTO outbox_events (event_type, payload)
VALUES ($1, $2)
RETURNING `+outboxColumns, string(args.EventType), args.Payload)

	event, err := scanOutboxEvent(row)
	if err != nil {
		return nil, convertErr(err, "creating outbox event `%s`", args.EventType)
	}
	return event, nil
}

// ClaimPending leases up to limit unsent events with less than maxAttempts failed deliveries, oldest
// first. Leased events are hidden from other callers until the lease expires or a failed delivery is
// recorded with IncrementAttempts. Concurrent relays do not claim the same row while its lease holds.
func (o *OutboxRepository) ClaimPending(
	ctx context.Context,
	limit, maxAttempts int32,
	lease time.Duration,
) ([]domain.OutboxEvent, error) {
	rows, err := o.conn.Query(ctx, `WITH claimed AS (
    UPDATE outbox_events
    SET locked_until = now() + make_interval(secs => $3)
    WHERE id IN (SELECT id
                 FROM outbox_events
                 WHERE sent_at IS NULL
                   AND attempts < $2
                   AND (locked_until IS NULL OR locked_until <= now())
                 ORDER BY created_at, id
                 LIMIT $1 FOR UPDATE SKIP LOCKED)
    RETURNING `+outboxColumns+`
)
SELECT `+outboxColumns+`
FROM claimed
ORDER BY created_at, id`, limit, maxAttempts, lease.Seconds())
	if err != nil {
		return nil, convertErr(err, "claiming pending outbox events")
	}
	events, collectErr := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OutboxEvent, error) {
		event, scanErr := scanOutboxEvent(row)
		if scanErr != nil {
			return domain.OutboxEvent{}, scanErr
		}
		return *event, nil
	})
	if collectErr != nil {
		return nil, convertErr(collectErr, "collecting claimed outbox events")
	}
	return events, nil
}

func (o *OutboxRepository) MarkSent(ctx context.Context, ids []int64) error {
	if _, err := o.conn.Exec(ctx, `UPDATE outbox_events SET sent_at = now() WHERE id = ANY($1)`, ids); err != nil {
		return convertErr(err, "marking outbox events `%v` as sent", ids)
	}
	return nil
}

func (o *OutboxRepository) IncrementAttempts(ctx context.Context, ids []int64) error {
	if _, err := o.conn.Exec(ctx, `UPDATE outbox_events
SET attempts     = attempts + 1,
    locked_until = NULL
WHERE id = ANY($1)`, ids); err != nil {
		return convertErr(err, "incrementing attempts for outbox events `%v`", ids)
	}
	return nil
}

func scanOutboxEvent(row pgx.Row) (*domain.OutboxEvent, error) {
	var event domain.OutboxEvent
	var eventType string
	if err := row.Scan(
		&event.ID,
		&event.CreatedAt,
		&eventType,
		&event.Payload,
		&event.Attempts,
		&event.LockedUntil,
		&event.SentAt,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	event.EventType = domain.EventType(eventType)
	return &event, nil
}
