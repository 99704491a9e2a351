package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out the global monotonic sequence stamped on every
// auth event. It lives in its own table so ordering survives DeleteAll.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

var authEventColumns = []string{colID, colSequence, colTimestamp, colKind, colUserID, colEmail}

// eventRepo implements EventRepo.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendAuthEvent(ctx context.Context, data AuthEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	var userID any
	if data.UserID != 0 {
		userID = data.UserID
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(authEventsTable).
		Columns(colSequence, colTimestamp, colKind, colUserID, colEmail).
		Values(seq, time.Now().UTC(), string(data.Kind), userID, data.Email).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append auth event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAuthEvents(ctx context.Context, opts QueryOpts) ([]AuthEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(authEventColumns...).
		From(entsql.Table(authEventsTable)).
		OrderBy(entsql.Desc(colSequence))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT(colSequence, opts.After))
	}
	if opts.Kind != "" {
		preds = append(preds, entsql.EQ(colKind, string(opts.Kind)))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query auth events: %w", err)
	}
	defer rows.Close()

	var events []AuthEvent
	for rows.Next() {
		var (
			e      AuthEvent
			kind   string
			userID sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &kind, &userID, &e.Email); err != nil {
			return nil, fmt.Errorf("scan auth event: %w", err)
		}
		e.Kind = AuthEventKind(kind)
		if userID.Valid {
			e.UserID = int(userID.Int64)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) DeleteAll(ctx context.Context) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).Delete(authEventsTable).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete auth events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}
