package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// sequenceCounter hands out one increasing sequence shared by every event
// table, so attempts, completions and LLM requests can be ordered against
// each other. The mutex serializes within the process; the RETURNING clause
// makes the increment atomic at the database level.
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

// eventRepo implements EventRepo with raw SQL and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO attempt_events (id, sequence, timestamp, challenge_id, attempt, passed, unverified, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), seqNum, time.Now().UnixMilli(),
		data.ChallengeID, data.Attempt, data.Passed, data.Unverified, data.Message)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendCompletion(ctx context.Context, data CompletionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO completion_events (id, sequence, timestamp, challenge_id, score, hints_used, attempts, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), seqNum, time.Now().UnixMilli(),
		data.ChallengeID, data.Score, data.HintsUsed, data.Attempts, data.Elapsed.Milliseconds())
	if err != nil {
		return fmt.Errorf("save completion event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error) {
	where, args := opts.filter()
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sequence, timestamp, challenge_id, attempt, passed, unverified, message
		 FROM attempt_events`+where+` ORDER BY sequence DESC`+opts.limit(), args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptEvent
	for rows.Next() {
		var e AttemptEvent
		var ts int64
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.ChallengeID, &e.Attempt, &e.Passed, &e.Unverified, &e.Message); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) QueryCompletions(ctx context.Context, opts QueryOpts) ([]CompletionEvent, error) {
	where, args := opts.filter()
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sequence, timestamp, challenge_id, score, hints_used, attempts, elapsed_ms
		 FROM completion_events`+where+` ORDER BY sequence DESC`+opts.limit(), args...)
	if err != nil {
		return nil, fmt.Errorf("query completions: %w", err)
	}
	defer rows.Close()

	var out []CompletionEvent
	for rows.Next() {
		var e CompletionEvent
		var ts, elapsedMs int64
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.ChallengeID, &e.Score, &e.HintsUsed, &e.Attempts, &elapsedMs); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		e.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		out = append(out, e)
	}
	return out, rows.Err()
}

// filter builds a WHERE clause for the challenge and time filters.
func (o QueryOpts) filter() (string, []any) {
	var conds []string
	var args []any
	if o.ChallengeID != "" {
		conds = append(conds, "challenge_id = ?")
		args = append(args, o.ChallengeID)
	}
	if !o.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, o.From.UnixMilli())
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (o QueryOpts) limit() string {
	if o.Limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", o.Limit)
}
