// Package journal keeps an in-memory record of every line spoken and every
// summary produced during one conversation, including lines the transcript
// has since evicted. Nothing outlives the process.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ChamsBouzaiene/couch/internal/conversation"
	"github.com/ChamsBouzaiene/couch/internal/session"
)

// Record is one journaled line of dialogue.
type Record struct {
	Seq     int64
	Turn    int
	Speaker conversation.Speaker
	Text    string
	At      time.Time
	Evicted bool // no longer in the live transcript
}

// Journal is a session.Hook backed by an in-memory SQLite database.
type Journal struct {
	session.NopHook

	db        *sql.DB
	sessionID string
	logger    *slog.Logger
}

// Open creates an empty journal with a fresh session id.
func Open(ctx context.Context, logger *slog.Logger) (*Journal, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// Every connection to ":memory:" is its own database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping journal: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	j := &Journal{db: db, sessionID: uuid.NewString(), logger: logger}
	if err := j.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	return j, nil
}

func (j *Journal) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE entries (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		turn       INTEGER NOT NULL,
		speaker    INTEGER NOT NULL,
		text       TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		evicted    INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE summaries (
		session_id TEXT NOT NULL,
		turn       INTEGER NOT NULL,
		summary    TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (session_id, turn)
	);
	`
	_, err := j.db.ExecContext(ctx, schema)
	return err
}

// SessionID identifies this conversation in logs and rows.
func (j *Journal) SessionID() string { return j.sessionID }

// Close releases the database; the journal's contents are gone afterwards.
func (j *Journal) Close() error {
	return j.db.Close()
}

// RecordTurn stores one user/assistant exchange.
func (j *Journal) RecordTurn(ctx context.Context, turn int, entries ...conversation.Entry) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UnixNano()
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entries (session_id, turn, speaker, text, created_at) VALUES (?, ?, ?, ?, ?)`,
			j.sessionID, turn, int(e.Speaker), e.Text, now,
		); err != nil {
			return fmt.Errorf("failed to record entry: %w", err)
		}
	}
	return tx.Commit()
}

// MarkEvicted flags the n oldest live entries as evicted from the transcript.
func (j *Journal) MarkEvicted(ctx context.Context, n int) error {
	_, err := j.db.ExecContext(ctx, `
		UPDATE entries SET evicted = 1
		WHERE seq IN (
			SELECT seq FROM entries
			WHERE session_id = ? AND evicted = 0
			ORDER BY seq LIMIT ?
		)`, j.sessionID, n)
	if err != nil {
		return fmt.Errorf("failed to mark evicted entries: %w", err)
	}
	return nil
}

// RecordSummary stores the summary produced at the end of turn.
func (j *Journal) RecordSummary(ctx context.Context, turn int, summary string) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO summaries (session_id, turn, summary, created_at) VALUES (?, ?, ?, ?)`,
		j.sessionID, turn, summary, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record summary: %w", err)
	}
	return nil
}

// Entries returns every journaled line in the order it was spoken.
func (j *Journal) Entries(ctx context.Context) ([]Record, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, turn, speaker, text, created_at, evicted
		FROM entries WHERE session_id = ? ORDER BY seq`, j.sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r       Record
			speaker int
			at      int64
			evicted int
		)
		if err := rows.Scan(&r.Seq, &r.Turn, &speaker, &r.Text, &at, &evicted); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		r.Speaker = conversation.Speaker(speaker)
		r.At = time.Unix(0, at)
		r.Evicted = evicted != 0
		records = append(records, r)
	}
	return records, rows.Err()
}

// Turns returns the number of journaled exchanges.
func (j *Journal) Turns(ctx context.Context) (int, error) {
	var n int
	err := j.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(turn), 0) FROM entries WHERE session_id = ?`, j.sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count turns: %w", err)
	}
	return n, nil
}

// LatestSummary returns the most recent summary, or "" if none was recorded.
func (j *Journal) LatestSummary(ctx context.Context) (string, error) {
	var s string
	err := j.db.QueryRowContext(ctx,
		`SELECT summary FROM summaries WHERE session_id = ? ORDER BY turn DESC LIMIT 1`, j.sessionID).Scan(&s)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read summary: %w", err)
	}
	return s, nil
}

// Hook events. Journal failures are logged and never interrupt the
// conversation.

func (j *Journal) OnTurnRecorded(ctx context.Context, st *conversation.State, user, assistant conversation.Entry) {
	if err := j.RecordTurn(ctx, st.Turn, user, assistant); err != nil {
		j.logger.WarnContext(ctx, "journal write failed", "session", j.sessionID, "error", err)
	}
}

func (j *Journal) OnTrimmed(ctx context.Context, _ *conversation.State, evicted []conversation.Entry) {
	if err := j.MarkEvicted(ctx, len(evicted)); err != nil {
		j.logger.WarnContext(ctx, "journal write failed", "session", j.sessionID, "error", err)
	}
}

func (j *Journal) OnSummarized(ctx context.Context, st *conversation.State, _ string) {
	if err := j.RecordSummary(ctx, st.Turn, st.Summary); err != nil {
		j.logger.WarnContext(ctx, "journal write failed", "session", j.sessionID, "error", err)
	}
}
