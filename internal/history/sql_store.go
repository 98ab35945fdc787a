package history

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	// Drivers for the two supported backends.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQLStore persists turns in postgres (production) or sqlite (development).
// Statements stick to $1 placeholders, which both drivers accept.
type SQLStore struct {
	db    *sql.DB
	depth int
}

// OpenSQL opens a turn store. driver is "postgres" or "sqlite3"; dsn is the
// connection string or the sqlite file path.
func OpenSQL(driver, dsn string, depth int) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	s := NewSQLStore(db, depth)
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore wraps an existing connection pool.
func NewSQLStore(db *sql.DB, depth int) *SQLStore {
	if depth <= 0 {
		depth = 3
	}
	return &SQLStore{db: db, depth: depth}
}

// EnsureSchema creates the turns table if missing.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS conversation_turns (
			session_id           TEXT NOT NULL,
			turn_index           INTEGER NOT NULL,
			raw_query            TEXT NOT NULL,
			resolved_query       TEXT NOT NULL,
			mentioned_player_ids TEXT NOT NULL DEFAULT '',
			answer_text          TEXT NOT NULL DEFAULT '',
			asked_at             TIMESTAMP NOT NULL,
			PRIMARY KEY (session_id, turn_index)
		)`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create conversation_turns: %w", err)
	}
	return nil
}

// Append records a turn with the next index and evicts old turns beyond the
// depth bound.
func (s *SQLStore) Append(ctx context.Context, turn Turn) (Turn, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Turn{}, fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	var maxIndex sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT MAX(turn_index) FROM conversation_turns WHERE session_id = $1`,
		turn.SessionID).Scan(&maxIndex)
	if err != nil {
		return Turn{}, fmt.Errorf("read turn index: %w", err)
	}

	turn.TurnIndex = int(maxIndex.Int64) + 1
	if turn.AskedAt.IsZero() {
		turn.AskedAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO conversation_turns
			(session_id, turn_index, raw_query, resolved_query, mentioned_player_ids, answer_text, asked_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		turn.SessionID, turn.TurnIndex, turn.RawQuery, turn.ResolvedQuery,
		joinIDs(turn.MentionedPlayerIDs), turn.AnswerText, turn.AskedAt)
	if err != nil {
		return Turn{}, fmt.Errorf("insert turn: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM conversation_turns WHERE session_id = $1 AND turn_index <= $2`,
		turn.SessionID, turn.TurnIndex-s.depth)
	if err != nil {
		return Turn{}, fmt.Errorf("evict old turns: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Turn{}, fmt.Errorf("commit append: %w", err)
	}
	return turn, nil
}

// Recent returns up to limit turns, most recent first.
func (s *SQLStore) Recent(ctx context.Context, sessionID string, limit int) ([]Turn, error) {
	if limit <= 0 || limit > s.depth {
		limit = s.depth
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, turn_index, raw_query, resolved_query, mentioned_player_ids, answer_text, asked_at
		 FROM conversation_turns
		 WHERE session_id = $1
		 ORDER BY turn_index DESC
		 LIMIT $2`,
		sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var out []Turn
	for rows.Next() {
		var t Turn
		var ids string
		if err := rows.Scan(&t.SessionID, &t.TurnIndex, &t.RawQuery, &t.ResolvedQuery, &ids, &t.AnswerText, &t.AskedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		t.MentionedPlayerIDs = splitIDs(ids)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate turns: %w", err)
	}
	if out == nil {
		out = []Turn{}
	}
	return out, nil
}

// SetAnswer records the answer text on an existing turn.
func (s *SQLStore) SetAnswer(ctx context.Context, sessionID string, turnIndex int, answer string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE conversation_turns SET answer_text = $1 WHERE session_id = $2 AND turn_index = $3`,
		answer, sessionID, turnIndex)
	if err != nil {
		return fmt.Errorf("set answer: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Clear drops all turns for a session.
func (s *SQLStore) Clear(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM conversation_turns WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func joinIDs(ids []int) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func splitIDs(s string) []int {
	if s == "" {
		return nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		if id, err := strconv.Atoi(part); err == nil {
			out = append(out, id)
		}
	}
	return out
}
