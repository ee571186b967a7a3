// internal/store/sqlite.go
//
// SQLite implementation of Store.
// Responsibilities:
//   - Opening the database with safe defaults (busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Persisting each session as a JSON snapshot plus PNG blobs for its images.
//
// The default DSN is an in-memory shared-cache database, so sessions do not
// survive a restart. The pool is pinned to one connection to keep it alive.

package store

import (
	"bytes"
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/robalobadob/logoquiz/internal/game"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLite is a Store backed by database/sql and mattn/go-sqlite3.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens dsn, applies migrations and returns a ready store.
func OpenSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	db, err := openDB(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// Close releases the database. An in-memory database is discarded.
func (s *SQLite) Close() error { return s.db.Close() }

/**
 * openDB opens a SQLite database.
 *
 * - Appends busy timeout and foreign key parameters to the DSN.
 * - Single connection so a mode=memory database lives as long as the pool.
 */
func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite3", dsn+sep+"_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	return db, nil
}

/**
 * migrate applies the embedded migrations/*.sql files.
 *
 * - Uses a _migrations table to track applied files.
 * - Executes each file in lexical order inside its own transaction.
 * - Skips files already applied.
 */
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// snapshot is the JSON form of everything in a Session except its images.
type snapshot struct {
	Phase     game.Phase    `json:"phase"`
	Level     int           `json:"level"`
	Lives     int           `json:"lives"`
	Streak    int           `json:"streak"`
	HighScore int           `json:"highScore"`
	Used      []string      `json:"used"`
	Target    string        `json:"target"`
	Options   []string      `json:"options"`
	Round     roundSnapshot `json:"round"`
}

type roundSnapshot struct {
	Options  []string      `json:"options"`
	Feedback game.Feedback `json:"feedback"`
	Status   game.Status   `json:"status"`
	Answer   string        `json:"answer"`
}

// Save upserts the session row.
func (s *SQLite) Save(ctx context.Context, sess *game.Session) error {
	st := sess.State
	snap := snapshot{
		Phase:     st.Phase,
		Level:     st.Level,
		Lives:     st.Lives,
		Streak:    st.Streak,
		HighScore: st.HighScore,
		Target:    st.Target,
		Options:   st.Options,
		Round: roundSnapshot{
			Options:  sess.Round.Options,
			Feedback: sess.Round.Feedback,
			Status:   sess.Round.Status,
			Answer:   sess.Round.Answer,
		},
	}
	st.Used.Each(func(id string) { snap.Used = append(snap.Used, id) })
	sort.Strings(snap.Used)

	state, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	original, err := encodeBlob(st.Original)
	if err != nil {
		return err
	}
	preview, err := encodeBlob(sess.Round.Preview)
	if err != nil {
		return err
	}
	revealed, err := encodeBlob(sess.Round.Revealed)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO sessions (id, state, original, preview, revealed, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            state=excluded.state,
            original=excluded.original,
            preview=excluded.preview,
            revealed=excluded.revealed,
            updated_at=excluded.updated_at`,
		sess.ID, string(state), original, preview, revealed,
		sess.CreatedAt.UTC().Format(time.RFC3339Nano),
		sess.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

// Get loads and decodes the session row.
func (s *SQLite) Get(ctx context.Context, id string) (*game.Session, error) {
	var (
		state                       string
		original, preview, revealed []byte
		created, updated            string
	)
	err := s.db.QueryRowContext(ctx, `
        SELECT state, original, preview, revealed, created_at, updated_at
        FROM sessions WHERE id=?`, id,
	).Scan(&state, &original, &preview, &revealed, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(state), &snap); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}

	sess := &game.Session{ID: id}
	sess.State = game.State{
		Phase:     snap.Phase,
		Level:     snap.Level,
		Lives:     snap.Lives,
		Streak:    snap.Streak,
		HighScore: snap.HighScore,
		Used:      mapset.New[string](),
		Target:    snap.Target,
		Options:   snap.Options,
	}
	for _, u := range snap.Used {
		sess.State.Used.Put(u)
	}
	sess.Round = game.Round{
		Options:  snap.Round.Options,
		Feedback: snap.Round.Feedback,
		Status:   snap.Round.Status,
		Answer:   snap.Round.Answer,
	}
	if sess.State.Original, err = decodeBlob(original); err != nil {
		return nil, err
	}
	if sess.Round.Preview, err = decodeBlob(preview); err != nil {
		return nil, err
	}
	if sess.Round.Revealed, err = decodeBlob(revealed); err != nil {
		return nil, err
	}
	if sess.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	if sess.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return sess, nil
}

// Delete removes the session row.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id=?`, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// encodeBlob returns nil for a nil image.
func encodeBlob(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeBlob(b []byte) (image.Image, error) {
	if len(b) == 0 {
		return nil, nil
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
