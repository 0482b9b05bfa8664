package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/1234bibhash/venture-idea-compass/internal/ideaanalysis"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// createdAtLayout is fixed width so created_at sorts lexically.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

// SQLStore is a Backend over SQLite (embedded, the default) or PostgreSQL.
// Queries are written with ? placeholders and rebound per driver.
type SQLStore struct {
	db *sqlx.DB
}

const sqlSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS ideas (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL DEFAULT '',
	title      TEXT NOT NULL DEFAULT '',
	industry   TEXT NOT NULL DEFAULT '',
	template   TEXT NOT NULL DEFAULT '',
	score      INTEGER NOT NULL DEFAULT 0,
	report     TEXT NOT NULL DEFAULT '{}',
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS ideas_user_created ON ideas (user_id, created_at);
`

// OpenSQL opens the database and creates the schema. For sqlite, dsn is a
// file path.
func OpenSQL(driver, dsn string) (*SQLStore, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch driver {
	case DriverSQLite, "":
		db, err = sqlx.Open(DriverSQLite, dsn+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
		if err == nil {
			db.SetMaxOpenConns(1)
		}
	case DriverPostgres:
		db, err = sqlx.Open(DriverPostgres, dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if _, err := db.Exec(sqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, s.db.Rebind("SELECT value FROM kv WHERE key = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`), key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Add(ctx context.Context, key string, delta int64) (int64, error) {
	var value string
	err := s.db.GetContext(ctx, &value, s.db.Rebind(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = CASE
			WHEN CAST(kv.value AS INTEGER) + ? < 0 THEN '0'
			ELSE CAST(CAST(kv.value AS INTEGER) + ? AS TEXT)
		END
		RETURNING value`), key, strconv.FormatInt(max(delta, 0), 10), delta, delta)
	if err != nil {
		return 0, fmt.Errorf("add %s: %w", key, err)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("add %s: non-numeric value %q", key, value)
	}
	return n, nil
}

type ideaRow struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	Title     string `db:"title"`
	Industry  string `db:"industry"`
	Template  string `db:"template"`
	Score     int    `db:"score"`
	Report    string `db:"report"`
	CreatedAt string `db:"created_at"`
}

func (r ideaRow) record() (IdeaRecord, error) {
	rec := IdeaRecord{
		ID:       r.ID,
		UserID:   r.UserID,
		Title:    r.Title,
		Industry: r.Industry,
		Template: ideaanalysis.TemplateID(r.Template),
		Score:    r.Score,
	}
	if err := json.Unmarshal([]byte(r.Report), &rec.Report); err != nil {
		return IdeaRecord{}, fmt.Errorf("decode report %s: %w", r.ID, err)
	}
	createdAt, err := time.Parse(createdAtLayout, r.CreatedAt)
	if err != nil {
		return IdeaRecord{}, fmt.Errorf("decode created_at %s: %w", r.ID, err)
	}
	rec.CreatedAt = createdAt
	return rec, nil
}

func (s *SQLStore) SaveIdea(ctx context.Context, rec IdeaRecord) error {
	blob, err := json.Marshal(rec.Report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	row := ideaRow{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Title:     rec.Title,
		Industry:  rec.Industry,
		Template:  string(rec.Template),
		Score:     rec.Score,
		Report:    string(blob),
		CreatedAt: rec.CreatedAt.UTC().Format(createdAtLayout),
	}
	_, err = s.db.NamedExecContext(ctx, `INSERT INTO ideas (id, user_id, title, industry, template, score, report, created_at)
		VALUES (:id, :user_id, :title, :industry, :template, :score, :report, :created_at)
		ON CONFLICT (id) DO UPDATE SET
			user_id = excluded.user_id, title = excluded.title, industry = excluded.industry,
			template = excluded.template, score = excluded.score, report = excluded.report`, row)
	if err != nil {
		return fmt.Errorf("save idea %s: %w", rec.ID, err)
	}
	return nil
}

func (s *SQLStore) GetIdea(ctx context.Context, id string) (IdeaRecord, error) {
	var row ideaRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind("SELECT * FROM ideas WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return IdeaRecord{}, ErrNotFound
	}
	if err != nil {
		return IdeaRecord{}, fmt.Errorf("get idea %s: %w", id, err)
	}
	return row.record()
}

func (s *SQLStore) ListIdeas(ctx context.Context, userID string, limit int) ([]IdeaRecord, error) {
	query := "SELECT * FROM ideas WHERE user_id = ? ORDER BY created_at DESC, id DESC"
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	var rows []ideaRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}
	out := make([]IdeaRecord, 0, len(rows))
	for _, r := range rows {
		rec, err := r.record()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

var (
	_ Backend     = (*SQLStore)(nil)
	_ Incrementer = (*SQLStore)(nil)
	_ Backend     = (*Memory)(nil)
	_ Incrementer = (*Memory)(nil)
)
