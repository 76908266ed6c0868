package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/reputation-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS reports (
	id             TEXT PRIMARY KEY,
	listing_name   TEXT NOT NULL,
	location       TEXT NOT NULL DEFAULT '',
	provider       TEXT NOT NULL DEFAULT '',
	score          INTEGER NOT NULL,
	recommendation TEXT NOT NULL,
	generated_at   TEXT NOT NULL,
	document       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_listing_name ON reports(listing_name);
CREATE INDEX IF NOT EXISTS idx_reports_generated_at ON reports(generated_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// sqliteTimeLayout is fixed width so generated_at sorts lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (s *SQLiteStore) SaveReport(ctx context.Context, r *model.ReputationReport) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	doc, err := json.Marshal(r)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal report")
	}

	query, args, err := sq.Insert("reports").
		Options("OR REPLACE").
		Columns("id", "listing_name", "location", "provider", "score", "recommendation", "generated_at", "document").
		Values(r.ID, r.ListingName, r.Location, r.Provider, r.Score, string(r.Recommendation),
			r.GeneratedAt.UTC().Format(sqliteTimeLayout), string(doc)).
		ToSql()
	if err != nil {
		return eris.Wrap(err, "sqlite: build insert")
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return eris.Wrapf(err, "sqlite: save report %s", r.ID)
	}
	return nil
}

func (s *SQLiteStore) GetReport(ctx context.Context, id string) (*model.ReputationReport, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM reports WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get report %s", id)
	}
	return decodeReport([]byte(doc))
}

func (s *SQLiteStore) ListReports(ctx context.Context, filter ReportFilter) ([]model.ReputationReport, error) {
	b := sq.Select("document").From("reports")
	if filter.ListingName != "" {
		b = b.Where("LOWER(listing_name) LIKE ?", "%"+strings.ToLower(filter.ListingName)+"%")
	}
	if filter.Recommendation != "" {
		b = b.Where(sq.Eq{"recommendation": string(filter.Recommendation)})
	}
	b = b.OrderBy("generated_at DESC").Limit(filter.limit())
	if off := filter.offset(); off > 0 {
		b = b.Offset(off)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: build list query")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list reports")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.ReputationReport
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan report")
		}
		r, err := decodeReport([]byte(doc))
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list reports iterate")
}

func decodeReport(doc []byte) (*model.ReputationReport, error) {
	var r model.ReputationReport
	if err := json.Unmarshal(doc, &r); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal report")
	}
	return &r, nil
}
