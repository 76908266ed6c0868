package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/reputation-cli/internal/model"
)

// pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	p, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: p, closeFn: p.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS reputation_reports (
	id             TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	listing_name   TEXT NOT NULL,
	location       TEXT NOT NULL DEFAULT '',
	provider       TEXT NOT NULL DEFAULT '',
	score          INTEGER NOT NULL,
	recommendation TEXT NOT NULL,
	generated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	document       JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reputation_reports_listing_name ON reputation_reports(lower(listing_name));
CREATE INDEX IF NOT EXISTS idx_reputation_reports_generated_at ON reputation_reports(generated_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveReport(ctx context.Context, r *model.ReputationReport) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	doc, err := json.Marshal(r)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal report")
	}

	query, args, err := psql.Insert("reputation_reports").
		Columns("id", "listing_name", "location", "provider", "score", "recommendation", "generated_at", "document").
		Values(r.ID, r.ListingName, r.Location, r.Provider, r.Score, string(r.Recommendation), r.GeneratedAt, doc).
		Suffix("ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, score = EXCLUDED.score, recommendation = EXCLUDED.recommendation").
		ToSql()
	if err != nil {
		return eris.Wrap(err, "postgres: build insert")
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return eris.Wrapf(err, "postgres: save report %s", r.ID)
	}
	return nil
}

func (s *PostgresStore) GetReport(ctx context.Context, id string) (*model.ReputationReport, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT document FROM reputation_reports WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get report %s", id)
	}
	return decodeReport(doc)
}

func (s *PostgresStore) ListReports(ctx context.Context, filter ReportFilter) ([]model.ReputationReport, error) {
	b := psql.Select("document").From("reputation_reports")
	if filter.ListingName != "" {
		b = b.Where(sq.ILike{"listing_name": "%" + filter.ListingName + "%"})
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
		return nil, eris.Wrap(err, "postgres: build list query")
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list reports")
	}
	defer rows.Close()

	var out []model.ReputationReport
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "postgres: scan report")
		}
		r, err := decodeReport(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list reports iterate")
}
