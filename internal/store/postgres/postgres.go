// Package postgres implements store.Store on PostgreSQL through pgx.
package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"talentflow/internal/config"
	"talentflow/internal/store"
)

//go:embed schema.sql
var schema string

// Queryer is the part of pgxpool.Pool and pgx.Tx the repositories need
type Queryer interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

var (
	_ Queryer = &pgxpool.Pool{}
	_ Queryer = pgx.Tx(nil)
)

type Store struct {
	pool *pgxpool.Pool
	q    Queryer
	tx   bool
}

var _ store.Store = &Store{}

// Open connects to the database described by cfg and, when cfg.Database.Migrate
// is set, creates any missing tables.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}
	if cfg.Database.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Database.MaxConns
	}

	pool, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := New(pool)
	if cfg.Database.Migrate {
		if err := s.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return s, nil
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, q: pool}
}

// Migrate applies the embedded schema. Every statement is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *Store) Jobs() store.JobRepository                 { return &jobs{s.q} }
func (s *Store) Candidates() store.CandidateRepository     { return &candidates{s.q} }
func (s *Store) Applications() store.ApplicationRepository { return &applications{s.q} }
func (s *Store) Interviews() store.InterviewRepository     { return &interviews{s.q} }
func (s *Store) Notes() store.NoteRepository               { return &notes{s.q} }
func (s *Store) Staff() store.StaffRepository              { return &staff{s.q} }
func (s *Store) Departments() store.DepartmentRepository   { return &departments{s.q} }
func (s *Store) Analytics() store.AnalyticsRepository      { return &analytics{s.q} }

func (s *Store) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	if s.tx {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	if err := fn(&Store{pool: s.pool, q: tx, tx: true}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	if !s.tx {
		s.pool.Close()
	}
}
