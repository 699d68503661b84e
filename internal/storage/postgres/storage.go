package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/domain/repository"
)

const notifyChannel = "orderdesk_documents"

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as document store and repository facade backed by PostgreSQL.
type Storage struct {
	pool         pgxPool
	logger       *slog.Logger
	pollInterval time.Duration
	listen       listenFunc

	feedMu sync.Mutex
	feed   *changeFeed
}

type adminRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, pollInterval time.Duration, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger, pollInterval: pollInterval}
	if p, ok := pool.(*pgxpool.Pool); ok {
		storage.listen = poolListener(p)
	}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close stops the change feed and releases database resources.
func (s *Storage) Close() {
	s.feedMu.Lock()
	feed := s.feed
	s.feedMu.Unlock()
	if feed != nil {
		feed.stop()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

// Admins returns repository of dashboard operators.
func (s *Storage) Admins() repository.AdminRepository {
	return &adminRepository{storage: s}
}

// Documents returns the document store view of storage.
func (s *Storage) Documents() repository.DocumentStore {
	return s
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
            collection TEXT NOT NULL,
            id TEXT NOT NULL,
            data JSONB NOT NULL DEFAULT '{}'::jsonb,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (collection, id)
        )`,
		`CREATE TABLE IF NOT EXISTS admins (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection, created_at, id)`,
		`CREATE OR REPLACE FUNCTION orderdesk_notify_document_change() RETURNS trigger AS $$
        BEGIN
            PERFORM pg_notify('` + notifyChannel + `', COALESCE(NEW.collection, OLD.collection));
            RETURN NULL;
        END;
        $$ LANGUAGE plpgsql`,
		`DROP TRIGGER IF EXISTS documents_notify ON documents`,
		`CREATE TRIGGER documents_notify AFTER INSERT OR UPDATE OR DELETE ON documents
            FOR EACH ROW EXECUTE FUNCTION orderdesk_notify_document_change()`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- AdminRepository implementation ---

func (r *adminRepository) Upsert(ctx context.Context, login, passwordHash string) (*model.Admin, error) {
	const query = `INSERT INTO admins (login, password_hash) VALUES ($1, $2)
                   ON CONFLICT (login) DO UPDATE SET password_hash = EXCLUDED.password_hash
                   RETURNING id, created_at`
	var a model.Admin
	if err := r.storage.pool.QueryRow(ctx, query, login, passwordHash).Scan(&a.ID, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Login = login
	a.PasswordHash = passwordHash
	return &a, nil
}

func (r *adminRepository) GetByLogin(ctx context.Context, login string) (*model.Admin, error) {
	const query = `SELECT id, login, password_hash, created_at FROM admins WHERE login=$1`
	var a model.Admin
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&a.ID, &a.Login, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *adminRepository) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	const query = `SELECT id, login, password_hash, created_at FROM admins WHERE id=$1`
	var a model.Admin
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Login, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
