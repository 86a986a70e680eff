package securestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"keep/internal/domain/vault"
	"keep/internal/infrastructure/migration"
)

const pgUniqueViolation = "23505"

// PostgresBackend хранит блобы в таблице secure_items Postgres
type PostgresBackend struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// OpenPostgres применяет миграции и открывает пул соединений.
func OpenPostgres(ctx context.Context, uri string, log *slog.Logger) (*PostgresBackend, error) {
	if err := migration.NewMigration(migration.DriverPostgres, uri, nil).Up(); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	pool, err := pgxpool.New(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	return &PostgresBackend{
		pool: pool,
		log:  log.With("component", "postgres_backend"),
	}, nil
}

func (p *PostgresBackend) Get(ctx context.Context, service, key string) ([]byte, error) {
	const query = `SELECT data FROM secure_items WHERE service = $1 AND key = $2`

	var data []byte
	err := p.pool.QueryRow(ctx, query, service, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, vault.ErrNotFound
	}
	if err != nil {
		p.log.Error("failed to get item", "key", key, "error", err)
		return nil, fmt.Errorf("get item: %w", err)
	}
	return data, nil
}

func (p *PostgresBackend) Insert(ctx context.Context, service, key string, data []byte) error {
	const query = `INSERT INTO secure_items (service, key, data) VALUES ($1, $2, $3)`

	_, err := p.pool.Exec(ctx, query, service, key, data)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return vault.ErrDuplicateKey
	}
	if err != nil {
		p.log.Error("failed to insert item", "key", key, "error", err)
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (p *PostgresBackend) Put(ctx context.Context, service, key string, data []byte) error {
	const query = `
		INSERT INTO secure_items (service, key, data) VALUES ($1, $2, $3)
		ON CONFLICT (service, key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`

	if _, err := p.pool.Exec(ctx, query, service, key, data); err != nil {
		p.log.Error("failed to update item", "key", key, "error", err)
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

func (p *PostgresBackend) Delete(ctx context.Context, service, key string) error {
	const query = `DELETE FROM secure_items WHERE service = $1 AND key = $2`

	tag, err := p.pool.Exec(ctx, query, service, key)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return vault.ErrNotFound
	}
	return nil
}

func (p *PostgresBackend) Close() error {
	p.pool.Close()
	return nil
}
