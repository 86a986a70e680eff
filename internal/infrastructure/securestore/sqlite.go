package securestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"keep/internal/domain/vault"
	"keep/internal/infrastructure/migration"
)

// SQLiteBackend - локальная база sqlite, бэкенд по умолчанию
type SQLiteBackend struct {
	db  *sql.DB
	log *slog.Logger
}

// OpenSQLite открывает базу по пути path и применяет миграции.
func OpenSQLite(path string, log *slog.Logger) (*SQLiteBackend, error) {
	if err := migration.NewMigration(migration.DriverSQLite, migration.SQLiteURL(path), nil).Up(); err != nil {
		return nil, fmt.Errorf("ошибка миграции базы данных: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	return &SQLiteBackend{
		db:  db,
		log: log.With("component", "sqlite_backend"),
	}, nil
}

func (s *SQLiteBackend) Get(ctx context.Context, service, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM secure_items WHERE service = ? AND key = ?`, service, key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, vault.ErrNotFound
	}
	if err != nil {
		s.log.Error("failed to read item", "key", key, "error", err)
		return nil, fmt.Errorf("ошибка чтения записи: %w", err)
	}
	return data, nil
}

func (s *SQLiteBackend) Insert(ctx context.Context, service, key string, data []byte) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO secure_items (service, key, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, service, key, data, now, now)
	if isUniqueViolation(err) {
		return vault.ErrDuplicateKey
	}
	if err != nil {
		s.log.Error("failed to insert item", "key", key, "error", err)
		return fmt.Errorf("ошибка сохранения записи: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) Put(ctx context.Context, service, key string, data []byte) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO secure_items (service, key, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (service, key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, service, key, data, now, now)
	if err != nil {
		s.log.Error("failed to update item", "key", key, "error", err)
		return fmt.Errorf("ошибка обновления записи: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) Delete(ctx context.Context, service, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM secure_items WHERE service = ? AND key = ?`, service, key)
	if err != nil {
		return fmt.Errorf("ошибка удаления записи: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка удаления записи: %w", err)
	}
	if n == 0 {
		return vault.ErrNotFound
	}
	return nil
}

func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
