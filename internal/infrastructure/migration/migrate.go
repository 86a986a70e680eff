package migration

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// Blank imports required for database driver registration for migrations
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Драйверы, для которых есть встроенные миграции
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

//go:embed sql
var migrations embed.FS

// Migrator - интерфейс для самой библиотеки migrate.Migrate
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine - фабрика для создания мигратора (чтобы не лезть в ФС и БД в тестах)
type MigrationEngine func(driver, databaseURL string) (Migrator, error)

type Migration struct {
	driver      string
	databaseURL string
	engine      MigrationEngine
}

func NewMigration(driver, databaseURL string, engine MigrationEngine) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		driver:      driver,
		databaseURL: databaseURL,
		engine:      engine,
	}
}

// DefaultEngine - миграции из встроенного каталога sql/<driver>
func DefaultEngine(driver, databaseURL string) (Migrator, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
	src, err := iofs.New(migrations, "sql/"+driver)
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	return migrate.NewWithSourceInstance("iofs", src, databaseURL)
}

// SQLiteURL возвращает адрес базы sqlite для migrate.
func SQLiteURL(path string) string {
	return DriverSQLite + "://" + path
}

func (mg *Migration) Up() (err error) {
	m, err := mg.engine(mg.driver, mg.databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w; migration up error", err)
	}
	return nil
}
