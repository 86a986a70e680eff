package migration

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMigrator - мок для интерфейса Migrator
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func engineFor(m Migrator) MigrationEngine {
	return func(driver, db string) (Migrator, error) {
		return m, nil
	}
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, nil)

	err := NewMigration(DriverSQLite, "", engineFor(mockM)).Up()

	assert.NoError(t, err)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)

	// ErrNoChange не должна считаться ошибкой в методе Up()
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Close").Return(nil, nil)

	err := NewMigration(DriverSQLite, "", engineFor(mockM)).Up()

	assert.NoError(t, err)
}

func TestMigration_Up_EngineError(t *testing.T) {
	// Ошибка на этапе создания мигратора (например, неверный драйвер)
	engine := func(driver, db string) (Migrator, error) {
		return nil, errors.New("engine crash")
	}

	err := NewMigration(DriverSQLite, "", engine).Up()

	assert.Error(t, err)
	assert.Equal(t, "engine crash", err.Error())
}

func TestMigration_Up_CloseError(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(errors.New("source"), errors.New("db"))

	err := NewMigration(DriverSQLite, "", engineFor(mockM)).Up()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "source")
	assert.Contains(t, err.Error(), "db")
}

func TestDefaultEngine_UnknownDriver(t *testing.T) {
	_, err := DefaultEngine("mysql", "mysql://")
	assert.Error(t, err)
}

func TestDefaultEngine_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keep.db")

	require.NoError(t, NewMigration(DriverSQLite, SQLiteURL(path), nil).Up())
	// повторный запуск ничего не меняет
	require.NoError(t, NewMigration(DriverSQLite, SQLiteURL(path), nil).Up())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='secure_items'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "secure_items", name)
}
