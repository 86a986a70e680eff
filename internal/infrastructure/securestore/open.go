package securestore

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"
)

// Драйверы хранилища
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Options - параметры открытия хранилища
type Options struct {
	Driver      string
	Path        string // файл базы sqlite
	DatabaseURI string // строка подключения postgres
	Service     string
}

// Open создает хранилище с бэкендом, выбранным по opts.Driver.
func Open(ctx context.Context, opts Options, sealer Sealer, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	var backend Backend
	switch opts.Driver {
	case DriverSQLite, "":
		b, err := OpenSQLite(opts.Path, log)
		if err != nil {
			return nil, err
		}
		backend = b
	case DriverPostgres:
		b, err := OpenPostgres(ctx, opts.DatabaseURI, log)
		if err != nil {
			return nil, err
		}
		backend = b
	case DriverMemory:
		backend = NewMemoryBackend()
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}

	log.Debug("secure store opened", "driver", opts.Driver, "service", opts.Service)
	return New(backend, sealer, opts.Service, log), nil
}
