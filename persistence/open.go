package persistence

import (
	"fmt"

	localCommon "github.com/0xPolygon/zkevm-sequencer-core/common"
	"github.com/0xPolygon/zkevm-sequencer-core/persistence/memstorage"
	"github.com/0xPolygon/zkevm-sequencer-core/persistence/pebblestorage"
	"github.com/0xPolygon/zkevm-sequencer-core/persistence/sqlstorage"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
)

// NewBackend opens the backend selected by cfg
func NewBackend(cfg Config) (types.Persistence, error) {
	switch cfg.Type {
	case TypeMemory, "":
		return memstorage.NewMemStorage(cfg.Path)
	case TypeSQLite:
		path := cfg.Path
		if path == "" {
			path = ":memory:"
		}
		return sqlstorage.NewStorage(localCommon.SQLLiteDriverName, path)
	case TypePostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres persistence requires a DSN")
		}
		return sqlstorage.NewStorage(localCommon.PostgresDriverName, cfg.DSN)
	case TypePebble:
		return pebblestorage.NewStorage(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown persistence type %q", cfg.Type)
	}
}

// Open opens the configured backend and wraps it in an Adapter
func Open(cfg Config) (*Adapter, error) {
	backend, err := NewBackend(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s backend: %w", types.ErrPersistence, cfg.Type, err)
	}
	return NewAdapter(backend), nil
}
