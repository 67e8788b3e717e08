package sqlstorage

import (
	"database/sql"
	"embed"
	"fmt"

	localCommon "github.com/0xPolygon/zkevm-sequencer-core/common"
	"github.com/0xPolygon/zkevm-sequencer-core/log"
	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*
var dbMigrations embed.FS

// migrationDialect maps a database/sql driver name to the sql-migrate dialect
// and the directory holding its migrations
func migrationDialect(driverName string) (dialect, root string, err error) {
	switch driverName {
	case localCommon.SQLLiteDriverName:
		return "sqlite3", "migrations/sqlite", nil
	case localCommon.PostgresDriverName:
		return "postgres", "migrations/postgres", nil
	default:
		return "", "", fmt.Errorf("unsupported sql driver %q", driverName)
	}
}

// RunMigrations applies database migrations in the specified direction (up or down).
func RunMigrations(driverName string, db *sql.DB, direction migrate.MigrationDirection) error {
	dialect, root, err := migrationDialect(driverName)
	if err != nil {
		return err
	}
	migrations := migrate.EmbedFileSystemMigrationSource{
		FileSystem: dbMigrations,
		Root:       root,
	}

	migrationsCount, err := migrate.Exec(db, dialect, migrations, direction)
	if err != nil {
		return err
	}

	log.Infof("Successfully ran %d migrations in direction: %v", migrationsCount, direction)
	return nil
}
