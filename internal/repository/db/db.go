package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Open открывает базу и оборачивает её в bun с нужным диалектом.
// Поддерживаются sqlite (включая ":memory:") и postgres.
func Open(dbType, dsn string) (*bun.DB, error) {
	var driverName string
	switch dbType {
	case "sqlite":
		driverName = "sqlite"
	case "postgres":
		driverName = "pgx"
	default:
		return nil, fmt.Errorf("unsupported database type: %q", dbType)
	}

	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dbType, err)
	}

	if dbType == "sqlite" && inMemoryDSN(dsn) {
		// иначе каждое соединение пула получит свою пустую базу
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}

	if dbType == "postgres" {
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	}
	return bun.NewDB(sqlDB, sqlitedialect.New()), nil
}

func inMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
