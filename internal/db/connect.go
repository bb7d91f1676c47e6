package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zulandar/podium/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a MySQL DSN for connecting to a shared Podium database.
func DSN(host string, port int, database string) string {
	return fmt.Sprintf("root@tcp(%s:%d)/%s?parseTime=true", host, port, database)
}

// Open connects to the record store selected by the storage config.
func Open(sc config.StorageConfig) (*gorm.DB, error) {
	switch sc.Driver {
	case "mysql":
		return ConnectMySQL(sc.Host, sc.Port, sc.Database)
	case "sqlite", "":
		return ConnectSQLite(sc.Path)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", sc.Driver)
	}
}

// ConnectSQLite opens a GORM connection to a SQLite database file, creating
// the parent directory if needed.
func ConnectSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("db: sqlite path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("db: create directory for %s: %w", path, err)
		}
	}
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: connect to %s: %w", path, err)
	}
	return gdb, nil
}

// ConnectMySQL opens a GORM connection to a MySQL-compatible server, for
// deployments where viewers and the control surface share one store.
func ConnectMySQL(host string, port int, database string) (*gorm.DB, error) {
	dsn := DSN(host, port, database)
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: connect to %s:%d/%s: %w", host, port, database, err)
	}
	return gdb, nil
}
