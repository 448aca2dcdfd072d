// Package db opens the record database and manages its schema.
package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-sql-driver/mysql"
	"github.com/zulandar/hubscout/internal/config"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MySQLDSN builds a DSN for a MySQL-compatible server. An empty database
// name yields a server-level DSN for CREATE/DROP DATABASE.
func MySQLDSN(host string, port int, user, database string) string {
	mc := mysql.NewConfig()
	mc.User = user
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", host, port)
	mc.DBName = database
	mc.ParseTime = true
	return mc.FormatDSN()
}

// SQLiteDSN builds a DSN for a local SQLite file with foreign keys and a busy
// timeout enabled.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}

// Connect opens a GORM connection for the configured driver. For SQLite the
// parent directory is created if needed.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	switch cfg.Driver {
	case "", "sqlite":
		if cfg.Path != ":memory:" {
			if dir := filepath.Dir(cfg.Path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("db: create directory %s: %w", dir, err)
				}
			}
		}
		dsn := cfg.Path
		if dsn != ":memory:" {
			dsn = SQLiteDSN(cfg.Path)
		}
		gdb, err := gorm.Open(sqlite.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("db: open sqlite %s: %w", cfg.Path, err)
		}
		// SQLite has a single writer, and each :memory: connection is its
		// own database.
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("db: open sqlite %s: %w", cfg.Path, err)
		}
		sqlDB.SetMaxOpenConns(1)
		return gdb, nil
	case "mysql":
		dsn := MySQLDSN(cfg.Host, cfg.Port, cfg.User, cfg.Name)
		gdb, err := gorm.Open(gormmysql.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("db: connect to %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
		}
		return gdb, nil
	}
	return nil, fmt.Errorf("db: unsupported driver %q", cfg.Driver)
}

// ConnectAdmin opens a MySQL connection without selecting a database, used
// for CREATE DATABASE operations.
func ConnectAdmin(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := MySQLDSN(cfg.Host, cfg.Port, cfg.User, "")
	gdb, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: admin connect to %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return gdb, nil
}

// CreateDatabase creates the named database if it doesn't already exist.
func CreateDatabase(adminDB *gorm.DB, name string) error {
	sql := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", name)
	if err := adminDB.Exec(sql).Error; err != nil {
		return fmt.Errorf("db: create database %s: %w", name, err)
	}
	return nil
}

// DropDatabase drops the named database if it exists.
func DropDatabase(adminDB *gorm.DB, name string) error {
	sql := fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", name)
	if err := adminDB.Exec(sql).Error; err != nil {
		return fmt.Errorf("db: drop database %s: %w", name, err)
	}
	return nil
}
