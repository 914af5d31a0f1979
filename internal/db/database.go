package db

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	embeddedmigrations "github.com/terraincognita07/grimoire/migrations"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to Postgres when databaseURL is set and to the SQLite file at dbPath otherwise.
func Open(databaseURL string, dbPath string) (*gorm.DB, error) {
	if strings.TrimSpace(databaseURL) != "" {
		return OpenPostgres(databaseURL)
	}
	return OpenSQLite(dbPath)
}

func OpenSQLite(dbPath string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := migrate(database, sqliteMigrations()); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}

	return database, nil
}

func OpenPostgres(databaseURL string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	database, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig())
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := migrate(database, postgresMigrations()); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}

	return database, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}
}

func sqliteMigrations() fs.FS {
	files, err := fs.Sub(embeddedmigrations.SQLite, "sqlite")
	if err != nil {
		panic(err)
	}
	return files
}

func postgresMigrations() fs.FS {
	files, err := fs.Sub(embeddedmigrations.Postgres, "postgres")
	if err != nil {
		panic(err)
	}
	return files
}
