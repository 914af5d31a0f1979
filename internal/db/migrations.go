package db

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Migration files are named NNNN_description.sql. Each runs in its own
// transaction and is recorded in schema_migrations.
const schemaMigrationsDDL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  file TEXT NOT NULL,
  applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

var sqliteAddColumnPattern = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)

var errEmptyMigration = errors.New("migration has no SQL statements")

type migration struct {
	version    int
	file       string
	statements []string
}

func migrate(database *gorm.DB, files fs.FS) error {
	if err := database.Exec(schemaMigrationsDDL).Error; err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	available, err := readMigrations(files)
	if err != nil {
		return err
	}
	applied, err := appliedVersions(database)
	if err != nil {
		return err
	}

	for _, next := range available {
		if applied[next.version] {
			continue
		}
		if err := database.Transaction(next.apply); err != nil {
			return fmt.Errorf("migration %s: %w", next.file, err)
		}
	}
	return nil
}

func readMigrations(files fs.FS) ([]migration, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	migrations := make([]migration, 0, len(names))
	byVersion := make(map[int]string, len(names))
	for _, name := range names {
		prefix, _, found := strings.Cut(path.Base(name), "_")
		if !found {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		if previous, duplicate := byVersion[version]; duplicate {
			return nil, fmt.Errorf("migration version %d used by %s and %s", version, previous, name)
		}
		byVersion[version] = name

		body, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		statements := splitStatements(string(body))
		if len(statements) == 0 {
			return nil, fmt.Errorf("migration %s: %w", name, errEmptyMigration)
		}
		migrations = append(migrations, migration{version: version, file: name, statements: statements})
	}

	slices.SortFunc(migrations, func(a, b migration) int {
		return cmp.Compare(a.version, b.version)
	})
	return migrations, nil
}

func appliedVersions(database *gorm.DB) (map[int]bool, error) {
	var versions []int
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}

	applied := make(map[int]bool, len(versions))
	for _, version := range versions {
		applied[version] = true
	}
	return applied, nil
}

func (m migration) apply(tx *gorm.DB) error {
	for _, statement := range m.statements {
		present, err := sqliteColumnAlreadyAdded(tx, statement)
		if err != nil {
			return err
		}
		if present {
			continue
		}
		if err := tx.Exec(statement).Error; err != nil {
			return fmt.Errorf("execute %q: %w", statement, err)
		}
	}

	return tx.Exec(`INSERT INTO schema_migrations (version, file) VALUES (?, ?)`, m.version, m.file).Error
}

// splitStatements drops "--" comment lines and splits on semicolons.
func splitStatements(body string) []string {
	var kept strings.Builder
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept.WriteString(line)
		kept.WriteByte('\n')
	}

	statements := make([]string, 0)
	for _, part := range strings.Split(kept.String(), ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// sqliteColumnAlreadyAdded reports whether statement is an ADD COLUMN for a
// column SQLite already has. SQLite has no ADD COLUMN IF NOT EXISTS.
func sqliteColumnAlreadyAdded(tx *gorm.DB, statement string) (bool, error) {
	if tx.Dialector.Name() != "sqlite" {
		return false, nil
	}
	matches := sqliteAddColumnPattern.FindStringSubmatch(statement)
	if matches == nil {
		return false, nil
	}

	table := strings.Trim(matches[1], "\"`[]")
	column := strings.Trim(matches[2], "\"`[]")
	if !tx.Migrator().HasTable(table) {
		return false, fmt.Errorf("add column %s: table %s does not exist", column, table)
	}
	return tx.Migrator().HasColumn(table, column), nil
}
