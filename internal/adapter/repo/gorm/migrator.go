package gormrepo

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

// migrationLockID keys the advisory lock that serializes migrations across
// server replicas starting at once.
const migrationLockID = 7_406_113

// ApplyMigrations runs every *.sql file of fsys not yet recorded in
// schema_migrations, in name order, under one advisory-locked transaction.
func ApplyMigrations(ctx context.Context, db *gorm.DB, fsys fs.FS) error {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`SELECT pg_advisory_xact_lock(?)`, migrationLockID).Error; err != nil {
			return fmt.Errorf("lock migrations: %w", err)
		}
		if err := tx.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`).Error; err != nil {
			return fmt.Errorf("create schema_migrations: %w", err)
		}

		var applied []string
		if err := tx.Table("schema_migrations").Pluck("version", &applied).Error; err != nil {
			return fmt.Errorf("load applied migrations: %w", err)
		}
		done := make(map[string]bool, len(applied))
		for _, v := range applied {
			done[v] = true
		}

		for _, name := range names {
			version := strings.TrimSuffix(name, ".sql")
			if done[version] {
				continue
			}
			content, err := fs.ReadFile(fsys, name)
			if err != nil {
				return fmt.Errorf("read migration %s: %w", name, err)
			}
			err = tx.Transaction(func(step *gorm.DB) error {
				if err := step.Exec(string(content)).Error; err != nil {
					return fmt.Errorf("apply migration %s: %w", name, err)
				}
				return step.Exec(`INSERT INTO schema_migrations(version, applied_at) VALUES (?, ?)`, version, time.Now()).Error
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
