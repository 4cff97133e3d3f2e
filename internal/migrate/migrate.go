// Package migrate implements a versioned data-migration runner over gorm.
// Migrations register themselves at init time and are applied in version
// order, each one inside its own transaction with an applied-version record
// kept in the schema_migrations table.
package migrate

import (
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/spoolkeeper/spoolkeeper/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrUnknownMigration is returned when an applied version has no registered migration.
	ErrUnknownMigration = errors.New("no registered migration for applied version")
	// ErrNotReversible is returned when a migration without a Down func is reverted.
	ErrNotReversible = errors.New("migration is not reversible")
)

// Migration is one reversible data migration. Up and Down receive the
// transaction they must confine all reads and writes to.
type Migration struct {
	Version string
	Name    string
	Up      func(tx *gorm.DB) error
	Down    func(tx *gorm.DB) error
}

var registry []Migration //nolint:gochecknoglobals

// Register adds a migration to the registry. It is meant to be called from
// init funcs of the migrations package.
func Register(m Migration) {
	registry = append(registry, m)
}

// registered returns a snapshot of the registry.
func registered() []Migration {
	snapshot := make([]Migration, len(registry))
	copy(snapshot, registry)

	return snapshot
}

// Runner applies and reverts migrations against one database.
type Runner struct {
	db         *gorm.DB
	migrations []Migration
}

// NewRunner creates a Runner bound to db, with a snapshot of the
// registered migrations.
func NewRunner(db *gorm.DB) *Runner {
	return &Runner{db: db, migrations: registered()}
}

// sorted returns the runner's migrations in version order.
func (r *Runner) sorted() []Migration {
	sorted := make([]Migration, len(r.migrations))
	copy(sorted, r.migrations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Version < sorted[j].Version
	})

	return sorted
}

// ensureTable creates the bookkeeping table when missing.
func (r *Runner) ensureTable() error {
	if r.db == nil {
		return ErrDBNil
	}

	return r.db.AutoMigrate(&models.SchemaMigration{}) //nolint:wrapcheck
}

func (r *Runner) appliedVersions() (map[string]models.SchemaMigration, error) {
	var records []models.SchemaMigration
	if err := r.db.Find(&records).Error; err != nil {
		return nil, err //nolint:wrapcheck
	}

	applied := make(map[string]models.SchemaMigration, len(records))
	for _, rec := range records {
		applied[rec.Version] = rec
	}

	return applied, nil
}

// Up applies every pending migration in version order. Each migration and
// its bookkeeping record are committed in one transaction, so a failure
// leaves the store as it was before that migration started.
func (r *Runner) Up() error {
	if err := r.ensureTable(); err != nil {
		return err
	}

	applied, err := r.appliedVersions()
	if err != nil {
		return err
	}

	for _, m := range r.sorted() {
		if _, ok := applied[m.Version]; ok {
			continue
		}

		migration := m

		err = r.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return err
			}

			return tx.Create(&models.SchemaMigration{
				Version:   migration.Version,
				Name:      migration.Name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			log.Error().Err(err).Str("version", m.Version).Str("name", m.Name).Msg("migration failed")

			return err //nolint:wrapcheck
		}

		log.Info().Str("version", m.Version).Str("name", m.Name).Msg("migration applied")
	}

	return nil
}

// Down reverts up to steps applied migrations, most recent first. Like Up,
// every revert runs in its own transaction together with the removal of
// its bookkeeping record.
func (r *Runner) Down(steps int) error {
	if err := r.ensureTable(); err != nil {
		return err
	}

	var records []models.SchemaMigration
	if err := r.db.Order("version desc").Limit(steps).Find(&records).Error; err != nil {
		return err //nolint:wrapcheck
	}

	byVersion := make(map[string]Migration, len(r.migrations))
	for _, m := range r.sorted() {
		byVersion[m.Version] = m
	}

	for _, rec := range records {
		m, ok := byVersion[rec.Version]
		if !ok {
			return ErrUnknownMigration
		}

		if m.Down == nil {
			return ErrNotReversible
		}

		migration := m

		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Down(tx); err != nil {
				return err
			}

			return tx.Delete(&models.SchemaMigration{}, "version = ?", migration.Version).Error
		})
		if err != nil {
			log.Error().Err(err).Str("version", m.Version).Str("name", m.Name).Msg("revert failed")

			return err //nolint:wrapcheck
		}

		log.Info().Str("version", m.Version).Str("name", m.Name).Msg("migration reverted")
	}

	return nil
}

// Status describes one registered migration and whether it was applied.
type Status struct {
	Version   string
	Name      string
	Applied   bool
	AppliedAt time.Time
}

// Status returns the state of every registered migration in version order.
func (r *Runner) Status() ([]Status, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}

	applied, err := r.appliedVersions()
	if err != nil {
		return nil, err
	}

	sorted := r.sorted()
	statuses := make([]Status, 0, len(sorted))

	for _, m := range sorted {
		s := Status{Version: m.Version, Name: m.Name}
		if rec, ok := applied[m.Version]; ok {
			s.Applied = true
			s.AppliedAt = rec.AppliedAt
		}

		statuses = append(statuses, s)
	}

	return statuses, nil
}

// PrintStatus logs the state of every registered migration.
func (r *Runner) PrintStatus() error {
	statuses, err := r.Status()
	if err != nil {
		return err
	}

	for _, s := range statuses {
		event := log.Info().Str("version", s.Version).Str("name", s.Name).Bool("applied", s.Applied)
		if s.Applied {
			event = event.Time("appliedAt", s.AppliedAt)
		}

		event.Msg("migration status")
	}

	return nil
}
