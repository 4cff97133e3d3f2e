package migrate

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/spoolkeeper/spoolkeeper/internal/db/controller/setting"
	"github.com/spoolkeeper/spoolkeeper/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Setting{}, &models.SchemaMigration{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// testMigrations returns two reversible migrations. The second one reads
// what the first one wrote, so it only succeeds when applied after it.
func testMigrations() []Migration {
	return []Migration{
		{
			Version: "001",
			Name:    "create alpha",
			Up: func(tx *gorm.DB) error {
				_, err := setting.Set(tx, "alpha", []byte(`"a"`))
				return err
			},
			Down: func(tx *gorm.DB) error {
				return setting.DeleteByKey(tx, "alpha")
			},
		},
		{
			Version: "002",
			Name:    "create beta",
			Up: func(tx *gorm.DB) error {
				if _, err := setting.Get(tx, "alpha"); err != nil {
					return errors.Wrap(err, "beta requires alpha")
				}

				_, err := setting.Set(tx, "beta", []byte(`"b"`))
				return err
			},
			Down: func(tx *gorm.DB) error {
				return setting.DeleteByKey(tx, "beta")
			},
		},
	}
}

func TestRunnerUp(t *testing.T) {
	db := setupTestDB(t)

	// registered out of order on purpose, Up must sort by version
	ms := testMigrations()
	runner := &Runner{db: db, migrations: []Migration{ms[1], ms[0]}}

	require.NoError(t, runner.Up())

	for _, key := range []string{"alpha", "beta"} {
		_, err := setting.Get(db, key)
		require.NoError(t, err, "expected setting %s to exist", key)
	}

	statuses, err := runner.Status()
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	for _, s := range statuses {
		assert.True(t, s.Applied)
		assert.False(t, s.AppliedAt.IsZero())
	}

	// second run is a no-op
	require.NoError(t, runner.Up())

	var count int64
	require.NoError(t, db.Model(&models.SchemaMigration{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRunnerDown(t *testing.T) {
	db := setupTestDB(t)
	runner := &Runner{db: db, migrations: testMigrations()}

	require.NoError(t, runner.Up())

	// revert the most recent migration only
	require.NoError(t, runner.Down(1))

	_, err := setting.Get(db, "alpha")
	require.NoError(t, err)
	_, err = setting.Get(db, "beta")
	require.ErrorIs(t, err, setting.ErrSettingNotFound)

	// revert the rest; a larger step count than remaining is fine
	require.NoError(t, runner.Down(10))

	_, err = setting.Get(db, "alpha")
	require.ErrorIs(t, err, setting.ErrSettingNotFound)

	// nothing left to revert
	require.NoError(t, runner.Down(1))
}

func TestRunnerDownUnknownVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := &Runner{db: db, migrations: testMigrations()}

	require.NoError(t, db.Create(&models.SchemaMigration{Version: "999", Name: "orphan"}).Error)

	require.ErrorIs(t, runner.Down(1), ErrUnknownMigration)
}

func TestRunnerDownNotReversible(t *testing.T) {
	db := setupTestDB(t)
	runner := &Runner{db: db, migrations: []Migration{
		{
			Version: "001",
			Name:    "one way",
			Up:      func(*gorm.DB) error { return nil },
		},
	}}

	require.NoError(t, runner.Up())
	require.ErrorIs(t, runner.Down(1), ErrNotReversible)
}

func TestRunnerUpRollsBackFailedMigration(t *testing.T) {
	db := setupTestDB(t)
	bang := errors.New("bang")

	runner := &Runner{db: db, migrations: []Migration{
		{
			Version: "001",
			Name:    "partial write then failure",
			Up: func(tx *gorm.DB) error {
				if _, err := setting.Set(tx, "partial", []byte(`"x"`)); err != nil {
					return err
				}

				return bang
			},
			Down: func(*gorm.DB) error { return nil },
		},
	}}

	require.ErrorIs(t, runner.Up(), bang)

	// the partial write and the bookkeeping record were both rolled back
	_, err := setting.Get(db, "partial")
	require.ErrorIs(t, err, setting.ErrSettingNotFound)

	var count int64
	require.NoError(t, db.Model(&models.SchemaMigration{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRunnerStatusPending(t *testing.T) {
	db := setupTestDB(t)
	runner := &Runner{db: db, migrations: testMigrations()}

	statuses, err := runner.Status()
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	for _, s := range statuses {
		assert.False(t, s.Applied)
	}

	assert.Equal(t, "001", statuses[0].Version)
	assert.Equal(t, "002", statuses[1].Version)
}

func TestRunnerNilDB(t *testing.T) {
	runner := NewRunner(nil)

	require.ErrorIs(t, runner.Up(), ErrDBNil)
	require.ErrorIs(t, runner.Down(1), ErrDBNil)

	_, err := runner.Status()
	require.ErrorIs(t, err, ErrDBNil)
}
