package db_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/OptimisticTrousers/word-reminder-sub001/db"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.New(db.Opts{
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "words.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return gdb
}

func TestNewUnsupportedDriver(t *testing.T) {
	_, err := db.New(db.Opts{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestNewMigratesSchema(t *testing.T) {
	gdb := openTestDB(t)

	for _, m := range model.All() {
		assert.True(t, gdb.Migrator().HasTable(m), "%T", m)
	}
	assert.False(t, gdb.Migrator().HasTable("schema_migrations"))

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestMigrateLeavesStoredWordsAlone(t *testing.T) {
	gdb := openTestDB(t)

	now := time.Now()
	require.NoError(t, gdb.Exec("INSERT INTO words (word, created_at) VALUES (?, ?)", "Hello", now).Error)
	require.NoError(t, gdb.Exec("INSERT INTO words (word, created_at) VALUES (?, ?)", "hello", now).Error)

	require.NoError(t, db.Migrate(gdb))

	var words []string
	require.NoError(t, gdb.Model(&model.Word{}).Order("id").Pluck("word", &words).Error)
	assert.Equal(t, []string{"Hello", "hello"}, words)
}
