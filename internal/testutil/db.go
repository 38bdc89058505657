// Package testutil holds helpers shared by tests
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/OptimisticTrousers/word-reminder-sub001/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dsnReplacer = strings.NewReplacer("/", "_", " ", "_", "#", "_", "?", "_", "&", "_")
	dbSeq       atomic.Int64
)

// SetupTestDB opens a migrated in-memory sqlite database private to t
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", dsnReplacer.Replace(t.Name()), dbSeq.Add(1))

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to access underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}
	})

	return gdb
}
