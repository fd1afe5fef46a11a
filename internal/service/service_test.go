package service

import (
	"context"
	"testing"

	"github.com/geoexplorer/backend/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// captureNotifier records the last code handed to it instead of delivering.
type captureNotifier struct {
	target  string
	code    string
	purpose string
}

func (n *captureNotifier) SendCode(_ context.Context, target, code, purpose string) error {
	n.target = target
	n.code = code
	n.purpose = purpose
	return nil
}
