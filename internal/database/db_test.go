package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bookhaven/backend/internal/models"
)

func openMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(Config{
		Driver: "sqlite",
		DSN:    "file:" + t.Name() + "?mode=memory&cache=shared&_foreign_keys=1",
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported database driver")
}

func TestOpenDefaultsToSQLite(t *testing.T) {
	db, err := Open(Config{DSN: "file::memory:?cache=shared&_foreign_keys=1"})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, sqlDB.Ping())
}

func TestAutoMigrateCreatesSchema(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, AutoMigrate(db))

	for _, model := range []any{
		&models.Account{}, &models.Book{}, &models.Restaurant{}, &models.Reservation{},
	} {
		require.True(t, db.Migrator().HasTable(model))
	}
}

func TestAutoMigrateNilDB(t *testing.T) {
	require.Error(t, AutoMigrate(nil))
}

func TestIsDuplicateKey(t *testing.T) {
	require.False(t, IsDuplicateKey(nil))
	require.False(t, IsDuplicateKey(errors.New("connection refused")))

	require.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	require.True(t, IsDuplicateKey(errors.New("UNIQUE constraint failed: accounts.email")))
	require.True(t, IsDuplicateKey(errors.New("Error 1062: Duplicate entry 'a@b.c' for key 'email'")))
	require.True(t, IsDuplicateKey(errors.New(`pq: duplicate key value violates unique constraint "accounts_email_key"`)))
}

func TestUniqueEmailConstraintEnforced(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, AutoMigrate(db))

	first := &models.Account{Username: "reader", Email: "reader@example.com", Password: "hash"}
	require.NoError(t, db.Create(first).Error)

	second := &models.Account{Username: "other", Email: "reader@example.com", Password: "hash"}
	err := db.Create(second).Error
	require.Error(t, err)
	require.True(t, IsDuplicateKey(err))
}
