// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"orbit/cmd/internal/config"
	"orbit/cmd/internal/domain/database"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/utils/uid"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dsnReplacer = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// NewDB returns a migrated in-memory sqlite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	require.NoError(t, uid.Init(1))

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dsnReplacer.Replace(t.Name()))
	db, err := database.Init(config.DatabaseConfig{Driver: database.DriverSQLite, DSN: dsn})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewUser persists a user with a fresh id.
func NewUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	require.NoError(t, uid.Init(1))

	now := int64(1_700_000_000_000)
	user := &entity.User{
		ID:        uid.Generate(),
		SubUUID:   "sub-" + email,
		Email:     email,
		Name:      strings.Split(email, "@")[0],
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
