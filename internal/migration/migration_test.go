package migration

import (
	"io/fs"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	up, err := fs.Glob(embeddedMigrations, "sql/*.up.sql")
	require.NoError(t, err)
	down, err := fs.Glob(embeddedMigrations, "sql/*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, up)
	assert.Len(t, down, len(up))
}

func TestApplyAutoMigratesSQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:migration_apply?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Apply(conn, &testEntry{}))
	assert.True(t, conn.Migrator().HasTable("kv_entries"))
}

type testEntry struct {
	Key   string `gorm:"column:kv_key;primaryKey"`
	Value string
}

func (testEntry) TableName() string { return "kv_entries" }
