package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(embedMigrations, migrationsDir+"/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	var all strings.Builder
	for _, f := range files {
		data, err := fs.ReadFile(embedMigrations, f)
		require.NoError(t, err)
		assert.Contains(t, string(data), "-- +goose Up", f)
		all.Write(data)
	}

	schema := all.String()
	assert.Contains(t, schema, "appointments_active_slot_uidx")
	assert.Contains(t, schema, "WHERE status <> 'cancelled'")
	assert.Contains(t, schema, "pg_notify")
}
