package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB("sqlite", ":memory:")
	require.NoError(t, err, "NewDB(sqlite, :memory:)")
	t.Cleanup(func() { db.Close() })
	return db
}

// fixedClock makes db.now return start, start+1s, start+2s, ...
func fixedClock(db *DB, start time.Time) {
	next := start
	db.now = func() time.Time {
		t := next
		next = next.Add(time.Second)
		return t
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demob.db")

	db1, err := NewDB("sqlite", path)
	require.NoError(t, err)
	v1, err := db1.AppliedMigrations()
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	db2, err := NewDB("sqlite", path)
	require.NoError(t, err)
	defer db2.Close()
	v2, err := db2.AppliedMigrations()
	require.NoError(t, err)

	assert.Equal(t, []int{1}, v1)
	assert.Equal(t, v1, v2)
}

func TestParseMigrationVersion(t *testing.T) {
	v, err := parseMigrationVersion("012_add_index.sql")
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	_, err = parseMigrationVersion("init.sql")
	assert.Error(t, err)
	_, err = parseMigrationVersion("abc_init.sql")
	assert.Error(t, err)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, MaxListLimit, clampLimit(0))
	assert.Equal(t, MaxListLimit, clampLimit(-3))
	assert.Equal(t, MaxListLimit, clampLimit(10_000))
	assert.Equal(t, 20, clampLimit(20))
}

func TestDateJSON(t *testing.T) {
	d, err := ParseDate("2026-11-02")
	require.NoError(t, err)
	b, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2026-11-02"`, string(b))

	var parsed Date
	require.NoError(t, parsed.UnmarshalJSON([]byte(`"2026-11-02T18:30:00Z"`)))
	assert.Equal(t, "2026-11-02", parsed.String())

	require.NoError(t, parsed.UnmarshalJSON([]byte(`null`)))
	assert.True(t, parsed.IsZero())
	b, err = parsed.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	assert.Error(t, parsed.UnmarshalJSON([]byte(`"next week"`)))
	assert.Error(t, parsed.UnmarshalJSON([]byte(`20261102`)))
}

func TestIsMatchStatus(t *testing.T) {
	for _, s := range MatchStatuses {
		assert.True(t, IsMatchStatus(s), s)
	}
	assert.False(t, IsMatchStatus("placed"))
	assert.False(t, IsMatchStatus(""))
	assert.Len(t, MatchStatuses, 6)
}

func TestErrNotFoundIsWrapped(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.GetProfile(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = db.GetMatch(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.GetProject(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.GetPosition(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.GetJob(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
