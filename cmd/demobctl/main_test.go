package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"demob-match/internal/auth"
	"demob-match/internal/queue"
	"demob-match/internal/storage"
)

func openStore(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.NewDB("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReadImportFile(t *testing.T) {
	raw, n, err := readImportFile([]byte(` [{"employee_id":"E1"},{"employee_id":"E2"}] `))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, strings.HasPrefix(string(raw), "["))

	_, n, err = readImportFile([]byte(`{"profiles":[{"employee_id":"E1"}]}`))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	for _, bad := range []string{``, `{"profiles":null}`, `{"profiles":{}}`, `"E1"`, `{"employee_id":"E1"}`} {
		_, _, err := readImportFile([]byte(bad))
		assert.Error(t, err, bad)
	}
}

func TestExportPath(t *testing.T) {
	assert.Equal(t, "/api/exportDemobData?format=csv", exportPath("csv", false))
	assert.Equal(t, "/api/exportDemobData?format=json&include_matches=true", exportPath("json", true))
}

func TestBackfillPriority(t *testing.T) {
	ctx := context.Background()
	db := openStore(t)

	seed := []*storage.DemobProfile{
		{EmployeeID: "E1", InternalMetrics: storage.InternalMetrics{PerformanceRating: 4.6}},
		{EmployeeID: "E2", InternalMetrics: storage.InternalMetrics{PerformanceRating: 3.6}},
		{EmployeeID: "E3", InternalMetrics: storage.InternalMetrics{PerformanceRating: 2, YearsWithCompany: 1}},
		{EmployeeID: "E4", InternalMetrics: storage.InternalMetrics{PerformanceRating: 2, RetentionPriority: storage.PriorityCritical}},
	}
	for _, p := range seed {
		require.NoError(t, db.SaveProfile(ctx, p))
	}

	core, logs := observer.New(zap.InfoLevel)
	changed, err := backfillPriority(ctx, db, 200, true, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, 3, changed)
	assert.Equal(t, 3, logs.FilterMessage("[dry-run] would set priority").Len())

	p, err := db.GetProfile(ctx, "E1")
	require.NoError(t, err)
	assert.Empty(t, p.InternalMetrics.RetentionPriority, "dry run must not persist")

	changed, err = backfillPriority(ctx, db, 200, false, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, changed)

	want := map[string]string{
		"E1": storage.PriorityCritical,
		"E2": storage.PriorityStandard,
		"E3": storage.PriorityExternal,
		"E4": storage.PriorityCritical,
	}
	for id, priority := range want {
		p, err := db.GetProfile(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, priority, p.InternalMetrics.RetentionPriority, id)
	}

	changed, err = backfillPriority(ctx, db, 200, false, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestEnqueueRematch(t *testing.T) {
	ctx := context.Background()
	db := openStore(t)
	require.NoError(t, db.SaveProfile(ctx, &storage.DemobProfile{EmployeeID: "E1"}))
	q := queue.NewStoreQueue(db, 3)

	job, err := enqueueRematch(ctx, db, q, "E1", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, storage.JobKindProfile, job.Kind)
	assert.Equal(t, "E1", job.TargetID)

	n, err := db.CountJobs(ctx, storage.JobPending)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = enqueueRematch(ctx, db, q, "missing", zap.NewNop())
	assert.ErrorIs(t, err, storage.ErrNotFound)
	n, err = db.CountJobs(ctx, storage.JobPending)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", ":memory:")
	t.Setenv("JWT_SECRET", "cli-secret")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"token", "hr-7"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, Execute())

	userID, err := auth.NewService("cli-secret", auth.DefaultTokenTTL).ParseToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "hr-7", userID)
}

func TestSetRole(t *testing.T) {
	db := openStore(t)
	ctx := context.Background()

	core, logs := observer.New(zap.InfoLevel)
	require.NoError(t, setRole(ctx, db, "hr-1", auth.RoleHRManager, zap.New(core)))
	u, err := db.GetUser(ctx, "hr-1")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleHRManager, u.Role)
	require.Equal(t, 1, logs.FilterMessage("role assigned").Len())
	assert.Equal(t, true, logs.All()[0].ContextMap()["created"])

	require.NoError(t, setRole(ctx, db, "hr-1", auth.RoleAdmin, zap.NewNop()))
	u, err = db.GetUser(ctx, "hr-1")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, u.Role)

	err = setRole(ctx, db, "hr-1", "Overlord", zap.NewNop())
	assert.ErrorContains(t, err, "unknown role")
	u, err = db.GetUser(ctx, "hr-1")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, u.Role)
}
