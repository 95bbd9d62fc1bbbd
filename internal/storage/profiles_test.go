package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile(id, demob, status string) *DemobProfile {
	d, _ := ParseDate(demob)
	return &DemobProfile{
		EmployeeID:     id,
		DemobDate:      d,
		CurrentStatus:  status,
		CurrentProject: &CurrentProject{Name: "Infrastructure Modernization", Role: "Engineer"},
		SkillInventory: SkillInventory{TechnicalSkills: []string{"Go", "Kubernetes"}},
		MobilityPreferences: MobilityPreferences{
			PreferredLocations: []string{"Austin"},
		},
		InternalMetrics: InternalMetrics{PerformanceRating: 4, YearsWithCompany: 2, RetentionPriority: PriorityStandard},
	}
}

func TestSaveAndGetProfile(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	fixedClock(db, start)

	p := testProfile("E1", "2026-11-01", StatusActiveDemobilizing)
	require.NoError(t, db.SaveProfile(ctx, p))

	got, err := db.GetProfile(ctx, "E1")
	require.NoError(t, err)
	assert.Equal(t, "2026-11-01", got.DemobDate.String())
	assert.Equal(t, "Infrastructure Modernization", got.ProjectName())
	assert.Equal(t, []string{"Go", "Kubernetes"}, got.SkillInventory.TechnicalSkills)
	assert.True(t, got.CreatedAt.Equal(start))

	// upsert keeps created_at and bumps updated_at
	got.CurrentStatus = "Reassigned"
	require.NoError(t, db.SaveProfile(ctx, got))
	again, err := db.GetProfile(ctx, "E1")
	require.NoError(t, err)
	assert.Equal(t, "Reassigned", again.CurrentStatus)
	assert.True(t, again.CreatedAt.Equal(start))
	assert.True(t, again.UpdatedAt.After(start))

	all, err := db.ListProfiles(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListProfiles(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveProfile(ctx, testProfile("E2", "2026-12-01", StatusActiveDemobilizing)))
	require.NoError(t, db.SaveProfile(ctx, testProfile("E1", "2026-11-01", StatusActiveDemobilizing)))
	require.NoError(t, db.SaveProfile(ctx, testProfile("E3", "2026-10-01", "Placed")))

	all, err := db.ListProfiles(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "E3", all[0].EmployeeID, "ordered by demob date")

	limited, err := db.ListProfiles(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	active, err := db.ListProfilesByStatus(ctx, StatusActiveDemobilizing, 0)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "E1", active[0].EmployeeID)
	assert.Equal(t, "E2", active[1].EmployeeID)
}

func TestAppendMatchHistory(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.SaveProfile(ctx, testProfile("E1", "2026-11-01", StatusActiveDemobilizing)))

	first := MatchHistoryEntry{Opportunity: "SRE", Score: 80, Status: MatchPendingReview, Date: time.Now().UTC()}
	second := MatchHistoryEntry{Opportunity: "Platform Lead", Score: 91, Status: MatchPendingReview, Date: time.Now().UTC()}
	require.NoError(t, db.AppendMatchHistory(ctx, "E1", first))
	require.NoError(t, db.AppendMatchHistory(ctx, "E1", second))

	got, err := db.GetProfile(ctx, "E1")
	require.NoError(t, err)
	require.Len(t, got.MatchingHistory, 2)
	assert.Equal(t, "SRE", got.MatchingHistory[0].Opportunity)
	assert.Equal(t, 91, got.MatchingHistory[1].Score)

	assert.ErrorIs(t, db.AppendMatchHistory(ctx, "nobody", first), ErrNotFound)
}
