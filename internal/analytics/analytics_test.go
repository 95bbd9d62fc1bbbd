package analytics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demob-match/internal/storage"
)

func mustDate(s string) storage.Date {
	d, err := storage.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(s string) *storage.Date {
	d := mustDate(s)
	return &d
}

func profile(id, demob string, skills []string, locations []string, relocate bool, priority string) *storage.DemobProfile {
	return &storage.DemobProfile{
		EmployeeID:          id,
		DemobDate:           mustDate(demob),
		SkillInventory:      storage.SkillInventory{TechnicalSkills: skills},
		MobilityPreferences: storage.MobilityPreferences{PreferredLocations: locations, WillingToRelocate: relocate},
		InternalMetrics:     storage.InternalMetrics{RetentionPriority: priority},
	}
}

func fixture() ([]*storage.DemobProfile, []*storage.MatchRecord) {
	profiles := []*storage.DemobProfile{
		profile("E1", "2026-11-01", []string{"Python", "SCADA"}, []string{"Houston"}, false, "Critical"),
		profile("E2", "2026-12-01", []string{"Revit", "Python"}, []string{"Denver", "Calgary"}, false, ""),
		profile("E3", "2027-01-10", []string{"Python", "AutoCAD"}, nil, true, "External Option"),
		profile("E4", "2026-10-01", []string{"Revit"}, []string{"Austin"}, false, "Standard"),
	}
	matches := []*storage.MatchRecord{
		{MatchID: "m1", EmployeeID: "E1", ProjectID: "p1", MatchScore: 92, Status: storage.MatchPlaced, PlacementDate: datePtr("2026-11-11")},
		{MatchID: "m2", EmployeeID: "E2", ProjectID: "p2", MatchScore: 85, Status: storage.MatchPendingReview},
		{MatchID: "m3", EmployeeID: "E3", ProjectID: "p1", MatchScore: 84, Status: storage.MatchInProgress},
		{MatchID: "m4", EmployeeID: "E4", ProjectID: "p2", MatchScore: 70, Status: storage.MatchPlaced, PlacementDate: datePtr("2026-09-01")},
		{MatchID: "m5", EmployeeID: "E3", ProjectID: "p1", MatchScore: 69, Status: storage.MatchRejected},
		{MatchID: "m6", EmployeeID: "E2", ProjectID: "p1", MatchScore: 0, Status: storage.MatchPlaced},
	}
	return profiles, matches
}

func TestAggregate(t *testing.T) {
	profiles, matches := fixture()

	r := Aggregate(profiles, matches, Filters{})

	assert.Equal(t, 4, r.Summary.TotalDemob)
	assert.Equal(t, 3, r.Summary.SuccessfulPlacements)
	assert.Equal(t, 75.0, r.Summary.RetentionRate)
	// E1: 10 days, E4: 30 days; m6 has no placement date
	assert.Equal(t, 20.0, r.Summary.AvgTimeToPlacementDays)

	// E1, E2 and E4 are placed; only E3 contributes
	assert.Equal(t, []SkillCount{{"Python", 1}, {"AutoCAD", 1}}, r.SkillsGap)

	assert.Equal(t, MobilityStats{WillingToRelocate: 1, SameRegion: 2, InternationalMobility: 1}, r.MobilityStatistics)
	assert.Equal(t, map[string]int{"Critical": 1, "Standard": 2, "External Option": 1}, r.PriorityDistribution)
	assert.Equal(t, PipelineHealth{HighQualityMatches: 2, MediumQualityMatches: 2, LowQualityMatches: 2}, r.PipelineHealth)
}

func TestAggregateEmpty(t *testing.T) {
	r := Aggregate(nil, nil, Filters{})
	assert.Equal(t, 0, r.Summary.TotalDemob)
	assert.Equal(t, 0.0, r.Summary.RetentionRate)
	assert.Equal(t, 0.0, r.Summary.AvgTimeToPlacementDays)
	assert.Empty(t, r.SkillsGap)
	assert.NotNil(t, r.SkillsGap)
	assert.Empty(t, r.PriorityDistribution)
}

func TestAggregateRetentionRateRounding(t *testing.T) {
	profiles := []*storage.DemobProfile{
		profile("A", "2026-11-01", nil, nil, false, ""),
		profile("B", "2026-11-01", nil, nil, false, ""),
		profile("C", "2026-11-01", nil, nil, false, ""),
	}
	matches := []*storage.MatchRecord{{EmployeeID: "A", Status: storage.MatchPlaced}}
	r := Aggregate(profiles, matches, Filters{})
	assert.Equal(t, 33.3, r.Summary.RetentionRate)
}

func TestAggregateFilters(t *testing.T) {
	profiles, matches := fixture()

	r := Aggregate(profiles, matches, Filters{Start: mustDate("2026-11-01"), End: mustDate("2026-12-01")})
	assert.Equal(t, 2, r.Summary.TotalDemob, "bounds are inclusive")

	r = Aggregate(profiles, matches, Filters{ProjectID: "p1"})
	assert.Equal(t, 4, r.Summary.TotalDemob)
	assert.Equal(t, 2, r.Summary.SuccessfulPlacements)
	assert.Equal(t, 10.0, r.Summary.AvgTimeToPlacementDays)
	assert.Equal(t, PipelineHealth{HighQualityMatches: 1, MediumQualityMatches: 1, LowQualityMatches: 2}, r.PipelineHealth)

	// only E3 is in range; E1 and E4 placements fall outside it
	r = Aggregate(profiles, matches, Filters{Start: mustDate("2027-01-01")})
	assert.Equal(t, 1, r.Summary.TotalDemob)
	assert.Equal(t, 0, r.Summary.SuccessfulPlacements)
	assert.Equal(t, 0.0, r.Summary.RetentionRate)
	assert.Equal(t, 0.0, r.Summary.AvgTimeToPlacementDays)
	assert.Equal(t, []SkillCount{{"Python", 1}, {"AutoCAD", 1}}, r.SkillsGap)
	assert.Equal(t, PipelineHealth{MediumQualityMatches: 1, LowQualityMatches: 1}, r.PipelineHealth)
}

func TestAggregateDateFilterExcludesOutOfRangePlacements(t *testing.T) {
	profiles := []*storage.DemobProfile{
		profile("E1", "2024-01-10", []string{"Python"}, nil, false, ""),
		profile("E2", "2024-06-05", []string{"Revit"}, nil, false, ""),
		profile("E3", "2024-06-20", []string{"SCADA"}, nil, false, ""),
	}
	matches := []*storage.MatchRecord{
		{MatchID: "m1", EmployeeID: "E2", ProjectID: "p1", MatchScore: 90, Status: storage.MatchPlaced, PlacementDate: datePtr("2024-06-15")},
		{MatchID: "m2", EmployeeID: "E3", ProjectID: "p1", MatchScore: 80, Status: storage.MatchPlaced, PlacementDate: datePtr("2024-06-30")},
	}

	jan := Aggregate(profiles, matches, Filters{Start: mustDate("2024-01-01"), End: mustDate("2024-01-31")})
	assert.Equal(t, 1, jan.Summary.TotalDemob)
	assert.Equal(t, 0, jan.Summary.SuccessfulPlacements)
	assert.Equal(t, 0.0, jan.Summary.RetentionRate)
	assert.Equal(t, PipelineHealth{}, jan.PipelineHealth)
	assert.Equal(t, []SkillCount{{"Python", 1}}, jan.SkillsGap)

	june := Aggregate(profiles, matches, Filters{Start: mustDate("2024-06-01"), End: mustDate("2024-06-30")})
	assert.Equal(t, 2, june.Summary.TotalDemob)
	assert.Equal(t, 2, june.Summary.SuccessfulPlacements)
	assert.Equal(t, 100.0, june.Summary.RetentionRate)
	assert.Equal(t, 10.0, june.Summary.AvgTimeToPlacementDays)
	assert.Empty(t, june.SkillsGap)

	both := Aggregate(profiles, matches, Filters{Start: mustDate("2024-06-01"), End: mustDate("2024-06-30"), ProjectID: "p2"})
	assert.Equal(t, 0, both.Summary.SuccessfulPlacements)
}

func TestSkillsGapTopTenStableTies(t *testing.T) {
	var skills []string
	for i := 0; i < 12; i++ {
		skills = append(skills, fmt.Sprintf("skill-%02d", i))
	}
	profiles := []*storage.DemobProfile{
		profile("A", "2026-11-01", skills, nil, false, ""),
		profile("B", "2026-11-01", []string{"skill-11", " ", "skill-05"}, nil, false, ""),
	}

	gap := Aggregate(profiles, nil, Filters{}).SkillsGap

	require.Len(t, gap, SkillsGapSize)
	assert.Equal(t, SkillCount{"skill-05", 2}, gap[0])
	assert.Equal(t, SkillCount{"skill-11", 2}, gap[1])
	assert.Equal(t, "skill-00", gap[2].Skill)
	assert.Equal(t, "skill-08", gap[9].Skill)
}

type fakeSource struct {
	profiles []*storage.DemobProfile
	matches  []*storage.MatchRecord
	err      error
}

func (f fakeSource) ListProfiles(context.Context, int) ([]*storage.DemobProfile, error) {
	return f.profiles, nil
}

func (f fakeSource) ListMatches(context.Context, int) ([]*storage.MatchRecord, error) {
	return f.matches, f.err
}

func TestBuild(t *testing.T) {
	profiles, matches := fixture()

	r, err := Build(context.Background(), fakeSource{profiles: profiles, matches: matches}, Filters{})
	require.NoError(t, err)
	assert.Equal(t, 4, r.Summary.TotalDemob)

	_, err = Build(context.Background(), fakeSource{err: errors.New("connection reset")}, Filters{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load matches")
}
