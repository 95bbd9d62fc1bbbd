package matching

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"demob-match/internal/storage"
)

type memStore struct {
	users     []string
	profiles  []*storage.DemobProfile
	projects  []*storage.Project
	positions []*storage.Position
	matches   []*storage.MatchRecord
	history   map[string][]storage.MatchHistoryEntry

	failCreate error
	failUsers  error
}

func newMemStore() *memStore {
	return &memStore{history: map[string][]storage.MatchHistoryEntry{}}
}

func (s *memStore) GetProfile(_ context.Context, id string) (*storage.DemobProfile, error) {
	for _, p := range s.profiles {
		if p.EmployeeID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("profile %s: %w", id, storage.ErrNotFound)
}

func (s *memStore) ListProfiles(context.Context, int) ([]*storage.DemobProfile, error) {
	return s.profiles, nil
}

func (s *memStore) ListProfilesByStatus(_ context.Context, status string, _ int) ([]*storage.DemobProfile, error) {
	var out []*storage.DemobProfile
	for _, p := range s.profiles {
		if p.CurrentStatus == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) ListUsers(context.Context) ([]string, error) {
	if s.failUsers != nil {
		return nil, s.failUsers
	}
	return s.users, nil
}

func (s *memStore) ListProjects(_ context.Context, owner string) ([]*storage.Project, error) {
	var out []*storage.Project
	for _, p := range s.projects {
		if p.OwnerID == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) GetProject(_ context.Context, id string) (*storage.Project, error) {
	for _, p := range s.projects {
		if p.ProjectID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("project %s: %w", id, storage.ErrNotFound)
}

func (s *memStore) GetPosition(_ context.Context, id string) (*storage.Position, error) {
	for _, p := range s.positions {
		if p.PositionID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("position %s: %w", id, storage.ErrNotFound)
}

func (s *memStore) ListOpenPositions(_ context.Context, projectID string) ([]*storage.Position, error) {
	var out []*storage.Position
	for _, p := range s.positions {
		if p.ProjectID == projectID && p.Status == storage.PositionOpen {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) CreateMatch(_ context.Context, m *storage.MatchRecord) error {
	if s.failCreate != nil {
		return s.failCreate
	}
	s.matches = append(s.matches, m)
	return nil
}

func (s *memStore) AppendMatchHistory(_ context.Context, id string, e storage.MatchHistoryEntry) error {
	s.history[id] = append(s.history[id], e)
	return nil
}

// seed builds two tenants with one project each:
//
//	u1/p1 "Refinery Upgrade": pos-a (python, Houston), pos-closed
//	u2/p2 "Airport Terminal": pos-b (revit, Denver, no project type)
func seed() *memStore {
	s := newMemStore()
	s.users = []string{"u1", "u2"}
	s.projects = []*storage.Project{
		{ProjectID: "p1", OwnerID: "u1", Name: "Refinery Upgrade"},
		{ProjectID: "p2", OwnerID: "u2", Name: "Airport Terminal"},
	}
	s.positions = []*storage.Position{
		{PositionID: "pos-a", ProjectID: "p1", Title: "Controls Engineer", RequiredSkills: []string{"python"},
			ProjectType: "Refinery", Location: "Houston", StartDate: date("2026-11-10"), Status: storage.PositionOpen},
		{PositionID: "pos-closed", ProjectID: "p1", Title: "Old Role", RequiredSkills: []string{"python"},
			ProjectType: "Refinery", Location: "Houston", StartDate: date("2026-11-10"), Status: storage.PositionClosed},
		{PositionID: "pos-b", ProjectID: "p2", Title: "BIM Modeler", RequiredSkills: []string{"revit"},
			Location: "Denver", StartDate: date("2026-11-10"), Status: storage.PositionOpen},
	}
	s.profiles = []*storage.DemobProfile{
		{
			// pos-a: 40+25+20+15 = 100; pos-b: 0+0+6+15 = 21
			EmployeeID: "E1", DemobDate: date("2026-11-01"), CurrentStatus: storage.StatusActiveDemobilizing,
			CurrentProject:      &storage.CurrentProject{Name: "Refinery Expansion"},
			SkillInventory:      storage.SkillInventory{TechnicalSkills: []string{"Python"}},
			MobilityPreferences: storage.MobilityPreferences{PreferredLocations: []string{"Houston, TX"}},
		},
		{
			// pos-b: 40+0+20+12 = 72; pos-a: 0+0+6+12 = 18
			EmployeeID: "E2", DemobDate: date("2026-12-20"), CurrentStatus: storage.StatusActiveDemobilizing,
			SkillInventory:      storage.SkillInventory{TechnicalSkills: []string{"Revit"}},
			MobilityPreferences: storage.MobilityPreferences{PreferredLocations: []string{"Denver"}},
		},
		{
			// pos-a: 40+0+14+15 = 69; pos-b: 0+0+14+15 = 29
			EmployeeID: "E3", DemobDate: date("2026-11-01"), CurrentStatus: "Reassigned",
			SkillInventory:      storage.SkillInventory{TechnicalSkills: []string{"python"}},
			MobilityPreferences: storage.MobilityPreferences{WillingToRelocate: true},
		},
	}
	return s
}

func newTestMatcher(s Store) *Matcher {
	m := NewMatcher(s, zap.NewNop())
	m.now = func() time.Time { return evalTime }
	n := 0
	m.newID = func() string {
		n++
		return fmt.Sprintf("m%d", n)
	}
	return m
}

func TestMatchProfileToPositions(t *testing.T) {
	s := seed()
	m := newTestMatcher(s)

	got, err := m.MatchProfileToPositions(context.Background(), s.profiles[0], "", 0)
	require.NoError(t, err)
	require.Len(t, got, 2, "closed positions are skipped")
	assert.Equal(t, "pos-a", got[0].PositionID, "enumeration order")
	assert.Equal(t, 100, got[0].MatchScore)
	assert.Equal(t, "pos-b", got[1].PositionID)
	assert.Equal(t, 21, got[1].MatchScore)

	got, err = m.MatchProfileToPositions(context.Background(), s.profiles[0], "p2", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pos-b", got[0].PositionID)

	got, err = m.MatchProfileToPositions(context.Background(), s.profiles[0], "", 75)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, s.matches, "no persistence")
}

func TestMatchDemobCandidatesEmployeeMode(t *testing.T) {
	s := seed()
	m := newTestMatcher(s)

	out, err := m.MatchDemobCandidates(context.Background(), Request{EmployeeID: "E1", MinScore: 0})
	require.NoError(t, err)

	require.Len(t, out.Matches, 2)
	assert.Equal(t, 100, out.Matches[0].MatchScore)
	assert.Equal(t, "m1", out.Matches[0].MatchID)
	assert.Equal(t, 1, out.ProfilesEvaluated)
	assert.Equal(t, 2, out.PositionsEvaluated)
	assert.Equal(t, 2, out.Persisted)

	require.Len(t, s.matches, 2)
	assert.Equal(t, storage.MatchPendingReview, s.matches[0].Status)
	assert.InDelta(t, 100.0, s.matches[0].MatchFactors.Sum(), 1e-9)
	require.Len(t, s.history["E1"], 2)
	assert.Equal(t, "Controls Engineer - Refinery Upgrade", s.history["E1"][0].Opportunity)

	_, err = m.MatchDemobCandidates(context.Background(), Request{EmployeeID: "ghost", MinScore: 75})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMatchDemobCandidatesProjectMode(t *testing.T) {
	s := seed()
	m := newTestMatcher(s)

	out, err := m.MatchDemobCandidates(context.Background(), Request{ProjectID: "p1", MinScore: 0})
	require.NoError(t, err)

	// E3 is not Active-Demobilizing; only pos-a belongs to p1
	assert.Equal(t, 2, out.ProfilesEvaluated)
	assert.Equal(t, 1, out.PositionsEvaluated)
	require.Len(t, out.Matches, 2)
	assert.Equal(t, "E1", out.Matches[0].EmployeeID)
	assert.Equal(t, "E2", out.Matches[1].EmployeeID)
	for _, c := range out.Matches {
		assert.Equal(t, "p1", c.ProjectID)
	}
}

func TestMatchDemobCandidatesFullCrossJoinSorted(t *testing.T) {
	s := seed()
	m := newTestMatcher(s)

	out, err := m.MatchDemobCandidates(context.Background(), Request{MinScore: 0})
	require.NoError(t, err)

	assert.Equal(t, 3, out.ProfilesEvaluated)
	require.Len(t, out.Matches, 6)
	for i := 1; i < len(out.Matches); i++ {
		assert.GreaterOrEqual(t, out.Matches[i-1].MatchScore, out.Matches[i].MatchScore)
	}
	assert.Equal(t, []int{100, 72, 69}, []int{out.Matches[0].MatchScore, out.Matches[1].MatchScore, out.Matches[2].MatchScore})
	assert.Len(t, s.matches, 6)

	// a second run appends fresh records
	_, err = m.MatchDemobCandidates(context.Background(), Request{MinScore: 0})
	require.NoError(t, err)
	assert.Len(t, s.matches, 12)
}

func TestMatchDemobCandidatesStoreFailure(t *testing.T) {
	s := seed()
	s.failCreate = errors.New("write rejected")
	m := newTestMatcher(s)

	_, err := m.MatchDemobCandidates(context.Background(), Request{EmployeeID: "E1", MinScore: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write rejected")
}

func TestTriggerMatchingThresholds(t *testing.T) {
	s := seed()
	// pos-c: 20+25+20+12 = 77 for E1
	s.positions = append(s.positions, &storage.Position{
		PositionID: "pos-c", ProjectID: "p2", Title: "Piping Designer",
		RequiredSkills: []string{"python", "revit"}, ProjectType: "Refinery",
		Location: "Houston", StartDate: date("2027-01-15"), Status: storage.PositionOpen,
	})
	m := newTestMatcher(s)

	out, err := m.TriggerMatching(context.Background(), "E1")
	require.NoError(t, err)

	scores := map[string]int{}
	for _, c := range out.Matches {
		scores[c.PositionID] = c.MatchScore
	}
	assert.Equal(t, 100, scores["pos-a"])
	assert.Equal(t, 77, scores["pos-c"])
	assert.NotContains(t, scores, "pos-b", "below evaluate threshold")
	assert.Equal(t, 2, out.Persisted)
}

func TestTriggerMatchingUsesProfileToPositions(t *testing.T) {
	s := seed()
	m := newTestMatcher(s)
	ctx := context.Background()

	profile, err := s.GetProfile(ctx, "E1")
	require.NoError(t, err)
	want, err := m.MatchProfileToPositions(ctx, profile, "", TriggerEvaluateScore)
	require.NoError(t, err)
	require.Empty(t, s.matches)

	out, err := m.TriggerMatching(ctx, "E1")
	require.NoError(t, err)
	require.Len(t, want, 1)
	require.Len(t, out.Matches, len(want))
	for i := range want {
		assert.Equal(t, want[i].PositionID, out.Matches[i].PositionID)
		assert.Equal(t, want[i].MatchScore, out.Matches[i].MatchScore)
	}
	assert.Equal(t, 1, out.Persisted)

	s.failUsers = errors.New("users unavailable")
	_, err = m.TriggerMatching(ctx, "E1")
	assert.ErrorContains(t, err, "users unavailable")
}

func TestTriggerMatchingEvaluatesButDoesNotPersistBelow75(t *testing.T) {
	s := seed()
	s.profiles = append(s.profiles, &storage.DemobProfile{
		// pos-a: 40 + 0 + 20 + 0.8*15 = 72
		EmployeeID: "E4", DemobDate: date("2027-01-15"), CurrentStatus: storage.StatusActiveDemobilizing,
		SkillInventory:      storage.SkillInventory{TechnicalSkills: []string{"python"}},
		MobilityPreferences: storage.MobilityPreferences{PreferredLocations: []string{"Houston"}},
	})
	m := newTestMatcher(s)

	out, err := m.TriggerMatching(context.Background(), "E4")
	require.NoError(t, err)
	require.Len(t, out.Matches, 1)
	assert.Equal(t, 72, out.Matches[0].MatchScore)
	assert.Empty(t, out.Matches[0].MatchID)
	assert.Equal(t, 0, out.Persisted)
	assert.Empty(t, s.matches)
	assert.Empty(t, s.history["E4"])
}

func TestMatchPosition(t *testing.T) {
	s := seed()
	m := newTestMatcher(s)

	out, err := m.MatchPosition(context.Background(), "pos-a")
	require.NoError(t, err)
	assert.Equal(t, 2, out.ProfilesEvaluated, "only Active-Demobilizing profiles")
	require.Len(t, out.Matches, 1)
	assert.Equal(t, "E1", out.Matches[0].EmployeeID)
	assert.Equal(t, 1, out.Persisted)

	out, err = m.MatchPosition(context.Background(), "pos-closed")
	require.NoError(t, err)
	assert.Empty(t, out.Matches)

	_, err = m.MatchPosition(context.Background(), "ghost")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
