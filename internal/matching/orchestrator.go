package matching

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"demob-match/internal/logger"
	"demob-match/internal/storage"
)

const (
	// DefaultMinScore is the threshold used when a caller does not pass one.
	DefaultMinScore = 75
	// TriggerEvaluateScore and TriggerPersistScore are the two independent
	// thresholds of reactive matching: evaluate at 70, persist at 75.
	TriggerEvaluateScore = 70
	TriggerPersistScore  = 75
)

// Store is the document-store surface the matcher reads and writes.
type Store interface {
	GetProfile(ctx context.Context, employeeID string) (*storage.DemobProfile, error)
	ListProfiles(ctx context.Context, limit int) ([]*storage.DemobProfile, error)
	ListProfilesByStatus(ctx context.Context, status string, limit int) ([]*storage.DemobProfile, error)
	ListUsers(ctx context.Context) ([]string, error)
	ListProjects(ctx context.Context, ownerID string) ([]*storage.Project, error)
	GetProject(ctx context.Context, projectID string) (*storage.Project, error)
	GetPosition(ctx context.Context, positionID string) (*storage.Position, error)
	ListOpenPositions(ctx context.Context, projectID string) ([]*storage.Position, error)
	CreateMatch(ctx context.Context, m *storage.MatchRecord) error
	AppendMatchHistory(ctx context.Context, employeeID string, entry storage.MatchHistoryEntry) error
}

// Candidate is one scored (profile, position) pairing.
type Candidate struct {
	MatchID       string               `json:"match_id,omitempty"`
	EmployeeID    string               `json:"employee_id"`
	OwnerID       string               `json:"owner_id"`
	ProjectID     string               `json:"project_id"`
	ProjectName   string               `json:"project_name"`
	PositionID    string               `json:"position_id"`
	PositionTitle string               `json:"position_title"`
	MatchScore    int                  `json:"match_score"`
	MatchFactors  storage.MatchFactors `json:"match_factors"`
	FactorValues  FactorValues         `json:"factor_values"`
}

type Request struct {
	EmployeeID string
	ProjectID  string
	MinScore   int
}

type Outcome struct {
	Matches            []Candidate
	ProfilesEvaluated  int
	PositionsEvaluated int
	Persisted          int
}

type Matcher struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

func NewMatcher(store Store, log *zap.Logger) *Matcher {
	return &Matcher{
		store: store,
		log:   logger.Component(log, "matcher"),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

type target struct {
	project  *storage.Project
	position *storage.Position
}

// collectTargets walks users -> projects -> open positions. A non-empty
// projectID restricts the walk to that project.
func (m *Matcher) collectTargets(ctx context.Context, projectID string) ([]target, error) {
	users, err := m.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var targets []target
	for _, userID := range users {
		projects, err := m.store.ListProjects(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list projects: %w", err)
		}
		for _, project := range projects {
			if projectID != "" && project.ProjectID != projectID {
				continue
			}
			positions, err := m.store.ListOpenPositions(ctx, project.ProjectID)
			if err != nil {
				return nil, fmt.Errorf("failed to list positions: %w", err)
			}
			for _, pos := range positions {
				targets = append(targets, target{project: project, position: pos})
			}
		}
	}
	return targets, nil
}

func (m *Matcher) scoreAgainst(profile *storage.DemobProfile, targets []target, minScore int, now time.Time) []Candidate {
	var out []Candidate
	for _, t := range targets {
		res := Score(profile, t.position, now)
		if res.Score < minScore {
			continue
		}
		out = append(out, Candidate{
			EmployeeID:    profile.EmployeeID,
			OwnerID:       t.project.OwnerID,
			ProjectID:     t.project.ProjectID,
			ProjectName:   t.project.Name,
			PositionID:    t.position.PositionID,
			PositionTitle: t.position.Title,
			MatchScore:    res.Score,
			MatchFactors:  res.Factors,
			FactorValues:  res.Values,
		})
	}
	return out
}

// MatchProfileToPositions scores one profile against every open position
// (or those of projectID) and returns pairings scoring at least minScore,
// in store enumeration order.
func (m *Matcher) MatchProfileToPositions(ctx context.Context, profile *storage.DemobProfile, projectID string, minScore int) ([]Candidate, error) {
	targets, err := m.collectTargets(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return m.scoreAgainst(profile, targets, minScore, m.now()), nil
}

// MatchDemobCandidates runs one of three modes depending on which ids are
// set: employee only, project only (Active-Demobilizing profiles), or
// neither (every profile against every position). Results are sorted by
// score, highest first, and each is persisted as a MatchRecord.
func (m *Matcher) MatchDemobCandidates(ctx context.Context, req Request) (*Outcome, error) {
	var profiles []*storage.DemobProfile
	switch {
	case req.EmployeeID != "":
		p, err := m.store.GetProfile(ctx, req.EmployeeID)
		if err != nil {
			return nil, err
		}
		profiles = []*storage.DemobProfile{p}
	case req.ProjectID != "":
		ps, err := m.store.ListProfilesByStatus(ctx, storage.StatusActiveDemobilizing, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch profiles: %w", err)
		}
		profiles = ps
	default:
		ps, err := m.store.ListProfiles(ctx, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch profiles: %w", err)
		}
		profiles = ps
	}

	targets, err := m.collectTargets(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	now := m.now()
	out := &Outcome{ProfilesEvaluated: len(profiles), PositionsEvaluated: len(targets), Matches: []Candidate{}}
	for _, p := range profiles {
		out.Matches = append(out.Matches, m.scoreAgainst(p, targets, req.MinScore, now)...)
	}
	sortByScore(out.Matches)

	for i := range out.Matches {
		if err := m.persist(ctx, &out.Matches[i]); err != nil {
			return nil, err
		}
		out.Persisted++
	}

	m.log.Info("matching run complete",
		zap.String(logger.FieldEmployeeID, req.EmployeeID),
		zap.String("project_id", req.ProjectID),
		zap.Int("min_score", req.MinScore),
		zap.Int("profiles", out.ProfilesEvaluated),
		zap.Int("positions", out.PositionsEvaluated),
		zap.Int("matches", len(out.Matches)))
	return out, nil
}

// TriggerMatching re-evaluates one profile against all positions, keeping
// pairings at or above TriggerEvaluateScore and persisting those at or above
// TriggerPersistScore.
func (m *Matcher) TriggerMatching(ctx context.Context, employeeID string) (*Outcome, error) {
	profile, err := m.store.GetProfile(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return m.triggerForProfile(ctx, profile)
}

func (m *Matcher) triggerForProfile(ctx context.Context, profile *storage.DemobProfile) (*Outcome, error) {
	candidates, err := m.MatchProfileToPositions(ctx, profile, "", TriggerEvaluateScore)
	if err != nil {
		return nil, err
	}
	sortByScore(candidates)

	out := &Outcome{Matches: candidates, ProfilesEvaluated: 1}
	for i := range out.Matches {
		if out.Matches[i].MatchScore < TriggerPersistScore {
			continue
		}
		if err := m.persist(ctx, &out.Matches[i]); err != nil {
			return nil, err
		}
		out.Persisted++
	}

	m.log.Debug("profile matching triggered",
		zap.String(logger.FieldEmployeeID, profile.EmployeeID),
		zap.Int("evaluated", len(candidates)),
		zap.Int("persisted", out.Persisted))
	return out, nil
}

// MatchPosition scores a newly opened position against every
// Active-Demobilizing profile and persists pairings at or above
// TriggerPersistScore. Closed positions are ignored.
func (m *Matcher) MatchPosition(ctx context.Context, positionID string) (*Outcome, error) {
	pos, err := m.store.GetPosition(ctx, positionID)
	if err != nil {
		return nil, err
	}
	out := &Outcome{Matches: []Candidate{}}
	if pos.Status != storage.PositionOpen {
		return out, nil
	}
	project, err := m.store.GetProject(ctx, pos.ProjectID)
	if err != nil {
		return nil, err
	}
	profiles, err := m.store.ListProfilesByStatus(ctx, storage.StatusActiveDemobilizing, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}

	now := m.now()
	targets := []target{{project: project, position: pos}}
	for _, p := range profiles {
		out.Matches = append(out.Matches, m.scoreAgainst(p, targets, TriggerPersistScore, now)...)
	}
	sortByScore(out.Matches)
	out.ProfilesEvaluated = len(profiles)
	out.PositionsEvaluated = 1

	for i := range out.Matches {
		if err := m.persist(ctx, &out.Matches[i]); err != nil {
			return nil, err
		}
		out.Persisted++
	}

	m.log.Info("position matching triggered",
		zap.String("position_id", positionID),
		zap.Int("profiles", len(profiles)),
		zap.Int("persisted", out.Persisted))
	return out, nil
}

// persist stores the candidate as a Pending Review match and appends it to
// the profile's matching history.
func (m *Matcher) persist(ctx context.Context, c *Candidate) error {
	now := m.now().UTC()
	rec := &storage.MatchRecord{
		MatchID:       m.newID(),
		EmployeeID:    c.EmployeeID,
		ProjectID:     c.ProjectID,
		PositionID:    c.PositionID,
		PositionTitle: c.PositionTitle,
		MatchScore:    c.MatchScore,
		MatchFactors:  c.MatchFactors,
		Status:        storage.MatchPendingReview,
		CreatedAt:     now,
	}
	if err := m.store.CreateMatch(ctx, rec); err != nil {
		return fmt.Errorf("failed to save match for %s: %w", c.EmployeeID, err)
	}
	entry := storage.MatchHistoryEntry{
		Opportunity: opportunity(c),
		Score:       c.MatchScore,
		Status:      storage.MatchPendingReview,
		Date:        now,
	}
	if err := m.store.AppendMatchHistory(ctx, c.EmployeeID, entry); err != nil {
		return fmt.Errorf("failed to record history for %s: %w", c.EmployeeID, err)
	}
	c.MatchID = rec.MatchID
	return nil
}

func opportunity(c *Candidate) string {
	if c.ProjectName == "" {
		return c.PositionTitle
	}
	return c.PositionTitle + " - " + c.ProjectName
}

// sortByScore orders candidates by score, highest first; ties keep their
// enumeration order.
func sortByScore(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchScore > candidates[j].MatchScore
	})
}
