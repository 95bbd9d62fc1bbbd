// Package analytics computes demobilization summary statistics from stored
// profiles and match records.
package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"demob-match/internal/demob"
	"demob-match/internal/storage"
)

// SkillsGapSize is how many skills the gap report keeps.
const SkillsGapSize = 10

// Pipeline health band lower bounds.
const (
	HighQualityScore   = 85
	MediumQualityScore = 70
)

// Filters narrow the data set before aggregation. Start and End bound the
// profile demob date (inclusive); ProjectID restricts match records.
type Filters struct {
	Start     storage.Date
	End       storage.Date
	ProjectID string
}

type Summary struct {
	TotalDemob             int     `json:"total_demob"`
	SuccessfulPlacements   int     `json:"successful_placements"`
	RetentionRate          float64 `json:"retention_rate"`
	AvgTimeToPlacementDays float64 `json:"avg_time_to_placement_days"`
}

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// MobilityStats splits profiles into those willing to relocate and the
// rest, by number of preferred locations. InternationalMobility counts
// profiles with more than one preferred location; it says nothing about
// countries.
type MobilityStats struct {
	WillingToRelocate     int `json:"willing_to_relocate"`
	SameRegion            int `json:"same_region"`
	InternationalMobility int `json:"international_mobility"`
}

type PipelineHealth struct {
	HighQualityMatches   int `json:"high_quality_matches"`
	MediumQualityMatches int `json:"medium_quality_matches"`
	LowQualityMatches    int `json:"low_quality_matches"`
}

type Report struct {
	Summary              Summary        `json:"summary"`
	SkillsGap            []SkillCount   `json:"skills_gap"`
	MobilityStatistics   MobilityStats  `json:"mobility_statistics"`
	PriorityDistribution map[string]int `json:"priority_distribution"`
	PipelineHealth       PipelineHealth `json:"pipeline_health"`
}

// Aggregate is a pure function over the two collections.
func Aggregate(profiles []*storage.DemobProfile, matches []*storage.MatchRecord, f Filters) Report {
	demobDates := make(map[string]storage.Date, len(profiles))
	for _, p := range profiles {
		demobDates[p.EmployeeID] = p.DemobDate
	}

	profiles = filterProfiles(profiles, f)
	matches = filterMatches(matches, profiles, f)

	placed := map[string]bool{}
	placements := 0
	var placementDays float64
	var timed int
	for _, m := range matches {
		if m.Status != storage.MatchPlaced {
			continue
		}
		placements++
		placed[m.EmployeeID] = true
		demobDate, ok := demobDates[m.EmployeeID]
		if m.PlacementDate == nil || m.PlacementDate.IsZero() || !ok || demobDate.IsZero() {
			continue
		}
		placementDays += math.Abs(m.PlacementDate.Sub(demobDate.Time).Hours()) / 24
		timed++
	}

	r := Report{
		Summary: Summary{
			TotalDemob:           len(profiles),
			SuccessfulPlacements: placements,
		},
		SkillsGap:            skillsGap(profiles, placed),
		PriorityDistribution: map[string]int{},
	}
	if len(profiles) > 0 {
		r.Summary.RetentionRate = round1(float64(placements) / float64(len(profiles)) * 100)
	}
	if timed > 0 {
		r.Summary.AvgTimeToPlacementDays = round1(placementDays / float64(timed))
	}

	for _, p := range profiles {
		switch {
		case p.MobilityPreferences.WillingToRelocate:
			r.MobilityStatistics.WillingToRelocate++
		case len(p.MobilityPreferences.PreferredLocations) <= 1:
			r.MobilityStatistics.SameRegion++
		default:
			r.MobilityStatistics.InternationalMobility++
		}
		r.PriorityDistribution[demob.PriorityOf(p)]++
	}

	for _, m := range matches {
		switch {
		case m.MatchScore >= HighQualityScore:
			r.PipelineHealth.HighQualityMatches++
		case m.MatchScore >= MediumQualityScore:
			r.PipelineHealth.MediumQualityMatches++
		default:
			r.PipelineHealth.LowQualityMatches++
		}
	}
	return r
}

func filterProfiles(profiles []*storage.DemobProfile, f Filters) []*storage.DemobProfile {
	if f.Start.IsZero() && f.End.IsZero() {
		return profiles
	}
	out := make([]*storage.DemobProfile, 0, len(profiles))
	for _, p := range profiles {
		if p.DemobDate.IsZero() {
			continue
		}
		if !f.Start.IsZero() && p.DemobDate.Before(f.Start.Time) {
			continue
		}
		if !f.End.IsZero() && p.DemobDate.After(f.End.Time) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// filterMatches keeps matches of the given project and, when a date filter
// is set, only those of employees in the filtered profile set.
func filterMatches(matches []*storage.MatchRecord, profiles []*storage.DemobProfile, f Filters) []*storage.MatchRecord {
	dated := !f.Start.IsZero() || !f.End.IsZero()
	if f.ProjectID == "" && !dated {
		return matches
	}
	var inRange map[string]bool
	if dated {
		inRange = make(map[string]bool, len(profiles))
		for _, p := range profiles {
			inRange[p.EmployeeID] = true
		}
	}
	out := make([]*storage.MatchRecord, 0, len(matches))
	for _, m := range matches {
		if f.ProjectID != "" && m.ProjectID != f.ProjectID {
			continue
		}
		if dated && !inRange[m.EmployeeID] {
			continue
		}
		out = append(out, m)
	}
	return out
}

// skillsGap counts the skills of every profile without a placement and
// keeps the most frequent. Ties keep first-seen order.
func skillsGap(profiles []*storage.DemobProfile, placed map[string]bool) []SkillCount {
	counts := map[string]int{}
	var order []string
	for _, p := range profiles {
		if placed[p.EmployeeID] {
			continue
		}
		for _, s := range p.SkillInventory.TechnicalSkills {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if _, seen := counts[s]; !seen {
				order = append(order, s)
			}
			counts[s]++
		}
	}

	out := make([]SkillCount, 0, len(order))
	for _, s := range order {
		out = append(out, SkillCount{Skill: s, Count: counts[s]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > SkillsGapSize {
		out = out[:SkillsGapSize]
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Source is the read side of the store used to build a report.
type Source interface {
	ListProfiles(ctx context.Context, limit int) ([]*storage.DemobProfile, error)
	ListMatches(ctx context.Context, limit int) ([]*storage.MatchRecord, error)
}

// Build loads profiles and matches concurrently and aggregates them.
func Build(ctx context.Context, src Source, f Filters) (Report, error) {
	var (
		profiles []*storage.DemobProfile
		matches  []*storage.MatchRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profiles, err = src.ListProfiles(gctx, storage.MaxListLimit)
		if err != nil {
			return fmt.Errorf("failed to load profiles: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = src.ListMatches(gctx, storage.MaxListLimit)
		if err != nil {
			return fmt.Errorf("failed to load matches: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return Aggregate(profiles, matches, f), nil
}
