package matching

import (
	"math"
	"strings"
	"time"

	"demob-match/internal/storage"
)

// Factor weights; they sum to 1.
const (
	SkillsWeight      = 0.40
	ProjectTypeWeight = 0.25
	GeographyWeight   = 0.20
	TimingWeight      = 0.15
)

// FactorValues are the raw 0..1 factor values behind a score.
type FactorValues struct {
	Skills      float64 `json:"skills"`
	ProjectType float64 `json:"project_type"`
	Geography   float64 `json:"geography"`
	Timing      float64 `json:"timing"`
}

type Result struct {
	Score int
	// Factors is the stored breakdown: Score split by the weights. It does
	// not reflect which factor drove the result.
	Factors storage.MatchFactors
	Values  FactorValues
}

// Score rates how well a profile fits a position on a 0..100 scale. now is
// used when the position has no start date. Missing fields fall to the
// "no match" branch of each factor.
func Score(p *storage.DemobProfile, pos *storage.Position, now time.Time) Result {
	v := FactorValues{
		Skills:      skillsFactor(p.SkillInventory.TechnicalSkills, pos.RequiredSkills),
		ProjectType: projectTypeFactor(p.ProjectName(), pos.ProjectType),
		Geography:   geographyFactor(p.MobilityPreferences, pos.Location),
		Timing:      timingFactor(p.DemobDate, pos.StartDate, now),
	}

	total := v.Skills*SkillsWeight +
		v.ProjectType*ProjectTypeWeight +
		v.Geography*GeographyWeight +
		v.Timing*TimingWeight
	score := int(math.Round(total * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return Result{Score: score, Factors: Breakdown(score), Values: v}
}

// Breakdown redistributes a total score over the factor weights.
func Breakdown(score int) storage.MatchFactors {
	s := float64(score)
	return storage.MatchFactors{
		SkillsAlignment:   s * SkillsWeight,
		ProjectExperience: s * ProjectTypeWeight,
		GeographicFit:     s * GeographyWeight,
		TimingAlignment:   s * TimingWeight,
	}
}

// skillsFactor is the share of required skills found inside some candidate
// skill. An empty requirement list scores 0.
func skillsFactor(candidate, required []string) float64 {
	if len(required) == 0 {
		return 0
	}
	lowered := make([]string, 0, len(candidate))
	for _, s := range candidate {
		lowered = append(lowered, strings.ToLower(s))
	}
	matched := 0
	for _, req := range required {
		req = strings.ToLower(strings.TrimSpace(req))
		if req == "" {
			continue
		}
		for _, c := range lowered {
			if strings.Contains(c, req) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(required))
}

func projectTypeFactor(projectName, projectType string) float64 {
	if strings.TrimSpace(projectName) == "" || strings.TrimSpace(projectType) == "" {
		return 0
	}
	if crossContains(projectName, projectType) {
		return 1
	}
	return 0.5
}

func geographyFactor(m storage.MobilityPreferences, location string) float64 {
	if strings.TrimSpace(location) != "" {
		for _, pref := range m.PreferredLocations {
			if strings.TrimSpace(pref) != "" && crossContains(pref, location) {
				return 1
			}
		}
	}
	if m.WillingToRelocate {
		return 0.7
	}
	return 0.3
}

func timingFactor(demob, start storage.Date, now time.Time) float64 {
	if demob.IsZero() {
		return 0.5
	}
	ref := start.Time
	if start.IsZero() {
		ref = now
	}
	days := math.Abs(demob.Sub(ref).Hours()) / 24
	switch {
	case days <= 30:
		return 1
	case days <= 90:
		return 0.8
	default:
		return 0.5
	}
}

// crossContains reports whether either string contains the other,
// ignoring case.
func crossContains(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}
