package demob

import (
	"strings"

	"demob-match/internal/storage"
)

// rareSkillPhrases mark scarce skills; a technical skill containing any of
// them counts as rare.
var rareSkillPhrases = []string{
	"machine learning",
	"artificial intelligence",
	"data science",
	"cybersecurity",
	"blockchain",
	"quantum",
	"cloud architecture",
	"devsecops",
}

// rareSkillTokens must equal the whole skill, since they are too short for
// substring matching.
var rareSkillTokens = []string{"ai", "ml", "ai/ml"}

func HasRareSkill(skills []string) bool {
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		for _, tok := range rareSkillTokens {
			if s == tok {
				return true
			}
		}
		for _, phrase := range rareSkillPhrases {
			if strings.Contains(s, phrase) {
				return true
			}
		}
	}
	return false
}

// DerivePriority classifies retention priority from performance, tenure and
// skills.
func DerivePriority(rating, years float64, skills []string) string {
	switch {
	case rating >= 4.5 || years >= 5 || HasRareSkill(skills):
		return storage.PriorityCritical
	case rating >= 3.5 || years >= 3:
		return storage.PriorityStandard
	default:
		return storage.PriorityExternal
	}
}

// EnsurePriority fills retention_priority when absent, marks it derived and
// reports whether it did. An explicitly set value is left untouched.
func EnsurePriority(p *storage.DemobProfile) bool {
	if strings.TrimSpace(p.InternalMetrics.RetentionPriority) != "" {
		return false
	}
	m := p.InternalMetrics
	p.InternalMetrics.RetentionPriority = DerivePriority(m.PerformanceRating, m.YearsWithCompany, p.SkillInventory.TechnicalSkills)
	p.InternalMetrics.PriorityDerived = true
	return true
}

// PriorityOf returns the profile's priority bucket, Standard when absent.
func PriorityOf(p *storage.DemobProfile) string {
	if v := strings.TrimSpace(p.InternalMetrics.RetentionPriority); v != "" {
		return v
	}
	return storage.PriorityStandard
}
