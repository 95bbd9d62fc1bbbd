package demob

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"demob-match/internal/storage"
)

const DefaultPageSize = 50

// Filter narrows profile listings. Zero values disable a criterion.
type Filter struct {
	RetentionPriority string
	DemobStart        storage.Date
	DemobEnd          storage.Date
	Location          string
	Skills            []string // any-of
	Project           string
	Limit             int
	Offset            int
}

// ParseFilter reads getDemobProfiles query parameters.
func ParseFilter(q url.Values) (Filter, error) {
	f := Filter{
		RetentionPriority: strings.TrimSpace(q.Get("retention_priority")),
		Location:          strings.TrimSpace(q.Get("location")),
		Skills:            SplitAndTrim(q.Get("skills")),
		Project:           strings.TrimSpace(q.Get("project")),
		Limit:             DefaultPageSize,
	}

	var err error
	if f.DemobStart, err = storage.ParseDate(q.Get("demob_date_start")); err != nil {
		return f, fmt.Errorf("demob_date_start: %w", err)
	}
	if f.DemobEnd, err = storage.ParseDate(q.Get("demob_date_end")); err != nil {
		return f, fmt.Errorf("demob_date_end: %w", err)
	}
	if v := q.Get("limit"); v != "" {
		if f.Limit, err = strconv.Atoi(v); err != nil || f.Limit < 1 {
			return f, fmt.Errorf("limit must be a positive integer")
		}
		if f.Limit > storage.MaxListLimit {
			f.Limit = storage.MaxListLimit
		}
	}
	if v := q.Get("offset"); v != "" {
		if f.Offset, err = strconv.Atoi(v); err != nil || f.Offset < 0 {
			return f, fmt.Errorf("offset must be a non-negative integer")
		}
	}
	return f, nil
}

func (f Filter) Match(p *storage.DemobProfile) bool {
	if f.RetentionPriority != "" && !strings.EqualFold(PriorityOf(p), f.RetentionPriority) {
		return false
	}
	if !f.DemobStart.IsZero() && p.DemobDate.Before(f.DemobStart.Time) {
		return false
	}
	if !f.DemobEnd.IsZero() && p.DemobDate.After(f.DemobEnd.Time) {
		return false
	}
	if f.Location != "" && !anyContains(p.MobilityPreferences.PreferredLocations, f.Location) {
		return false
	}
	if len(f.Skills) > 0 {
		found := false
		for _, s := range f.Skills {
			if anyContains(p.SkillInventory.TechnicalSkills, s) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Project != "" && !containsFold(p.ProjectName(), f.Project) {
		return false
	}
	return true
}

// Apply filters profiles and returns the requested page plus the total
// number of matching profiles.
func (f Filter) Apply(profiles []*storage.DemobProfile) ([]*storage.DemobProfile, int) {
	matched := make([]*storage.DemobProfile, 0, len(profiles))
	for _, p := range profiles {
		if f.Match(p) {
			matched = append(matched, p)
		}
	}
	total := len(matched)
	if f.Offset >= total {
		return []*storage.DemobProfile{}, total
	}
	end := total
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}
	return matched[f.Offset:end], total
}

func anyContains(list []string, needle string) bool {
	for _, s := range list {
		if containsFold(s, needle) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// SplitAndTrim splits a comma-separated list, dropping empty entries.
func SplitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
