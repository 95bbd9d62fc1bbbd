package demob

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"demob-match/internal/storage"
)

// ErrInvalid marks profile validation failures.
var ErrInvalid = errors.New("invalid demob profile")

// Validate checks the required fields: employee_id, demob_date and
// current_project.
func Validate(p *storage.DemobProfile) error {
	var missing []string
	if p == nil {
		return fmt.Errorf("%w: profile is empty", ErrInvalid)
	}
	if strings.TrimSpace(p.EmployeeID) == "" {
		missing = append(missing, "employee_id")
	}
	if p.DemobDate.IsZero() {
		missing = append(missing, "demob_date")
	}
	if p.CurrentProject == nil || strings.TrimSpace(p.CurrentProject.Name) == "" {
		missing = append(missing, "current_project")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrInvalid, strings.Join(missing, ", "))
	}
	r := p.InternalMetrics.PerformanceRating
	if r < 0 || r > 5 {
		return fmt.Errorf("%w: performance_rating must be between 0 and 5, got %v", ErrInvalid, r)
	}
	if p.InternalMetrics.YearsWithCompany < 0 {
		return fmt.Errorf("%w: years_with_company must not be negative", ErrInvalid)
	}
	switch p.InternalMetrics.RetentionPriority {
	case "", storage.PriorityCritical, storage.PriorityStandard, storage.PriorityExternal:
	default:
		return fmt.Errorf("%w: unknown retention_priority %q", ErrInvalid, p.InternalMetrics.RetentionPriority)
	}
	return nil
}

// Decode parses one profile document and validates it.
func Decode(raw json.RawMessage) (*storage.DemobProfile, error) {
	p := &storage.DemobProfile{}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	p.EmployeeID = strings.TrimSpace(p.EmployeeID)
	if err := Validate(p); err != nil {
		return p, err
	}
	return p, nil
}

// Prepare readies a caller-supplied profile for storage on top of the stored
// version (nil when new): server-owned fields are kept from the stored copy
// and retention priority is derived when absent. A priority present on
// incoming counts as caller-set.
func Prepare(incoming, stored *storage.DemobProfile, callerID string) {
	if stored != nil {
		incoming.CreatedAt = stored.CreatedAt
		incoming.CreatedBy = stored.CreatedBy
		incoming.MatchingHistory = stored.MatchingHistory
	} else {
		incoming.CreatedBy = callerID
		incoming.MatchingHistory = nil
	}
	if incoming.MatchingHistory == nil {
		incoming.MatchingHistory = []storage.MatchHistoryEntry{}
	}
	if !EnsurePriority(incoming) {
		incoming.InternalMetrics.PriorityDerived = false
	}
}

// MatchingInputsChanged reports whether a profile update touched any field
// that feeds the matcher: demob date, skills or mobility preferences.
func MatchingInputsChanged(before, after *storage.DemobProfile) bool {
	if before == nil || after == nil {
		return true
	}
	if !before.DemobDate.Equal(after.DemobDate.Time) {
		return true
	}
	if !reflect.DeepEqual(normalize(before.SkillInventory.TechnicalSkills), normalize(after.SkillInventory.TechnicalSkills)) {
		return true
	}
	bm, am := before.MobilityPreferences, after.MobilityPreferences
	return bm.WillingToRelocate != am.WillingToRelocate ||
		!reflect.DeepEqual(normalize(bm.PreferredLocations), normalize(am.PreferredLocations))
}

func normalize(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
