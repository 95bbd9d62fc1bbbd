package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	StatusActiveDemobilizing = "Active-Demobilizing"

	PriorityCritical = "Critical"
	PriorityStandard = "Standard"
	PriorityExternal = "External Option"

	PositionOpen   = "open"
	PositionClosed = "closed"

	MatchPendingReview      = "Pending Review"
	MatchInProgress         = "In Progress"
	MatchInterviewScheduled = "Interview Scheduled"
	MatchPlaced             = "Placed"
	MatchRejected           = "Rejected"
	MatchWithdrawn          = "Withdrawn"

	JobKindProfile  = "profile"
	JobKindPosition = "position"

	JobPending    = "pending"
	JobProcessing = "processing"
	JobCompleted  = "completed"
	JobFailed     = "failed"
)

// MatchStatuses is the full match lifecycle, in workflow order.
var MatchStatuses = []string{
	MatchPendingReview,
	MatchInProgress,
	MatchInterviewScheduled,
	MatchPlaced,
	MatchRejected,
	MatchWithdrawn,
}

func IsMatchStatus(s string) bool {
	for _, st := range MatchStatuses {
		if s == st {
			return true
		}
	}
	return false
}

const DateLayout = "2006-01-02"

// Date is a calendar date. It marshals as YYYY-MM-DD and accepts RFC 3339
// timestamps on input. The zero Date marshals as null.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return NewDate(t.UTC()), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DemobProfile is one employee becoming available from a project.
type DemobProfile struct {
	EmployeeID          string              `json:"employee_id"`
	DemobDate           Date                `json:"demob_date"`
	CurrentStatus       string              `json:"current_status,omitempty"`
	CurrentProject      *CurrentProject     `json:"current_project,omitempty"`
	SkillInventory      SkillInventory      `json:"skill_inventory"`
	MobilityPreferences MobilityPreferences `json:"mobility_preferences"`
	InternalMetrics     InternalMetrics     `json:"internal_metrics"`
	MatchingHistory     []MatchHistoryEntry `json:"matching_history"`
	CreatedBy           string              `json:"created_by,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

type CurrentProject struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

type SkillInventory struct {
	TechnicalSkills []string `json:"technical_skills"`
}

type MobilityPreferences struct {
	PreferredLocations []string `json:"preferred_locations"`
	WillingToRelocate  bool     `json:"willing_to_relocate"`
}

type InternalMetrics struct {
	PerformanceRating float64 `json:"performance_rating"`
	YearsWithCompany  float64 `json:"years_with_company"`
	RetentionPriority string  `json:"retention_priority,omitempty"`
	// PriorityDerived is set when RetentionPriority was computed rather than
	// supplied by a caller.
	PriorityDerived bool `json:"priority_derived,omitempty"`
}

type MatchHistoryEntry struct {
	Opportunity string    `json:"opportunity"`
	Score       int       `json:"score"`
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
}

// ProjectName returns the current project name or "".
func (p *DemobProfile) ProjectName() string {
	if p == nil || p.CurrentProject == nil {
		return ""
	}
	return p.CurrentProject.Name
}

// Project groups positions under one owner (user / tenant).
type Project struct {
	ProjectID   string    `json:"project_id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Position struct {
	PositionID     string    `json:"position_id"`
	ProjectID      string    `json:"project_id"`
	OwnerID        string    `json:"owner_id"`
	Title          string    `json:"title"`
	RequiredSkills []string  `json:"required_skills"`
	ProjectType    string    `json:"project_type,omitempty"`
	Location       string    `json:"location,omitempty"`
	StartDate      Date      `json:"start_date"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// MatchFactors is the persisted score breakdown: the total score split by
// the fixed factor weights.
type MatchFactors struct {
	SkillsAlignment   float64 `json:"skills_alignment"`
	ProjectExperience float64 `json:"project_experience"`
	GeographicFit     float64 `json:"geographic_fit"`
	TimingAlignment   float64 `json:"timing_alignment"`
}

func (f MatchFactors) Sum() float64 {
	return f.SkillsAlignment + f.ProjectExperience + f.GeographicFit + f.TimingAlignment
}

type MatchRecord struct {
	MatchID       string       `json:"match_id"`
	EmployeeID    string       `json:"employee_id"`
	ProjectID     string       `json:"project_id"`
	PositionID    string       `json:"position_id"`
	PositionTitle string       `json:"position_title,omitempty"`
	MatchScore    int          `json:"match_score"`
	MatchFactors  MatchFactors `json:"match_factors"`
	Status        string       `json:"status"`
	PlacementDate *Date        `json:"placement_date,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type User struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// RematchJob is a queued recomputation of matches for one profile or one
// newly opened position.
type RematchJob struct {
	JobID       string    `json:"job_id"`
	Kind        string    `json:"kind"`
	TargetID    string    `json:"target_id"`
	Status      string    `json:"status"`
	Attempts    int       `json:"attempts"`
	MaxAttempts int       `json:"max_attempts"`
	LastError   string    `json:"last_error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
