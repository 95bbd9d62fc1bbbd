package api

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"demob-match/internal/apierr"
	"demob-match/internal/logger"
	"demob-match/internal/matching"
	"demob-match/internal/storage"
)

type MatchRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
	// MinScore defaults to 75.
	MinScore *int `json:"min_score,omitempty"`
}

type MatchResponse struct {
	Success            bool                 `json:"success"`
	Matches            []matching.Candidate `json:"matches"`
	TotalMatches       int                  `json:"total_matches"`
	ProfilesEvaluated  int                  `json:"profiles_evaluated"`
	PositionsEvaluated int                  `json:"positions_evaluated"`
}

type UpdateMatchStatusRequest struct {
	MatchID       string        `json:"match_id"`
	Status        string        `json:"status"`
	Notes         *string       `json:"notes,omitempty"`
	PlacementDate *storage.Date `json:"placement_date,omitempty" swaggertype:"string"`
}

type UpdateMatchStatusResponse struct {
	Success bool                 `json:"success"`
	Match   *storage.MatchRecord `json:"match"`
}

type EmployeeMatchesResponse struct {
	EmployeeID string                 `json:"employee_id"`
	Matches    []*storage.MatchRecord `json:"matches"`
	Total      int                    `json:"total"`
}

// MatchDemobCandidatesHandler runs a matching pass
// @Summary Match demob candidates to open positions
// @Description With employee_id only that profile is matched; with project_id every Active-Demobilizing profile is matched against that project; with neither, every profile against every open position. Results are persisted.
// @Tags matching
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MatchRequest true "Matching request"
// @Success 200 {object} MatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/matchDemobCandidates [post]
func (a *API) MatchDemobCandidatesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req MatchRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	minScore := matching.DefaultMinScore
	if req.MinScore != nil {
		minScore = *req.MinScore
	}
	if minScore < 0 || minScore > 100 {
		a.writeError(w, r, apierr.Validation("min_score must be between 0 and 100"))
		return
	}
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)

	out, err := a.matcher.MatchDemobCandidates(r.Context(), matching.Request{
		EmployeeID: req.EmployeeID,
		ProjectID:  strings.TrimSpace(req.ProjectID),
		MinScore:   minScore,
	})
	if err != nil {
		a.writeError(w, r, notFoundAs(err, "demob profile %s not found", req.EmployeeID))
		return
	}
	writeJSON(w, http.StatusOK, MatchResponse{
		Success:            true,
		Matches:            out.Matches,
		TotalMatches:       len(out.Matches),
		ProfilesEvaluated:  out.ProfilesEvaluated,
		PositionsEvaluated: out.PositionsEvaluated,
	})
}

// UpdateMatchStatusHandler moves a match through its lifecycle
// @Summary Update match status
// @Description status must be one of Pending Review, In Progress, Interview Scheduled, Placed, Rejected, Withdrawn. placement_date is only accepted with Placed and defaults to today.
// @Tags matching
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateMatchStatusRequest true "Status update"
// @Success 200 {object} UpdateMatchStatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/updateMatchStatus [post]
func (a *API) UpdateMatchStatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req UpdateMatchStatusRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	req.MatchID = strings.TrimSpace(req.MatchID)
	if req.MatchID == "" {
		a.writeError(w, r, apierr.Validation("match_id is required"))
		return
	}
	if !storage.IsMatchStatus(req.Status) {
		a.writeError(w, r, apierr.Validation("invalid status %q (want one of: %s)", req.Status, strings.Join(storage.MatchStatuses, ", ")))
		return
	}
	hasPlacementDate := req.PlacementDate != nil && !req.PlacementDate.IsZero()
	if hasPlacementDate && req.Status != storage.MatchPlaced {
		a.writeError(w, r, apierr.Validation("placement_date is only allowed with status %q", storage.MatchPlaced))
		return
	}

	ctx := r.Context()
	m, err := a.db.GetMatch(ctx, req.MatchID)
	if err != nil {
		a.writeError(w, r, notFoundAs(err, "match %s not found", req.MatchID))
		return
	}

	previous := m.Status
	m.Status = req.Status
	if req.Notes != nil {
		m.Notes = *req.Notes
	}
	// the placement date is only stamped on the transition into Placed
	if req.Status == storage.MatchPlaced && previous != storage.MatchPlaced {
		placed := storage.NewDate(a.now().UTC())
		if hasPlacementDate {
			placed = *req.PlacementDate
		}
		m.PlacementDate = &placed
	}

	if err := a.db.UpdateMatch(ctx, m); err != nil {
		a.writeError(w, r, notFoundAs(err, "match %s not found", req.MatchID))
		return
	}
	a.log.Info("match status updated",
		zap.String(logger.FieldMatchID, m.MatchID),
		zap.String(logger.FieldEmployeeID, m.EmployeeID),
		zap.String("from", previous),
		zap.String("to", m.Status))
	writeJSON(w, http.StatusOK, UpdateMatchStatusResponse{Success: true, Match: m})
}

// GetDemobMatchesHandler lists the match records of one profile
// @Summary List matches for a demob profile
// @Description Oldest first; use the match_id values with updateMatchStatus
// @Tags matching
// @Produce json
// @Security BearerAuth
// @Param employee_id query string true "Employee ID"
// @Success 200 {object} EmployeeMatchesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/getDemobMatches [get]
func (a *API) GetDemobMatchesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("employee_id"))
	if id == "" {
		a.writeError(w, r, apierr.Validation("employee_id is required"))
		return
	}
	ctx := r.Context()
	if _, err := a.db.GetProfile(ctx, id); err != nil {
		a.writeError(w, r, notFoundAs(err, "demob profile %s not found", id))
		return
	}
	matches, err := a.db.ListMatchesByEmployee(ctx, id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if matches == nil {
		matches = []*storage.MatchRecord{}
	}
	writeJSON(w, http.StatusOK, EmployeeMatchesResponse{EmployeeID: id, Matches: matches, Total: len(matches)})
}
