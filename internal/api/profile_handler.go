package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"demob-match/internal/apierr"
	"demob-match/internal/auth"
	"demob-match/internal/demob"
	"demob-match/internal/logger"
	"demob-match/internal/storage"
)

// maxBulkProfiles caps one bulk import request.
const maxBulkProfiles = storage.MaxListLimit

type CreateProfileResponse struct {
	Success        bool   `json:"success"`
	EmployeeID     string `json:"employee_id"`
	MatchesCreated int    `json:"matches_created"`
}

type ProfilesResponse struct {
	Profiles []*storage.DemobProfile `json:"profiles"`
	Total    int                     `json:"total"`
	Limit    int                     `json:"limit"`
	Offset   int                     `json:"offset"`
}

type BulkImportRequest struct {
	Profiles json.RawMessage `json:"profiles" swaggertype:"array,object"`
}

type BulkImportError struct {
	Index      int    `json:"index"`
	EmployeeID string `json:"employee_id,omitempty"`
	Error      string `json:"error"`
}

type BulkImportResponse struct {
	Success  bool              `json:"success"`
	Imported int               `json:"imported"`
	Failed   int               `json:"failed"`
	Errors   []BulkImportError `json:"errors"`
	Queued   int               `json:"rematch_queued"`
}

type UpdateProfileResponse struct {
	Success       bool                  `json:"success"`
	Profile       *storage.DemobProfile `json:"profile"`
	RematchQueued bool                  `json:"rematch_queued"`
	JobID         string                `json:"job_id,omitempty"`
}

// loadProfile returns nil when the profile does not exist yet.
func (a *API) loadProfile(ctx context.Context, employeeID string) (*storage.DemobProfile, error) {
	p, err := a.db.GetProfile(ctx, employeeID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// saveIncoming merges server-owned fields from the stored copy and upserts.
func (a *API) saveIncoming(ctx context.Context, p *storage.DemobProfile) error {
	stored, err := a.loadProfile(ctx, p.EmployeeID)
	if err != nil {
		return err
	}
	demob.Prepare(p, stored, auth.UserID(ctx))
	return a.db.SaveProfile(ctx, p)
}

// CreateDemobProfileHandler upserts a profile and matches it right away
// @Summary Create or replace a demob profile
// @Description Validates employee_id, demob_date and current_project, derives retention_priority when absent, stores the profile and runs matching for it
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body storage.DemobProfile true "Demob profile"
// @Success 201 {object} CreateProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/createDemobProfile [post]
func (a *API) CreateDemobProfileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var raw json.RawMessage
	if err := decodeBody(r, &raw); err != nil {
		a.writeError(w, r, err)
		return
	}
	profile, err := demob.Decode(raw)
	if err != nil {
		a.writeError(w, r, apierr.Validation("%v", err))
		return
	}

	ctx := r.Context()
	if err := a.saveIncoming(ctx, profile); err != nil {
		a.writeError(w, r, err)
		return
	}

	out, err := a.matcher.TriggerMatching(ctx, profile.EmployeeID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.log.Info("profile saved",
		zap.String(logger.FieldEmployeeID, profile.EmployeeID),
		zap.String("retention_priority", profile.InternalMetrics.RetentionPriority),
		zap.Int("matches_created", out.Persisted))
	writeJSON(w, http.StatusCreated, CreateProfileResponse{
		Success:        true,
		EmployeeID:     profile.EmployeeID,
		MatchesCreated: out.Persisted,
	})
}

// GetDemobProfilesHandler lists profiles
// @Summary List demob profiles
// @Description Filters are applied to at most 500 stored profiles ordered by demob date
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param retention_priority query string false "Critical, Standard or External Option"
// @Param demob_date_start query string false "YYYY-MM-DD"
// @Param demob_date_end query string false "YYYY-MM-DD"
// @Param location query string false "Preferred location substring"
// @Param skills query string false "Comma-separated skills, any of"
// @Param project query string false "Current project substring"
// @Param limit query int false "Page size (default 50, max 500)"
// @Param offset query int false "Offset"
// @Success 200 {object} ProfilesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/getDemobProfiles [get]
func (a *API) GetDemobProfilesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	filter, err := demob.ParseFilter(r.URL.Query())
	if err != nil {
		a.writeError(w, r, apierr.Validation("%v", err))
		return
	}
	profiles, err := a.db.ListProfiles(r.Context(), storage.MaxListLimit)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	page, total := filter.Apply(profiles)
	if page == nil {
		page = []*storage.DemobProfile{}
	}
	writeJSON(w, http.StatusOK, ProfilesResponse{
		Profiles: page,
		Total:    total,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	})
}

// GetDemobProfileHandler returns one profile
// @Summary Get a demob profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param employee_id query string true "Employee ID"
// @Success 200 {object} storage.DemobProfile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/getDemobProfile [get]
func (a *API) GetDemobProfileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("employee_id"))
	if id == "" {
		a.writeError(w, r, apierr.Validation("employee_id is required"))
		return
	}
	p, err := a.db.GetProfile(r.Context(), id)
	if err != nil {
		a.writeError(w, r, notFoundAs(err, "demob profile %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateDemobProfileHandler applies a partial update
// @Summary Update a demob profile
// @Description JSON merge patch keyed by employee_id. Changes to demob_date, skill_inventory or mobility_preferences queue a re-match.
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param patch body object true "Merge patch including employee_id"
// @Success 200 {object} UpdateProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/updateDemobProfile [post]
func (a *API) UpdateDemobProfileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPatch {
		methodNotAllowed(w, "POST, PATCH")
		return
	}
	var raw json.RawMessage
	if err := decodeBody(r, &raw); err != nil {
		a.writeError(w, r, err)
		return
	}
	var key struct {
		EmployeeID string `json:"employee_id"`
	}
	if err := json.Unmarshal(raw, &key); err != nil {
		a.writeError(w, r, apierr.Validation("body must be a JSON object"))
		return
	}
	key.EmployeeID = strings.TrimSpace(key.EmployeeID)
	if key.EmployeeID == "" {
		a.writeError(w, r, apierr.Validation("employee_id is required"))
		return
	}

	ctx := r.Context()
	stored, err := a.db.GetProfile(ctx, key.EmployeeID)
	if err != nil {
		a.writeError(w, r, notFoundAs(err, "demob profile %s not found", key.EmployeeID))
		return
	}
	updated, err := demob.ApplyPatch(stored, raw)
	if err == nil {
		err = demob.Validate(updated)
	}
	if err != nil {
		a.writeError(w, r, apierr.Validation("%v", err))
		return
	}
	demob.Prepare(updated, stored, auth.UserID(ctx))
	if err := a.db.SaveProfile(ctx, updated); err != nil {
		a.writeError(w, r, err)
		return
	}

	resp := UpdateProfileResponse{Success: true, Profile: updated}
	if demob.MatchingInputsChanged(stored, updated) {
		job, err := a.queueRematch(ctx, storage.JobKindProfile, updated.EmployeeID)
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		resp.RematchQueued = true
		resp.JobID = job.JobID
	}
	writeJSON(w, http.StatusOK, resp)
}

// BulkImportDemobProfilesHandler imports many profiles at once
// @Summary Bulk import demob profiles
// @Description Each profile is validated and stored on its own; failures are reported per index. Every imported profile gets a queued re-match job.
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BulkImportRequest true "Profiles"
// @Success 200 {object} BulkImportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/bulkImportDemobProfiles [post]
func (a *API) BulkImportDemobProfilesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req BulkImportRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	var items []json.RawMessage
	if len(req.Profiles) == 0 || json.Unmarshal(req.Profiles, &items) != nil || items == nil {
		a.writeError(w, r, apierr.Validation("profiles must be an array"))
		return
	}
	if len(items) > maxBulkProfiles {
		a.writeError(w, r, apierr.Validation("at most %d profiles per import, got %d", maxBulkProfiles, len(items)))
		return
	}

	ctx := r.Context()
	resp := BulkImportResponse{Success: true, Errors: []BulkImportError{}}
	for i, item := range items {
		profile, err := demob.Decode(item)
		if err == nil {
			err = a.saveIncoming(ctx, profile)
		}
		if err != nil {
			entry := BulkImportError{Index: i, Error: err.Error()}
			if profile != nil {
				entry.EmployeeID = profile.EmployeeID
			}
			resp.Errors = append(resp.Errors, entry)
			resp.Failed++
			continue
		}
		resp.Imported++

		if _, err := a.queueRematch(ctx, storage.JobKindProfile, profile.EmployeeID); err != nil {
			a.log.Warn("failed to queue re-match after import",
				zap.String(logger.FieldEmployeeID, profile.EmployeeID),
				zap.Error(err))
			continue
		}
		resp.Queued++
	}

	a.log.Info("bulk import finished",
		zap.Int("imported", resp.Imported),
		zap.Int("failed", resp.Failed),
		zap.Int("rematch_queued", resp.Queued))
	writeJSON(w, http.StatusOK, resp)
}
