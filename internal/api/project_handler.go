package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"demob-match/internal/apierr"
	"demob-match/internal/auth"
	"demob-match/internal/storage"
)

type CreateProjectRequest struct {
	ProjectID   string `json:"project_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CreatePositionRequest struct {
	PositionID     string       `json:"position_id,omitempty"`
	ProjectID      string       `json:"project_id"`
	Title          string       `json:"title"`
	RequiredSkills []string     `json:"required_skills"`
	ProjectType    string       `json:"project_type,omitempty"`
	Location       string       `json:"location,omitempty"`
	StartDate      storage.Date `json:"start_date" swaggertype:"string"`
	Status         string       `json:"status,omitempty"`
}

type CreatePositionResponse struct {
	Success       bool              `json:"success"`
	Position      *storage.Position `json:"position"`
	RematchQueued bool              `json:"rematch_queued"`
	JobID         string            `json:"job_id,omitempty"`
}

// CreateProjectHandler creates a project owned by the caller
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProjectRequest true "Project"
// @Success 201 {object} storage.Project
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/createProject [post]
func (a *API) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req CreateProjectRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		a.writeError(w, r, apierr.Validation("name is required"))
		return
	}

	ctx := r.Context()
	userID := auth.UserID(ctx)
	// projects are enumerated through their owner
	if _, _, err := a.db.EnsureUser(ctx, userID, a.defaultRole); err != nil {
		a.writeError(w, r, err)
		return
	}

	project := &storage.Project{
		ProjectID:   strings.TrimSpace(req.ProjectID),
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
	}
	if project.ProjectID == "" {
		project.ProjectID = uuid.New().String()
	} else if _, err := a.db.GetProject(ctx, project.ProjectID); err == nil {
		a.writeError(w, r, apierr.Conflict("project %s already exists", project.ProjectID))
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		a.writeError(w, r, err)
		return
	}

	if err := a.db.CreateProject(ctx, project); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.log.Info("project created", zap.String("project_id", project.ProjectID), zap.String("owner_id", userID))
	writeJSON(w, http.StatusCreated, project)
}

// CreatePositionHandler adds a position to one of the caller's projects
// @Summary Create a position
// @Description Open positions queue a matching pass against every Active-Demobilizing profile
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePositionRequest true "Position"
// @Success 201 {object} CreatePositionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/createPosition [post]
func (a *API) CreatePositionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req CreatePositionRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	req.ProjectID = strings.TrimSpace(req.ProjectID)
	req.Title = strings.TrimSpace(req.Title)
	switch {
	case req.ProjectID == "":
		a.writeError(w, r, apierr.Validation("project_id is required"))
		return
	case req.Title == "":
		a.writeError(w, r, apierr.Validation("title is required"))
		return
	}
	if req.Status == "" {
		req.Status = storage.PositionOpen
	}
	if req.Status != storage.PositionOpen && req.Status != storage.PositionClosed {
		a.writeError(w, r, apierr.Validation("status must be %q or %q", storage.PositionOpen, storage.PositionClosed))
		return
	}

	ctx := r.Context()
	userID := auth.UserID(ctx)
	project, err := a.db.GetProject(ctx, req.ProjectID)
	if err == nil && project.OwnerID != userID {
		err = storage.ErrNotFound
	}
	if err != nil {
		a.writeError(w, r, notFoundAs(err, "project %s not found", req.ProjectID))
		return
	}

	pos := &storage.Position{
		PositionID:     strings.TrimSpace(req.PositionID),
		ProjectID:      project.ProjectID,
		OwnerID:        userID,
		Title:          req.Title,
		RequiredSkills: []string{},
		ProjectType:    strings.TrimSpace(req.ProjectType),
		Location:       strings.TrimSpace(req.Location),
		StartDate:      req.StartDate,
		Status:         req.Status,
	}
	for _, skill := range req.RequiredSkills {
		if skill = strings.TrimSpace(skill); skill != "" {
			pos.RequiredSkills = append(pos.RequiredSkills, skill)
		}
	}
	if pos.PositionID == "" {
		pos.PositionID = uuid.New().String()
	} else if _, err := a.db.GetPosition(ctx, pos.PositionID); err == nil {
		a.writeError(w, r, apierr.Conflict("position %s already exists", pos.PositionID))
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		a.writeError(w, r, err)
		return
	}

	if err := a.db.CreatePosition(ctx, pos); err != nil {
		a.writeError(w, r, err)
		return
	}

	resp := CreatePositionResponse{Success: true, Position: pos}
	if pos.Status == storage.PositionOpen {
		job, err := a.queueRematch(ctx, storage.JobKindPosition, pos.PositionID)
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		resp.RematchQueued = true
		resp.JobID = job.JobID
	}
	writeJSON(w, http.StatusCreated, resp)
}
