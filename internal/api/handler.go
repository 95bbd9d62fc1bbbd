package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"demob-match/internal/apierr"
	"demob-match/internal/auth"
	"demob-match/internal/logger"
	"demob-match/internal/matching"
	"demob-match/internal/queue"
	"demob-match/internal/storage"
)

// maxBodyBytes bounds request bodies; bulk imports are the largest.
const maxBodyBytes = 10 << 20

// Store is everything the handlers need from the document store.
type Store interface {
	matching.Store
	SaveProfile(ctx context.Context, p *storage.DemobProfile) error
	GetMatch(ctx context.Context, matchID string) (*storage.MatchRecord, error)
	UpdateMatch(ctx context.Context, m *storage.MatchRecord) error
	ListMatches(ctx context.Context, limit int) ([]*storage.MatchRecord, error)
	ListMatchesByEmployee(ctx context.Context, employeeID string) ([]*storage.MatchRecord, error)
	EnsureUser(ctx context.Context, userID, defaultRole string) (*storage.User, bool, error)
	CreateProject(ctx context.Context, p *storage.Project) error
	CreatePosition(ctx context.Context, pos *storage.Position) error
	Ping(ctx context.Context) error
}

type API struct {
	db          Store
	matcher     *matching.Matcher
	queue       queue.Queue
	worker      *queue.Worker
	auth        *auth.Service
	log         *zap.Logger
	defaultRole string
	enforce     bool
	now         func() time.Time
}

// Options wires the collaborators of the API. Queue defaults to a
// store-backed queue when db also stores jobs.
type Options struct {
	Auth         *auth.Service
	Queue        queue.Queue
	Logger       *zap.Logger
	DefaultRole  string
	WorkerRate   float64
	PollInterval time.Duration
	MaxAttempts  int

	// EnforcePermissions rejects callers whose role lacks the endpoint's
	// capability with 403.
	EnforcePermissions bool
}

func NewAPI(db Store, opts Options) (*API, error) {
	if opts.Auth == nil {
		return nil, errors.New("api: auth service is required")
	}
	log := logger.Component(opts.Logger, "api")

	q := opts.Queue
	if q == nil {
		js, ok := db.(queue.JobStore)
		if !ok {
			return nil, errors.New("api: no queue configured and store cannot hold jobs")
		}
		q = queue.NewStoreQueue(js, opts.MaxAttempts)
	}

	role := opts.DefaultRole
	if role == "" {
		role = auth.RoleViewer
	}
	if !auth.IsRole(role) {
		return nil, fmt.Errorf("api: unknown default role %q", role)
	}

	matcher := matching.NewMatcher(db, opts.Logger)
	return &API{
		db:          db,
		matcher:     matcher,
		queue:       q,
		worker:      queue.NewWorker(q, matcher, opts.WorkerRate, opts.PollInterval, opts.Logger),
		auth:        opts.Auth,
		log:         log,
		defaultRole: role,
		enforce:     opts.EnforcePermissions,
		now:         time.Now,
	}, nil
}

// Worker exposes the re-match worker, mainly so tests can drain it.
func (a *API) Worker() *queue.Worker { return a.worker }

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := apierr.From(err)
	if e.Status >= http.StatusInternalServerError {
		a.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeJSON(w, e.Status, ErrorResponse{Error: errorBody{Message: "internal server error", Code: e.Code}})
		return
	}
	writeJSON(w, e.Status, ErrorResponse{Error: errorBody{Message: e.Error(), Code: e.Code}})
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: errorBody{Message: "method not allowed", Code: "method_not_allowed"}})
}

// decodeBody reads a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err != nil {
		return apierr.Validation("could not read request body: %v", err)
	}
	if len(body) == 0 {
		return apierr.Validation("request body is required")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apierr.Validation("invalid JSON: %v", err)
	}
	return nil
}

// notFoundAs turns storage.ErrNotFound into a 404 with the given message.
func notFoundAs(err error, format string, args ...any) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apierr.NotFound(format, args...)
	}
	return err
}

// HealthHandler reports liveness and store reachability
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (a *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := a.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
