package api

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"demob-match/internal/apierr"
	"demob-match/internal/auth"
	"demob-match/internal/logger"
)

// requireAuth resolves the caller from the bearer token and stores the id
// on the request context.
func (a *API) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := auth.BearerToken(r)
		userID, err := a.auth.ParseToken(token)
		if err != nil {
			a.log.Debug("rejected token",
				zap.String("path", r.URL.Path),
				zap.String("token", logger.RedactToken(token)),
				zap.Error(err))
			msg := "invalid or expired token"
			if errors.Is(err, auth.ErrMissingToken) {
				msg = "missing bearer token"
			}
			a.writeError(w, r, apierr.Unauthorized("%s", msg))
			return
		}
		if rec, ok := w.(*statusRecorder); ok {
			rec.userID = userID
		}
		next(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
	}
}

// requireCapability rejects callers whose role lacks capability. It is a
// pass-through unless permission enforcement is on, and must run inside
// requireAuth.
func (a *API) requireCapability(capability string, next http.HandlerFunc) http.HandlerFunc {
	if !a.enforce {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		user, _, err := a.db.EnsureUser(r.Context(), userID, a.defaultRole)
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		if !auth.Can(user.Role, capability) {
			a.log.Debug("capability denied",
				zap.String("user_id", userID),
				zap.String("role", user.Role),
				zap.String("capability", capability))
			a.writeError(w, r, apierr.Forbidden("role %q lacks %s", user.Role, capability))
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	userID string
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// logRequests logs one line per request.
func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		}
		if rec.userID != "" {
			fields = append(fields, zap.String("user_id", rec.userID))
		}
		if rec.status >= http.StatusInternalServerError {
			a.log.Warn("request", fields...)
			return
		}
		a.log.Info("request", fields...)
	})
}
