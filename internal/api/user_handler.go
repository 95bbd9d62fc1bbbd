package api

import (
	"net/http"

	"go.uber.org/zap"

	"demob-match/internal/auth"
)

type PermissionsResponse struct {
	UserID      string   `json:"user_id"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// GetUserPermissionsHandler returns the caller's role and capabilities
// @Summary Caller permissions
// @Description First access creates the user with the default role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PermissionsResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/getUserPermissions [get]
func (a *API) GetUserPermissionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	userID := auth.UserID(r.Context())
	user, created, err := a.db.EnsureUser(r.Context(), userID, a.defaultRole)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if created {
		a.log.Info("user provisioned", zap.String("user_id", userID), zap.String("role", user.Role))
	}
	writeJSON(w, http.StatusOK, PermissionsResponse{
		UserID:      user.UserID,
		Role:        user.Role,
		Permissions: auth.Permissions(user.Role),
	})
}
