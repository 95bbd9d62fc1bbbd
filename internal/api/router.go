package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"demob-match/internal/auth"
)

func NewRouter(a *API) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Health check for load balancers
	mux.HandleFunc("/health", a.HealthHandler)

	guarded := func(capability string, h http.HandlerFunc) http.HandlerFunc {
		return a.requireAuth(a.requireCapability(capability, h))
	}

	// Profiles
	mux.HandleFunc("/api/createDemobProfile", guarded(auth.CanCreateProfiles, a.CreateDemobProfileHandler))
	mux.HandleFunc("/api/getDemobProfiles", guarded(auth.CanViewProfiles, a.GetDemobProfilesHandler))
	mux.HandleFunc("/api/getDemobProfile", guarded(auth.CanViewProfiles, a.GetDemobProfileHandler))
	mux.HandleFunc("/api/updateDemobProfile", guarded(auth.CanCreateProfiles, a.UpdateDemobProfileHandler))
	mux.HandleFunc("/api/bulkImportDemobProfiles", guarded(auth.CanCreateProfiles, a.BulkImportDemobProfilesHandler))

	// Matching
	mux.HandleFunc("/api/matchDemobCandidates", guarded(auth.CanRunMatching, a.MatchDemobCandidatesHandler))
	mux.HandleFunc("/api/getDemobMatches", guarded(auth.CanViewProfiles, a.GetDemobMatchesHandler))
	mux.HandleFunc("/api/updateMatchStatus", guarded(auth.CanUpdateMatches, a.UpdateMatchStatusHandler))

	// Projects & positions
	mux.HandleFunc("/api/createProject", guarded(auth.CanRunMatching, a.CreateProjectHandler))
	mux.HandleFunc("/api/createPosition", guarded(auth.CanRunMatching, a.CreatePositionHandler))

	// Reporting
	mux.HandleFunc("/api/getDemobAnalytics", guarded(auth.CanViewAnalytics, a.GetDemobAnalyticsHandler))
	mux.HandleFunc("/api/exportDemobData", guarded(auth.CanExportData, a.ExportDemobDataHandler))

	// Users
	mux.HandleFunc("/api/getUserPermissions", a.requireAuth(a.GetUserPermissionsHandler))

	return a.logRequests(mux)
}
