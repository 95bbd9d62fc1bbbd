package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"demob-match/internal/analytics"
	"demob-match/internal/apierr"
	"demob-match/internal/export"
	"demob-match/internal/storage"
)

// GetDemobAnalyticsHandler builds the analytics report
// @Summary Demob analytics
// @Description Placement rate, skills gap, mobility mix, retention priority distribution and pipeline health. Date filters apply to profile demob dates, project_id to match records.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param project_id query string false "Project ID"
// @Success 200 {object} analytics.Report
// @Failure 400 {object} ErrorResponse
// @Router /api/getDemobAnalytics [get]
func (a *API) GetDemobAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	q := r.URL.Query()
	start, err := storage.ParseDate(q.Get("start_date"))
	if err != nil {
		a.writeError(w, r, apierr.Validation("start_date: %v", err))
		return
	}
	end, err := storage.ParseDate(q.Get("end_date"))
	if err != nil {
		a.writeError(w, r, apierr.Validation("end_date: %v", err))
		return
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start.Time) {
		a.writeError(w, r, apierr.Validation("end_date is before start_date"))
		return
	}

	report, err := analytics.Build(r.Context(), a.db, analytics.Filters{
		Start:     start,
		End:       end,
		ProjectID: strings.TrimSpace(q.Get("project_id")),
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ExportDemobDataHandler downloads all profiles
// @Summary Export demob data
// @Description CSV has a fixed 11-column header with every cell quoted. include_matches adds match records to the JSON export.
// @Tags export
// @Produce json
// @Produce text/csv
// @Security BearerAuth
// @Param format query string false "json (default) or csv"
// @Param include_matches query bool false "Include match records (JSON only)"
// @Success 200 {object} export.Document
// @Failure 400 {object} ErrorResponse
// @Router /api/exportDemobData [get]
func (a *API) ExportDemobDataHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	q := r.URL.Query()
	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		a.writeError(w, r, apierr.Validation("%v", err))
		return
	}
	includeMatches := false
	if v := q.Get("include_matches"); v != "" {
		if includeMatches, err = strconv.ParseBool(v); err != nil {
			a.writeError(w, r, apierr.Validation("include_matches must be true or false"))
			return
		}
	}

	now := a.now()
	doc, err := export.Load(r.Context(), a.db, includeMatches && format == export.FormatJSON, now)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("demob_export_%s.%s", now.UTC().Format(storage.DateLayout), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if format == export.FormatCSV {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		if err := export.WriteCSV(w, doc.Profiles); err != nil {
			a.log.Warn("csv export interrupted", zap.Error(err))
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := export.WriteJSON(w, doc); err != nil {
		a.log.Warn("json export interrupted", zap.Error(err))
	}
}
