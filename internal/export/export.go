// Package export renders stored profiles as CSV or JSON.
package export

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"demob-match/internal/demob"
	"demob-match/internal/storage"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Header is the fixed CSV column set.
var Header = []string{
	"Employee ID",
	"Demob Date",
	"Current Project",
	"Current Role",
	"Status",
	"Technical Skills",
	"Preferred Locations",
	"Willing to Relocate",
	"Performance Rating",
	"Years with Company",
	"Retention Priority",
}

const listSeparator = "; "

// ParseFormat defaults to JSON.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want json or csv)", s)
	}
}

// Row flattens a profile into Header order.
func Row(p *storage.DemobProfile) []string {
	var project, role string
	if p.CurrentProject != nil {
		project, role = p.CurrentProject.Name, p.CurrentProject.Role
	}
	return []string{
		p.EmployeeID,
		p.DemobDate.String(),
		project,
		role,
		p.CurrentStatus,
		strings.Join(p.SkillInventory.TechnicalSkills, listSeparator),
		strings.Join(p.MobilityPreferences.PreferredLocations, listSeparator),
		strconv.FormatBool(p.MobilityPreferences.WillingToRelocate),
		strconv.FormatFloat(p.InternalMetrics.PerformanceRating, 'f', -1, 64),
		strconv.FormatFloat(p.InternalMetrics.YearsWithCompany, 'f', -1, 64),
		demob.PriorityOf(p),
	}
}

// WriteCSV writes the header and one row per profile. Every cell is
// double-quoted; embedded quotes are doubled.
func WriteCSV(w io.Writer, profiles []*storage.DemobProfile) error {
	bw := bufio.NewWriter(w)
	if err := writeRecord(bw, Header); err != nil {
		return err
	}
	for _, p := range profiles {
		if err := writeRecord(bw, Row(p)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeRecord(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		w.WriteByte('"')
	}
	_, err := w.WriteString("\r\n")
	return err
}

// Document is the JSON export body. Matches is nil unless requested; a
// requested but empty set still encodes as [].
type Document struct {
	ExportedAt time.Time               `json:"exported_at"`
	Total      int                     `json:"total"`
	Profiles   []*storage.DemobProfile `json:"profiles"`
	Matches    *[]*storage.MatchRecord `json:"matches,omitempty"`
}

func WriteJSON(w io.Writer, doc Document) error {
	if doc.Profiles == nil {
		doc.Profiles = []*storage.DemobProfile{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Source is the read side of the store used by Load.
type Source interface {
	ListProfiles(ctx context.Context, limit int) ([]*storage.DemobProfile, error)
	ListMatches(ctx context.Context, limit int) ([]*storage.MatchRecord, error)
}

// Load fetches profiles and, when includeMatches is set, match records in
// parallel.
func Load(ctx context.Context, src Source, includeMatches bool, now time.Time) (Document, error) {
	doc := Document{ExportedAt: now.UTC()}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profiles, err := src.ListProfiles(gctx, storage.MaxListLimit)
		if err != nil {
			return fmt.Errorf("failed to load profiles: %w", err)
		}
		doc.Profiles = profiles
		return nil
	})
	if includeMatches {
		g.Go(func() error {
			matches, err := src.ListMatches(gctx, storage.MaxListLimit)
			if err != nil {
				return fmt.Errorf("failed to load matches: %w", err)
			}
			if matches == nil {
				matches = []*storage.MatchRecord{}
			}
			doc.Matches = &matches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Document{}, err
	}
	doc.Total = len(doc.Profiles)
	return doc, nil
}
