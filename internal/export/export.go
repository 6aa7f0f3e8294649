// Package export turns a completed coverage run into the artifacts users
// consume: a JSON document, a per-site summary CSV, and a styled terminal
// table.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/signalsfoundry/coverage-simulator/core"
	"github.com/signalsfoundry/coverage-simulator/model"
)

// Document is the JSON-serializable representation of one coverage run.
type Document struct {
	RunID       string         `json:"run_id,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
	Scenario    ScenarioExport `json:"scenario"`
	Reports     []ReportExport `json:"reports"`
	Tracks      []TrackExport  `json:"tracks,omitempty"`
}

// ScenarioExport echoes the resolved inputs so a report is reproducible on
// its own, without the file or flags that produced it.
type ScenarioExport struct {
	AltitudeKm      float64      `json:"altitude_km"`
	InclinationDeg  float64      `json:"inclination_deg"`
	RAANDeg         float64      `json:"raan_deg"`
	SatelliteCount  int          `json:"satellite_count"`
	RAANSpreadDeg   float64      `json:"raan_spread_deg"`
	HorizonSeconds  int          `json:"horizon_seconds"`
	StepSeconds     int          `json:"step_seconds"`
	MinElevationDeg float64      `json:"min_elevation_deg"`
	Sites           []SiteExport `json:"sites"`
}

// SiteExport is a JSON-friendly site record.
type SiteExport struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	LatitudeDeg  float64 `json:"latitude_deg"`
	LongitudeDeg float64 `json:"longitude_deg"`
	Branch       string  `json:"branch,omitempty"`
	Region       string  `json:"region,omitempty"`
}

// ReportExport is a per-site coverage report with the site's display fields
// joined in.
type ReportExport struct {
	SiteID            string       `json:"site_id"`
	SiteName          string       `json:"site_name,omitempty"`
	Branch            string       `json:"branch,omitempty"`
	Region            string       `json:"region,omitempty"`
	PassCount         int          `json:"pass_count"`
	LongestGapSeconds int          `json:"longest_gap_seconds"`
	RedundancyIndex   float64      `json:"redundancy_index"`
	Passes            []PassExport `json:"passes"`
}

// PassExport carries both the raw step indices and the derived second
// offsets, so consumers don't need the grid to interpret a pass.
type PassExport struct {
	StartStep       int      `json:"start_step"`
	EndStep         int      `json:"end_step"`
	StartSeconds    int      `json:"start_seconds"`
	EndSeconds      int      `json:"end_seconds"`
	DurationSeconds int      `json:"duration_seconds"`
	SatelliteIDs    []string `json:"satellite_ids"`
}

// TrackExport is one satellite's sampled ground track.
type TrackExport struct {
	SatelliteID string        `json:"satellite_id"`
	Points      []PointExport `json:"points"`
}

// PointExport is a single sub-satellite point.
type PointExport struct {
	TSeconds     int     `json:"t_seconds"`
	LatitudeDeg  float64 `json:"latitude_deg"`
	LongitudeDeg float64 `json:"longitude_deg"`
	AltitudeKm   float64 `json:"altitude_km"`
}

// NewDocument converts a scenario and its run result into an exportable
// document. Ground tracks are bulky, so they are only included when asked
// for.
func NewDocument(runID string, sc core.Scenario, result *core.RunResult, includeTracks bool) *Document {
	doc := &Document{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Scenario: ScenarioExport{
			AltitudeKm:      sc.Orbit.AltitudeKm,
			InclinationDeg:  sc.Orbit.InclinationDeg,
			RAANDeg:         sc.Orbit.RAANDeg,
			SatelliteCount:  sc.SatelliteCount,
			RAANSpreadDeg:   sc.RAANSpreadDeg,
			HorizonSeconds:  sc.HorizonSeconds,
			StepSeconds:     sc.StepSeconds,
			MinElevationDeg: sc.MinElevationDeg,
		},
	}
	for _, site := range sc.Sites {
		doc.Scenario.Sites = append(doc.Scenario.Sites, SiteExport{
			ID:           site.ID,
			Name:         site.Name,
			LatitudeDeg:  site.LatDeg,
			LongitudeDeg: site.LonDeg,
			Branch:       site.Branch,
			Region:       site.Region,
		})
	}
	if result == nil {
		return doc
	}

	sitesByID := make(map[string]model.Site, len(sc.Sites))
	for _, site := range sc.Sites {
		sitesByID[site.ID] = site
	}

	step := sc.StepSeconds
	for _, report := range result.Reports {
		site := sitesByID[report.SiteID]
		re := ReportExport{
			SiteID:            report.SiteID,
			SiteName:          site.Name,
			Branch:            site.Branch,
			Region:            site.Region,
			PassCount:         report.PassCount,
			LongestGapSeconds: report.LongestGapSeconds,
			RedundancyIndex:   report.RedundancyIndex,
			Passes:            make([]PassExport, 0, len(report.Passes)),
		}
		for _, p := range report.Passes {
			re.Passes = append(re.Passes, PassExport{
				StartStep:       p.StartStep,
				EndStep:         p.EndStep,
				StartSeconds:    p.StartStep * step,
				EndSeconds:      p.EndStep * step,
				DurationSeconds: p.DurationSeconds,
				SatelliteIDs:    p.SatelliteIDs,
			})
		}
		doc.Reports = append(doc.Reports, re)
	}

	if includeTracks && result.Tracks != nil {
		for _, satID := range result.Tracks.SatelliteIDs {
			te := TrackExport{SatelliteID: satID}
			for _, p := range result.Tracks.Tracks[satID] {
				te.Points = append(te.Points, PointExport{
					TSeconds:     p.TSeconds,
					LatitudeDeg:  p.LatDeg,
					LongitudeDeg: p.LonDeg,
					AltitudeKm:   p.AltitudeKm,
				})
			}
			doc.Tracks = append(doc.Tracks, te)
		}
	}
	return doc
}

// WriteJSON writes the document as indented JSON to the given writer.
func (d *Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// WriteSummaryCSV writes one row per site with the headline coverage
// numbers. The pass list is left to the JSON export.
func (d *Document) WriteSummaryCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"site_id", "site_name", "branch", "region",
		"pass_count", "longest_gap_seconds", "redundancy_index",
	}); err != nil {
		return fmt.Errorf("WriteSummaryCSV: %w", err)
	}
	for _, r := range d.Reports {
		record := []string{
			r.SiteID,
			r.SiteName,
			r.Branch,
			r.Region,
			strconv.Itoa(r.PassCount),
			strconv.Itoa(r.LongestGapSeconds),
			strconv.FormatFloat(r.RedundancyIndex, 'f', 3, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("WriteSummaryCSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
