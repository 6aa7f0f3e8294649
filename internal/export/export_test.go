package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/signalsfoundry/coverage-simulator/core"
	"github.com/signalsfoundry/coverage-simulator/model"
)

func runFixture(t *testing.T) (core.Scenario, *core.RunResult) {
	t.Helper()
	sc := core.NewScenario()
	sc.Orbit = model.OrbitParameters{AltitudeKm: 550, InclinationDeg: 97}
	sc.SatelliteCount = 1
	sc.HorizonSeconds = 5400
	sc.StepSeconds = 60
	sc.Sites = []model.Site{
		{ID: "site-001", Name: "Fort Liberty", LatDeg: 0, LonDeg: 0, Branch: "Army", Region: "Southeast"},
		{ID: "site-002", Name: "High North", LatDeg: 80, LonDeg: 0, Branch: "Space Force", Region: "Arctic"},
	}

	result, err := core.NewPipeline().Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("pipeline run failed: %v", err)
	}
	return sc, result
}

func TestNewDocumentEchoesScenarioAndJoinsSites(t *testing.T) {
	sc, result := runFixture(t)
	doc := NewDocument("run-123", sc, result, false)

	if doc.RunID != "run-123" {
		t.Errorf("RunID = %q, want run-123", doc.RunID)
	}
	if doc.Scenario.AltitudeKm != 550 || doc.Scenario.SatelliteCount != 1 || doc.Scenario.StepSeconds != 60 {
		t.Errorf("scenario echo = %+v, want the run inputs", doc.Scenario)
	}
	if len(doc.Scenario.Sites) != 2 || doc.Scenario.Sites[0].ID != "site-001" {
		t.Fatalf("scenario sites = %+v, want both input sites", doc.Scenario.Sites)
	}

	if len(doc.Reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(doc.Reports))
	}
	first := doc.Reports[0]
	if first.SiteName != "Fort Liberty" || first.Branch != "Army" || first.Region != "Southeast" {
		t.Errorf("report join = %+v, want the Fort Liberty fields", first)
	}
	if first.PassCount < 1 || len(first.Passes) != first.PassCount {
		t.Fatalf("report passes = %+v, want at least one with matching count", first)
	}

	// Derived offsets follow directly from the step size.
	p := first.Passes[0]
	if p.StartSeconds != p.StartStep*60 || p.EndSeconds != p.EndStep*60 {
		t.Errorf("pass offsets %+v do not match their steps", p)
	}

	if doc.Tracks != nil {
		t.Errorf("tracks included without being requested")
	}
}

func TestNewDocumentIncludesTracksOnRequest(t *testing.T) {
	sc, result := runFixture(t)
	doc := NewDocument("", sc, result, true)

	if len(doc.Tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(doc.Tracks))
	}
	track := doc.Tracks[0]
	if track.SatelliteID != "SAT-1" {
		t.Errorf("track satellite = %q, want SAT-1", track.SatelliteID)
	}
	if want := 5400/60 + 1; len(track.Points) != want {
		t.Fatalf("track has %d points, want %d", len(track.Points), want)
	}
	if track.Points[1].TSeconds != 60 {
		t.Errorf("second point at t=%d, want 60", track.Points[1].TSeconds)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	sc, result := runFixture(t)
	doc := NewDocument("run-456", sc, result, false)

	var buf bytes.Buffer
	if err := doc.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "  \"run_id\"") {
		t.Error("output is not indented")
	}

	var decoded Document
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.RunID != "run-456" || len(decoded.Reports) != 2 {
		t.Errorf("decoded document = %+v, want the original run", decoded)
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	sc, result := runFixture(t)
	doc := NewDocument("", sc, result, false)

	var buf bytes.Buffer
	if err := doc.WriteSummaryCSV(&buf); err != nil {
		t.Fatalf("WriteSummaryCSV returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 { // header + two sites
		t.Fatalf("got %d CSV records, want 3", len(records))
	}
	if records[0][0] != "site_id" || records[0][4] != "pass_count" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "site-001" || records[1][1] != "Fort Liberty" {
		t.Errorf("first row = %v, want the site-001 summary", records[1])
	}
}

func TestRenderSummary(t *testing.T) {
	sc, result := runFixture(t)
	doc := NewDocument("run-789", sc, result, false)

	out := RenderSummary(doc)
	for _, want := range []string{"Coverage Summary", "run-789", "Fort Liberty", "High North", "passes across 2 sites"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}

	empty := NewDocument("", core.Scenario{}, nil, false)
	if out := RenderSummary(empty); !strings.Contains(out, "No sites") {
		t.Errorf("empty summary = %q, want a no-sites notice", out)
	}
}
