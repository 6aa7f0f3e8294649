// core/sites_loader.go
package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signalsfoundry/coverage-simulator/model"
)

// siteColumns maps header names to field positions. Branch and region are
// optional; -1 marks a column that is not present.
type siteColumns struct {
	name   int
	lat    int
	lon    int
	branch int
	region int
}

// LoadSites reads ground sites from a CSV with a header row. The column
// order is free; headers are matched case-insensitively and a few common
// spellings are accepted (Latitude / latitude_deg / lat, and so on). Site
// IDs are minted from row order, so the same file always yields the same
// IDs.
//
// Unlike the scenario loader this one validates each record as it goes:
// a CSV row is the raw, hand-maintained input of the whole engine, and a
// bad coordinate is much easier to fix when the error names the row.
func LoadSites(r io.Reader) ([]model.Site, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("LoadSites: %w: no header row", ErrMalformedSiteRecord)
	}
	if err != nil {
		return nil, fmt.Errorf("LoadSites: %w: %v", ErrMalformedSiteRecord, err)
	}
	cols, err := resolveSiteColumns(header)
	if err != nil {
		return nil, err
	}

	var sites []model.Site
	for row := 2; ; row++ { // row 1 is the header
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("LoadSites: %w: row %d: %v", ErrMalformedSiteRecord, row, err)
		}

		site, err := cols.site(record, len(sites)+1)
		if err != nil {
			return nil, fmt.Errorf("LoadSites: row %d: %w", row, err)
		}
		sites = append(sites, site)
	}
	return sites, nil
}

func resolveSiteColumns(header []string) (siteColumns, error) {
	cols := siteColumns{name: -1, lat: -1, lon: -1, branch: -1, region: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name", "site", "site_name", "base", "base_name":
			cols.name = i
		case "latitude", "latitude_deg", "lat":
			cols.lat = i
		case "longitude", "longitude_deg", "lon", "lng":
			cols.lon = i
		case "branch", "service", "service_branch":
			cols.branch = i
		case "region":
			cols.region = i
		}
	}
	switch {
	case cols.name < 0:
		return cols, fmt.Errorf("LoadSites: %w: header has no name column", ErrMalformedSiteRecord)
	case cols.lat < 0:
		return cols, fmt.Errorf("LoadSites: %w: header has no latitude column", ErrMalformedSiteRecord)
	case cols.lon < 0:
		return cols, fmt.Errorf("LoadSites: %w: header has no longitude column", ErrMalformedSiteRecord)
	}
	return cols, nil
}

func (c siteColumns) site(record []string, ordinal int) (model.Site, error) {
	lat, err := parseCoordinate(record[c.lat], "latitude")
	if err != nil {
		return model.Site{}, err
	}
	lon, err := parseCoordinate(record[c.lon], "longitude")
	if err != nil {
		return model.Site{}, err
	}

	site := model.Site{
		ID:     fmt.Sprintf("site-%03d", ordinal),
		Name:   strings.TrimSpace(record[c.name]),
		LatDeg: lat,
		LonDeg: lon,
	}
	if c.branch >= 0 {
		site.Branch = strings.TrimSpace(record[c.branch])
	}
	if c.region >= 0 {
		site.Region = strings.TrimSpace(record[c.region])
	}

	if err := ValidateSite(site); err != nil {
		return model.Site{}, err
	}
	return site, nil
}

func parseCoordinate(raw, what string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrMalformedSiteRecord, what, raw)
	}
	return v, nil
}
