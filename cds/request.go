package cds

import (
	"fmt"
	"sort"
	"strconv"

	. "boreas/helper"
)

// Family selects one Copernicus dataset family. Each family has its own
// request-building rules.
type Family int

const (
	SingleLevels Family = iota
	Land
	PressureLevels
	Projection
)

var reanalysisSuffix = map[Family]string{
	SingleLevels:   "single-levels",
	Land:           "land",
	PressureLevels: "pressure-levels",
}

// ProjectionDataset is the fixed identifier of the CMIP6 archive.
const ProjectionDataset = "projections-cmip6"

func ParseReanalysisFamily(s string) (Family, bool) {
	for f, suffix := range reanalysisSuffix {
		if s == suffix {
			return f, true
		}
	}
	return 0, false
}

func (f Family) String() string {
	if suffix, ok := reanalysisSuffix[f]; ok {
		return suffix
	}
	return "cmip6"
}

// Request is the field mapping sent to the retrieval API. Values are
// either single strings or string/float slices.
type Request map[string]any

func months() []string {
	out := make([]string, 12)
	for m := 1; m <= 12; m++ {
		out[m-1] = fmt.Sprintf("%02d", m)
	}
	return out
}

// days always enumerates 01-31; the retrieval service tolerates
// calendar-invalid month/day combinations.
func days() []string {
	out := make([]string, 31)
	for d := 1; d <= 31; d++ {
		out[d-1] = fmt.Sprintf("%02d", d)
	}
	return out
}

func hours() []string {
	out := make([]string, 24)
	for h := 0; h < 24; h++ {
		out[h] = fmt.Sprintf("%02d:00", h)
	}
	return out
}

func yearRange(y1, y2 int) []string {
	out := make([]string, 0, y2-y1+1)
	for y := y1; y <= y2; y++ {
		out = append(out, strconv.Itoa(y))
	}
	return out
}

// BuildReanalysis assembles the request for one year of an ERA5 family.
// The dataset identifier is "reanalysis-era5-" plus the family suffix.
func BuildReanalysis(family Family, variable string, year int, area []float64) (string, Request) {
	dataset := "reanalysis-era5-" + reanalysisSuffix[family]

	req := Request{
		"product_type":    "reanalysis",
		"variable":        variable,
		"year":            []string{strconv.Itoa(year)},
		"month":           months(),
		"day":             days(),
		"time":            hours(),
		"data_format":     "netcdf",
		"download_format": "unarchived",
		"area":            area,
	}

	echo(dataset, req)
	return dataset, req
}

// BuildProjection assembles the request for an inclusive year range of
// a CMIP6 experiment. Days are enumerated only at daily resolution, and
// no format fields are sent: the projection archive is always delivered
// as a zip regardless of the requested format.
func BuildProjection(variable, resolution, experiment, model string, y1, y2 int, area []float64) (string, Request) {
	req := Request{
		"variable":            variable,
		"temporal_resolution": resolution,
		"experiment":          experiment,
		"model":               model,
		"year":                yearRange(y1, y2),
		"month":               months(),
		"time":                hours(),
		"area":                area,
	}
	if resolution == "daily" {
		req["day"] = days()
	}

	echo(ProjectionDataset, req)
	return ProjectionDataset, req
}

func echo(dataset string, req Request) {
	keys := make([]string, 0, len(req))
	for k := range req {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		Log.Debug().Msgf("[REQ] %s %-20s: %v", dataset, k, req[k])
	}
}
