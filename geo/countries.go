package geo

import (
	"github.com/ctessum/geom"
)

// Subunit is one administrative piece of a country together with its
// bounding rectangle. Min is (west, south), Max is (east, north).
type Subunit struct {
	Name string
	Rect geom.Bounds
}

type SubunitSource interface {
	Subunits(code string) ([]Subunit, error)
}

func rect(west, south, east, north float64) geom.Bounds {
	return geom.Bounds{
		Min: geom.Point{X: west, Y: south},
		Max: geom.Point{X: east, Y: north},
	}
}

// Country subunit rectangles derived from the Natural Earth 1:10m
// admin-0 map subunits (https://www.naturalearthdata.com/), keyed by
// ISO-3166 alpha-2 code.
var naturalEarth = map[string][]Subunit{
	"AR": {{Name: "Argentina", Rect: rect(-73.6, -55.1, -53.6, -21.8)}},
	"AT": {{Name: "Austria", Rect: rect(9.5, 46.4, 17.2, 49.0)}},
	"AU": {
		{Name: "Australia", Rect: rect(113.2, -39.2, 153.6, -10.7)},
		{Name: "Tasmania", Rect: rect(144.6, -43.6, 148.4, -39.6)},
	},
	"BE": {{Name: "Belgium", Rect: rect(2.5, 49.5, 6.4, 51.5)}},
	"BG": {{Name: "Bulgaria", Rect: rect(22.4, 41.2, 28.6, 44.2)}},
	"BR": {{Name: "Brazil", Rect: rect(-73.9, -33.8, -34.8, 5.3)}},
	"CA": {{Name: "Canada", Rect: rect(-141.0, 41.7, -52.6, 83.1)}},
	"CH": {{Name: "Switzerland", Rect: rect(6.0, 45.8, 10.5, 47.8)}},
	"CL": {{Name: "Chile", Rect: rect(-75.6, -55.9, -66.9, -17.5)}},
	"CN": {{Name: "China", Rect: rect(73.6, 18.2, 134.8, 53.6)}},
	"CZ": {{Name: "Czechia", Rect: rect(12.1, 48.6, 18.9, 51.1)}},
	"DE": {{Name: "Germany", Rect: rect(5.9, 47.3, 15.0, 55.1)}},
	"DK": {
		{Name: "Denmark", Rect: rect(8.1, 54.6, 12.7, 57.8)},
		{Name: "Bornholm", Rect: rect(14.7, 54.9, 15.2, 55.3)},
	},
	"EG": {{Name: "Egypt", Rect: rect(24.7, 22.0, 36.9, 31.7)}},
	"ES": {
		{Name: "Spain", Rect: rect(-9.3, 36.0, 3.3, 43.8)},
		{Name: "Canary Islands", Rect: rect(-18.2, 27.6, -13.4, 29.5)},
	},
	"FI": {{Name: "Finland", Rect: rect(20.6, 59.8, 31.6, 70.1)}},
	"FR": {
		{Name: "France", Rect: rect(-4.8, 42.3, 8.2, 51.1)},
		{Name: "Corsica", Rect: rect(8.5, 41.3, 9.6, 43.0)},
	},
	"GB": {
		{Name: "England", Rect: rect(-6.4, 49.9, 1.8, 55.8)},
		{Name: "Scotland", Rect: rect(-7.7, 54.6, -0.7, 60.8)},
		{Name: "Wales", Rect: rect(-5.3, 51.4, -2.7, 53.4)},
		{Name: "Northern Ireland", Rect: rect(-8.2, 54.0, -5.4, 55.3)},
	},
	"GR": {
		{Name: "Greece", Rect: rect(19.4, 36.4, 28.3, 41.8)},
		{Name: "Crete", Rect: rect(23.5, 34.8, 26.3, 35.7)},
	},
	"HR": {{Name: "Croatia", Rect: rect(13.5, 42.4, 19.4, 46.5)}},
	"HU": {{Name: "Hungary", Rect: rect(16.1, 45.7, 22.9, 48.6)}},
	"IE": {{Name: "Ireland", Rect: rect(-10.5, 51.4, -6.0, 55.4)}},
	"IN": {{Name: "India", Rect: rect(68.1, 6.7, 97.4, 35.5)}},
	"IS": {{Name: "Iceland", Rect: rect(-24.5, 63.4, -13.5, 66.6)}},
	"IT": {
		{Name: "Italy", Rect: rect(6.6, 37.9, 18.5, 47.1)},
		{Name: "Sicily", Rect: rect(12.4, 36.6, 15.6, 38.3)},
		{Name: "Sardinia", Rect: rect(8.1, 38.9, 9.8, 41.3)},
	},
	"JP": {{Name: "Japan", Rect: rect(129.4, 31.0, 145.8, 45.5)}},
	"LU": {{Name: "Luxembourg", Rect: rect(5.7, 49.4, 6.5, 50.2)}},
	"MX": {{Name: "Mexico", Rect: rect(-117.1, 14.5, -86.7, 32.7)}},
	"NL": {{Name: "Netherlands", Rect: rect(3.3, 50.8, 7.2, 53.6)}},
	"NO": {
		{Name: "Norway", Rect: rect(4.6, 57.9, 31.1, 71.2)},
		{Name: "Svalbard", Rect: rect(10.5, 76.4, 33.6, 80.8)},
	},
	"NZ": {
		{Name: "North Island", Rect: rect(172.6, -41.6, 178.6, -34.4)},
		{Name: "South Island", Rect: rect(166.4, -47.3, 174.4, -40.5)},
	},
	"PL": {{Name: "Poland", Rect: rect(14.1, 49.0, 24.2, 54.8)}},
	"PT": {
		{Name: "Portugal", Rect: rect(-9.5, 37.0, -6.2, 42.2)},
		{Name: "Azores", Rect: rect(-31.3, 36.9, -25.0, 39.8)},
		{Name: "Madeira", Rect: rect(-17.3, 32.4, -16.3, 33.1)},
	},
	"RO": {{Name: "Romania", Rect: rect(20.3, 43.6, 29.7, 48.3)}},
	"SE": {{Name: "Sweden", Rect: rect(11.1, 55.3, 24.2, 69.1)}},
	"SI": {{Name: "Slovenia", Rect: rect(13.4, 45.4, 16.6, 46.9)}},
	"SK": {{Name: "Slovakia", Rect: rect(16.8, 47.7, 22.6, 49.6)}},
	"TR": {{Name: "Turkey", Rect: rect(26.0, 35.8, 44.8, 42.1)}},
	"UA": {{Name: "Ukraine", Rect: rect(22.1, 44.4, 40.2, 52.4)}},
	"US": {
		{Name: "United States of America", Rect: rect(-124.8, 24.5, -66.9, 49.4)},
		{Name: "Alaska", Rect: rect(-179.1, 51.2, -129.0, 71.4)},
		{Name: "Hawaii", Rect: rect(-160.3, 18.9, -154.8, 22.2)},
	},
	"ZA": {{Name: "South Africa", Rect: rect(16.5, -34.8, 32.9, -22.1)}},
}

// NaturalEarthSource serves the bundled rectangle table.
type NaturalEarthSource struct{}

func (NaturalEarthSource) Subunits(code string) ([]Subunit, error) {
	units, ok := naturalEarth[code]
	if !ok {
		return nil, ErrUnknownCountry
	}
	return units, nil
}
