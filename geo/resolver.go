package geo

import (
	"errors"
	"strings"

	. "boreas/helper"
)

// FullRegion is the reserved country selector that skips lookup and
// yields the whole globe.
const FullRegion = "full"

var (
	ErrUnknownCountry = errors.New("geo: unknown country code")
	ErrEmptyRegion    = errors.New("geo: no subunit matches the given name")
)

// Box is a geographic rectangle in the (north, west, south, east) order
// the Copernicus retrieval API expects.
type Box struct {
	North float64
	West  float64
	South float64
	East  float64
}

// GlobalBox covers the whole globe.
var GlobalBox = Box{North: 90, West: -180, South: -90, East: 180}

// Area returns the box as the 4-element area encoding [north, west, south, east].
func (b Box) Area() []float64 {
	return []float64{b.North, b.West, b.South, b.East}
}

// Center returns the midpoint of the box.
func (b Box) Center() (lat, lng float64) {
	return (b.North + b.South) / 2, (b.West + b.East) / 2
}

type Resolver struct {
	source SubunitSource
}

func NewResolver(source SubunitSource) *Resolver {
	if source == nil {
		source = NaturalEarthSource{}
	}
	return &Resolver{source: source}
}

// Resolve returns the smallest rectangle enclosing all subunits of the
// country selected by code, optionally narrowed to a single named
// subunit, grown by padding degrees on every side. The reserved code
// "full" returns the whole globe and ignores padding.
//
// No clamping is applied: a padded box near a pole or the antimeridian
// can exceed the canonical coordinate ranges.
func (r *Resolver) Resolve(code, subunit string, padding float64) (Box, error) {
	if strings.EqualFold(code, FullRegion) {
		return GlobalBox, nil
	}

	units, err := r.source.Subunits(code)
	if err != nil {
		return Box{}, err
	}

	matched := 0
	box := Box{}
	for _, u := range units {
		if subunit != "" && u.Name != subunit {
			continue
		}
		if matched == 0 {
			box = Box{North: u.Rect.Max.Y, West: u.Rect.Min.X, South: u.Rect.Min.Y, East: u.Rect.Max.X}
		} else {
			if u.Rect.Max.Y > box.North {
				box.North = u.Rect.Max.Y
			}
			if u.Rect.Min.X < box.West {
				box.West = u.Rect.Min.X
			}
			if u.Rect.Min.Y < box.South {
				box.South = u.Rect.Min.Y
			}
			if u.Rect.Max.X > box.East {
				box.East = u.Rect.Max.X
			}
		}
		matched++
	}

	if matched == 0 {
		return Box{}, ErrEmptyRegion
	}

	box.North += padding
	box.East += padding
	box.South -= padding
	box.West -= padding

	Log.Debug().Msgf("[GEO] %s (%d subunits) -> N=%.2f W=%.2f S=%.2f E=%.2f", code, matched, box.North, box.West, box.South, box.East)

	return box, nil
}
