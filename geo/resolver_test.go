package geo

import (
	"errors"
	"math"
	"testing"
)

type fakeSource struct {
	units map[string][]Subunit
}

func (f fakeSource) Subunits(code string) ([]Subunit, error) {
	units, ok := f.units[code]
	if !ok {
		return nil, ErrUnknownCountry
	}
	return units, nil
}

func testSource() fakeSource {
	return fakeSource{units: map[string][]Subunit{
		"XX": {
			{Name: "Mainland", Rect: rect(-2, -1, 4, 3)},
			{Name: "Islands", Rect: rect(-6, 0, -3, 5)},
		},
	}}
}

func TestResolveAggregatesSubunits(t *testing.T) {
	r := NewResolver(testSource())

	box, err := r.Resolve("XX", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	want := Box{North: 5, West: -6, South: -1, East: 4}
	if box != want {
		t.Errorf("got %+v, want %+v", box, want)
	}
	if box.North < box.South {
		t.Errorf("north %f < south %f", box.North, box.South)
	}
}

func TestResolveSingleSubunit(t *testing.T) {
	r := NewResolver(testSource())

	box, err := r.Resolve("XX", "Islands", 0)
	if err != nil {
		t.Fatal(err)
	}

	want := Box{North: 5, West: -6, South: 0, East: -3}
	if box != want {
		t.Errorf("got %+v, want %+v", box, want)
	}
}

func TestResolvePaddingLaw(t *testing.T) {
	r := NewResolver(testSource())

	base, err := r.Resolve("XX", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range []float64{0.1, 1, 2.5} {
		padded, err := r.Resolve("XX", "", p)
		if err != nil {
			t.Fatal(err)
		}
		if padded.North != base.North+p || padded.East != base.East+p ||
			padded.South != base.South-p || padded.West != base.West-p {
			t.Errorf("padding %f: got %+v from base %+v", p, padded, base)
		}
	}
}

func TestResolveFullSentinel(t *testing.T) {
	r := NewResolver(testSource())

	for _, p := range []float64{0, 0.1, 10} {
		box, err := r.Resolve("full", "", p)
		if err != nil {
			t.Fatal(err)
		}
		if box != GlobalBox {
			t.Errorf("padding %f: got %+v, want %+v", p, box, GlobalBox)
		}
	}
}

func TestResolveEmptyRegion(t *testing.T) {
	r := NewResolver(testSource())

	_, err := r.Resolve("XX", "Atlantis", 0)
	if !errors.Is(err, ErrEmptyRegion) {
		t.Errorf("got %v, want ErrEmptyRegion", err)
	}
}

func TestResolveUnknownCountry(t *testing.T) {
	r := NewResolver(testSource())

	_, err := r.Resolve("ZZ", "", 0)
	if !errors.Is(err, ErrUnknownCountry) {
		t.Errorf("got %v, want ErrUnknownCountry", err)
	}
}

func TestNaturalEarthEnvelope(t *testing.T) {
	src := NaturalEarthSource{}
	r := NewResolver(src)

	for code := range naturalEarth {
		units, err := src.Subunits(code)
		if err != nil {
			t.Fatal(err)
		}

		box, err := r.Resolve(code, "", 0)
		if err != nil {
			t.Fatalf("%s: %v", code, err)
		}

		if box.North < box.South {
			t.Errorf("%s: north %f < south %f", code, box.North, box.South)
		}

		minW, minS := math.Inf(1), math.Inf(1)
		maxE, maxN := math.Inf(-1), math.Inf(-1)
		for _, u := range units {
			minW = math.Min(minW, u.Rect.Min.X)
			minS = math.Min(minS, u.Rect.Min.Y)
			maxE = math.Max(maxE, u.Rect.Max.X)
			maxN = math.Max(maxN, u.Rect.Max.Y)
		}
		if box.West != minW || box.South != minS || box.East != maxE || box.North != maxN {
			t.Errorf("%s: box %+v outside envelope (W=%f S=%f E=%f N=%f)", code, box, minW, minS, maxE, maxN)
		}
	}
}

func TestBoxArea(t *testing.T) {
	b := Box{North: 47.2, West: 6.5, South: 36.5, East: 18.6}
	area := b.Area()
	if len(area) != 4 || area[0] != 47.2 || area[1] != 6.5 || area[2] != 36.5 || area[3] != 18.6 {
		t.Errorf("unexpected area encoding: %v", area)
	}
}
