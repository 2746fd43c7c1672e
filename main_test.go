package main

import "testing"

func TestParseTimeRange(t *testing.T) {
	cases := []struct {
		in     string
		y1, y2 int
		ok     bool
	}{
		{"2000-2100", 2000, 2100, true},
		{"2020-2020", 2020, 2020, true},
		{"1999", 0, 0, false},
		{"then-now", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, c := range cases {
		y1, y2, err := parseTimeRange(c.in)
		if c.ok && (err != nil || y1 != c.y1 || y2 != c.y2) {
			t.Errorf("%q: got %d-%d, %v", c.in, y1, y2, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%q: expected an error", c.in)
		}
	}
}

func TestCacheLocationExplicit(t *testing.T) {
	dir := t.TempDir() + "/nested/cache"

	got, err := cacheLocation(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("got %q, want %q", got, dir)
	}
}
