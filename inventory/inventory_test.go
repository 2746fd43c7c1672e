package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/cdf"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "IT_total_precipitation", "single-levels_2020.nc"), "aaaa")
	writeFile(t, filepath.Join(root, "IT_total_precipitation", "single-levels_2021.nc"), "bb")
	writeFile(t, filepath.Join(root, "ES_2m_temperature", "land_1999.nc"), "c")
	writeFile(t, filepath.Join(root, "IT_total_precipitation", "notes.txt"), "ignored")
	writeFile(t, filepath.Join(root, "unrelated", "x.nc"), "no underscore split? has one")
	if err := os.MkdirAll(filepath.Join(root, "plain"), 0755); err != nil {
		t.Fatal(err)
	}

	groups, err := Scan(root)
	if err != nil {
		t.Fatal(err)
	}

	if len(groups) != 2 {
		t.Fatalf("got %d groups: %+v", len(groups), groups)
	}

	if groups[0].Country != "ES" || groups[0].Variable != "2m_temperature" || len(groups[0].Files) != 1 {
		t.Errorf("unexpected first group: %+v", groups[0])
	}

	it := groups[1]
	if it.Country != "IT" || it.Variable != "total_precipitation" {
		t.Fatalf("unexpected second group: %+v", it)
	}
	if len(it.Files) != 2 || it.Files[0].Name != "single-levels_2020.nc" || it.Files[0].SizeBytes != 4 {
		t.Errorf("unexpected files: %+v", it.Files)
	}
}

func TestScanMissingRoot(t *testing.T) {
	groups, err := Scan(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 0 {
		t.Errorf("got %d groups from a missing root", len(groups))
	}
}

func TestDescribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "land_2001.nc")

	h := cdf.NewHeader([]string{"time", "latitude", "longitude"}, []int{2, 3, 4})
	h.AddVariable("t2m", []string{"time", "latitude", "longitude"}, []float32{0})
	h.AddVariable("tp", []string{"time", "latitude", "longitude"}, []float32{0})
	h.Define()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	cf, err := cdf.Create(f, h)
	if err != nil {
		t.Fatal(err)
	}
	data := make([]float32, 2*3*4)
	for _, v := range []string{"t2m", "tp"} {
		w := cf.Writer(v, []int{0, 0, 0}, []int{2, 3, 4})
		if _, err := w.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	vars, err := Describe(path)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]bool{"t2m": false, "tp": false}
	for _, v := range vars {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for v, seen := range want {
		if !seen {
			t.Errorf("variable %s missing from %v", v, vars)
		}
	}
}

func TestDescribeUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.nc")
	writeFile(t, path, "this is not netcdf")

	if _, err := Describe(path); err == nil {
		t.Error("expected an error for an unparsable file")
	}
}
