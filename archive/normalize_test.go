package archive

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
)

func writeZip(t *testing.T, path string, members map[string][]byte) {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, data := range members {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "download.zip")
	targetPath := filepath.Join(dir, "historical_mpi_2000-2010.nc")

	payload := []byte("netcdf-bytes")
	writeZip(t, archivePath, map[string][]byte{
		"provenance.json": []byte("{}"),
		"data.nc":         payload,
	})

	if err := Normalize(archivePath, targetPath); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(targetPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("target content = %q, want %q", got, payload)
	}

	if _, err := os.Stat(archivePath); !os.IsNotExist(err) {
		t.Error("archive should be removed after a successful extraction")
	}
}

func TestNormalizeNoDataMember(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "download.zip")
	targetPath := filepath.Join(dir, "out.nc")

	writeZip(t, archivePath, map[string][]byte{"readme.txt": []byte("no data here")})

	err := Normalize(archivePath, targetPath)
	if !errors.Is(err, ErrNoDataMember) {
		t.Fatalf("got %v, want ErrNoDataMember", err)
	}

	if _, err := os.Stat(targetPath); !os.IsNotExist(err) {
		t.Error("no target file may be produced without a data member")
	}
	if _, err := os.Stat(archivePath); err != nil {
		t.Error("archive should be kept for inspection on failure")
	}
}

func TestNormalizePicksFirstDataMember(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "download.zip")
	targetPath := filepath.Join(dir, "out.nc")

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, m := range []struct {
		name string
		data string
	}{
		{"a_first.nc", "first"},
		{"b_second.nc", "second"},
	} {
		f, err := w.Create(m.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(m.data)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(archivePath, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Normalize(archivePath, targetPath); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(targetPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "first" {
		t.Errorf("extracted %q, want the first member", got)
	}
}

func TestNormalizeLeavesNoScratchFiles(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "download.zip")
	targetPath := filepath.Join(dir, "out.nc")

	writeZip(t, archivePath, map[string][]byte{"data.nc": []byte("x")})

	if err := Normalize(archivePath, targetPath); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".extract") {
			t.Errorf("scratch file left behind: %s", e.Name())
		}
	}
}

func TestNormalizeBadArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "download.zip")

	if err := os.WriteFile(archivePath, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Normalize(archivePath, filepath.Join(dir, "out.nc")); err == nil {
		t.Fatal("expected an error for a corrupt archive")
	}
}
