package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ctessum/cdf"
)

// File is one cached download.
type File struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
}

// Group is the cache content of one (country, variable) directory.
type Group struct {
	Country  string `json:"country"`
	Variable string `json:"variable"`
	Files    []File `json:"files"`
}

// Scan walks the cache root and reports every .nc file grouped by the
// {country}_{variable} directory convention. Foreign files and
// directories are ignored.
func Scan(root string) ([]Group, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return []Group{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	groups := make([]Group, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		// Country codes carry no underscore; everything after the
		// first one is the variable name.
		country, variable, ok := strings.Cut(entry.Name(), "_")
		if !ok {
			continue
		}

		dir := filepath.Join(root, entry.Name())
		files, err := scanDir(dir)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			continue
		}

		groups = append(groups, Group{Country: country, Variable: variable, Files: files})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Country != groups[j].Country {
			return groups[i].Country < groups[j].Country
		}
		return groups[i].Variable < groups[j].Variable
	})

	return groups, nil
}

func scanDir(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".nc") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		files = append(files, File{
			Name:      entry.Name(),
			Path:      filepath.Join(dir, entry.Name()),
			SizeBytes: info.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Describe lists the variables inside a cached NetCDF file. Files the
// classic-format reader cannot parse yield an error, never a deletion.
func Describe(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cf, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	vars := cf.Header.Variables()
	sort.Strings(vars)
	return vars, nil
}
