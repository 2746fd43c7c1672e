package common

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Profile is a saved set of download options. Explicit command-line
// flags always win over profile values.
type Profile struct {
	Variable   string  `toml:"variable"`
	Country    string  `toml:"country"`
	Dataset    string  `toml:"dataset"`
	Experiment string  `toml:"experiment"`
	Model      string  `toml:"model"`
	Resolution string  `toml:"resolution"`
	TimeRange  string  `toml:"time_range"`
	Padding    float64 `toml:"padding"`
}

// LoadProfiles reads a TOML file of named profile tables. A missing
// file is not an error, it just yields no profiles.
func LoadProfiles(path string) (map[string]Profile, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]Profile{}, nil
	}

	profiles := make(map[string]Profile)
	if _, err := toml.DecodeFile(path, &profiles); err != nil {
		return nil, fmt.Errorf("reading profiles %s: %w", path, err)
	}
	return profiles, nil
}

// Lookup returns the named profile or an error listing what exists.
func Lookup(profiles map[string]Profile, name string) (Profile, error) {
	if p, ok := profiles[name]; ok {
		return p, nil
	}

	known := make([]string, 0, len(profiles))
	for k := range profiles {
		known = append(known, k)
	}
	return Profile{}, fmt.Errorf("unknown profile %q (have %v)", name, known)
}
