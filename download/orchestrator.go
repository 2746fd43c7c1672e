package download

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"boreas/archive"
	"boreas/cds"
	"boreas/geo"
	. "boreas/helper"
)

// ErrConfig reports an unusable configuration. It is raised before any
// network or filesystem interaction.
var ErrConfig = errors.New("download: invalid configuration")

// Config is everything one invocation needs. Exactly one of Dataset
// and Experiment must be set; Model is required with Experiment.
type Config struct {
	Variable   string
	Country    string
	Subunit    string
	Dataset    string // reanalysis family: single-levels, land, pressure-levels
	Experiment string // CMIP6 experiment: historical, ssp1_2_6, ssp2_4_5, ssp3_7_0
	Model      string
	Resolution string // projection temporal resolution, monthly if empty
	StartYear  int
	EndYear    int
	RootDir    string
	Padding    float64
}

func (c *Config) validate() (cds.Family, error) {
	if c.Dataset != "" && c.Experiment != "" {
		return 0, fmt.Errorf("%w: --dataset and --experiment are mutually exclusive", ErrConfig)
	}
	if c.Dataset == "" && c.Experiment == "" {
		return 0, fmt.Errorf("%w: supply either --dataset or --experiment", ErrConfig)
	}
	if c.StartYear > c.EndYear {
		return 0, fmt.Errorf("%w: year range %d-%d is reversed", ErrConfig, c.StartYear, c.EndYear)
	}

	if c.Experiment != "" {
		if c.Model == "" {
			return 0, fmt.Errorf("%w: --experiment requires --model", ErrConfig)
		}
		if c.Resolution == "" {
			c.Resolution = "monthly"
		}
		return cds.Projection, nil
	}

	family, ok := cds.ParseReanalysisFamily(c.Dataset)
	if !ok {
		return 0, fmt.Errorf("%w: unknown dataset %q", ErrConfig, c.Dataset)
	}
	return family, nil
}

// Dir returns the per-(country, variable) subdirectory of the root.
func (c *Config) Dir() string {
	return filepath.Join(c.RootDir, fmt.Sprintf("%s_%s", c.Country, c.Variable))
}

type Orchestrator struct {
	resolver *geo.Resolver
	client   cds.Retriever
}

func NewOrchestrator(resolver *geo.Resolver, client cds.Retriever) *Orchestrator {
	if resolver == nil {
		resolver = geo.NewResolver(nil)
	}
	return &Orchestrator{resolver: resolver, client: client}
}

// shouldFetch is the cache gate: a regular file on the canonical path
// means the data is already there. The check and the later write are
// not atomic, so two racing invocations may both download; the write
// side always lands via rename, so a half file is never taken as a hit.
func shouldFetch(target string) bool {
	info, err := os.Stat(target)
	return err != nil || !info.Mode().IsRegular()
}

// Run resolves the region once, then walks the requested years. All
// work is strictly sequential.
func (o *Orchestrator) Run(cfg Config) error {
	family, err := cfg.validate()
	if err != nil {
		return err
	}

	box, err := o.resolver.Resolve(cfg.Country, cfg.Subunit, cfg.Padding)
	if err != nil {
		return err
	}

	dir := cfg.Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	if family == cds.Projection {
		return o.fetchProjection(cfg, box, dir)
	}
	return o.fetchReanalysis(cfg, family, box, dir)
}

func (o *Orchestrator) fetchReanalysis(cfg Config, family cds.Family, box geo.Box, dir string) error {
	for year := cfg.StartYear; year <= cfg.EndYear; year++ {
		target := filepath.Join(dir, fmt.Sprintf("%s_%d.nc", cfg.Dataset, year))

		if !shouldFetch(target) {
			Log.Info().Msgf("[CACHE] already downloaded %s", target)
			continue
		}

		Log.Info().Msgf("[DL] %s %s %d", cfg.Dataset, cfg.Variable, year)

		dataset, req := cds.BuildReanalysis(family, cfg.Variable, year, box.Area())
		result, err := o.client.Retrieve(dataset, req)
		if err != nil {
			return fmt.Errorf("retrieving %s %d: %w", cfg.Variable, year, err)
		}
		if err := result.Download(target); err != nil {
			return fmt.Errorf("downloading %s %d: %w", cfg.Variable, year, err)
		}

		Log.Info().Msgf("[DL] saved %s", target)
	}
	return nil
}

func (o *Orchestrator) fetchProjection(cfg Config, box geo.Box, dir string) error {
	target := filepath.Join(dir, fmt.Sprintf("%s_%s_%d-%d.nc", cfg.Experiment, cfg.Model, cfg.StartYear, cfg.EndYear))

	if !shouldFetch(target) {
		Log.Info().Msgf("[CACHE] already downloaded %s", target)
		return nil
	}

	Log.Info().Msgf("[DL] %s %s %s %d-%d", cfg.Experiment, cfg.Model, cfg.Variable, cfg.StartYear, cfg.EndYear)

	dataset, req := cds.BuildProjection(cfg.Variable, cfg.Resolution, cfg.Experiment, cfg.Model, cfg.StartYear, cfg.EndYear, box.Area())
	result, err := o.client.Retrieve(dataset, req)
	if err != nil {
		return fmt.Errorf("retrieving %s %s: %w", cfg.Experiment, cfg.Model, err)
	}

	// The projection archive always arrives zipped, whatever format
	// the request asks for.
	archivePath := target + ".zip"
	if err := result.Download(archivePath); err != nil {
		return fmt.Errorf("downloading %s %s: %w", cfg.Experiment, cfg.Model, err)
	}

	if err := archive.Normalize(archivePath, target); err != nil {
		return err
	}

	Log.Info().Msgf("[DL] saved %s", target)
	return nil
}
