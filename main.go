package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"boreas/cds"
	"boreas/common"
	"boreas/download"
	"boreas/geo"
	. "boreas/helper"
	"boreas/inventory"
	"boreas/server"

	"github.com/urfave/cli/v2"
)

func main() {

	app := &cli.App{
		Name:      "boreas - A Copernicus Climate Data Downloader",
		UsageText: "boreas [global options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "variable",
				Aliases: []string{"v"},
				Value:   "total_precipitation",
				Usage:   "CDS variable name",
				EnvVars: []string{"BOREAS_VARIABLE"},
			},
			&cli.StringFlag{
				Name:    "country",
				Aliases: []string{"c"},
				Value:   "IT",
				Usage:   "Country to restrict (2-char code, subunit as in ES:Spain, or 'full')",
				EnvVars: []string{"BOREAS_COUNTRY"},
			},
			&cli.StringFlag{
				Name:    "dataset",
				Aliases: []string{"ds"},
				Usage:   "ERA5 dataset: single-levels, land, pressure-levels",
				EnvVars: []string{"BOREAS_DATASET"},
			},
			&cli.StringFlag{
				Name:    "experiment",
				Aliases: []string{"x"},
				Usage:   "CMIP6 experiment: historical, ssp1_2_6, ssp2_4_5, ssp3_7_0",
				EnvVars: []string{"BOREAS_EXPERIMENT"},
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "CMIP6 model (required with --experiment)",
				EnvVars: []string{"BOREAS_MODEL"},
			},
			&cli.StringFlag{
				Name:    "resolution",
				Usage:   "CMIP6 temporal resolution: monthly or daily",
				EnvVars: []string{"BOREAS_RESOLUTION"},
			},
			&cli.StringFlag{
				Name:    "time-range",
				Aliases: []string{"y"},
				Value:   "2000-2100",
				Usage:   "Inclusive year range as Y1-Y2",
				EnvVars: []string{"BOREAS_TIME_RANGE"},
			},
			&cli.Float64Flag{
				Name:    "padding",
				Value:   0.1,
				Usage:   "Degrees added around the resolved bounding box (~10km per 0.1)",
				EnvVars: []string{"BOREAS_PADDING"},
			},
			&cli.StringFlag{
				Name:    "folder",
				Aliases: []string{"o"},
				Usage:   "Output folder (default: /dataNfs if present, else ~/copernicus_data)",
				EnvVars: []string{"BOREAS_FOLDER"},
			},
			&cli.StringFlag{
				Name:    "profile",
				Usage:   "Load download options from a named profile",
				EnvVars: []string{"BOREAS_PROFILE"},
			},
			&cli.StringFlag{
				Name:    "profiles-file",
				Value:   "profiles.toml",
				Usage:   "TOML file holding named profiles",
				EnvVars: []string{"BOREAS_PROFILES_FILE"},
			},
			&cli.BoolFlag{
				Name:  "list",
				Usage: "List the cached files and exit",
			},
			&cli.BoolFlag{
				Name:    "http",
				Usage:   "Start the HTTP inventory server instead of downloading",
				EnvVars: []string{"START_HTTP"},
			},
			&cli.StringFlag{
				Name:    "http-port",
				Value:   "8081",
				Usage:   "HTTP server port",
				EnvVars: []string{"HTTP_PORT"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log the assembled request fields",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		Log.Error().Err(err).Msg("error")
		os.Exit(1)
	}
}

func run(cCtx *cli.Context) error {
	if cCtx.Bool("verbose") {
		SetVerbose()
	}

	cfg, err := buildConfig(cCtx)
	if err != nil {
		return err
	}

	resolver := geo.NewResolver(nil)

	if cCtx.Bool("list") {
		return list(cfg.RootDir)
	}

	if cCtx.Bool("http") {
		server.StartServer(cCtx.String("http-port"), cfg.RootDir, resolver)
		return nil
	}

	if !common.KnownVariable(cfg.Variable) {
		Log.Warn().Msgf("variable %q is not in the local catalogue, passing it through", cfg.Variable)
	}

	client := cds.NewClient(cds.ClientOptions{
		Credentials: cds.CredentialsFromEnv(),
	})

	return download.NewOrchestrator(resolver, client).Run(cfg)
}

func buildConfig(cCtx *cli.Context) (download.Config, error) {
	cfg := download.Config{
		Variable:   cCtx.String("variable"),
		Dataset:    cCtx.String("dataset"),
		Experiment: cCtx.String("experiment"),
		Model:      cCtx.String("model"),
		Resolution: cCtx.String("resolution"),
		Padding:    cCtx.Float64("padding"),
	}
	timeRange := cCtx.String("time-range")
	country := cCtx.String("country")

	if name := cCtx.String("profile"); name != "" {
		profiles, err := common.LoadProfiles(cCtx.String("profiles-file"))
		if err != nil {
			return cfg, err
		}
		p, err := common.Lookup(profiles, name)
		if err != nil {
			return cfg, err
		}

		// Explicit flags win over profile values.
		apply := func(set bool, dst *string, val string) {
			if !set && val != "" {
				*dst = val
			}
		}
		apply(cCtx.IsSet("variable"), &cfg.Variable, p.Variable)
		apply(cCtx.IsSet("dataset"), &cfg.Dataset, p.Dataset)
		apply(cCtx.IsSet("experiment"), &cfg.Experiment, p.Experiment)
		apply(cCtx.IsSet("model"), &cfg.Model, p.Model)
		apply(cCtx.IsSet("resolution"), &cfg.Resolution, p.Resolution)
		apply(cCtx.IsSet("country"), &country, p.Country)
		apply(cCtx.IsSet("time-range"), &timeRange, p.TimeRange)
		if !cCtx.IsSet("padding") && p.Padding != 0 {
			cfg.Padding = p.Padding
		}
	}

	cfg.Country, cfg.Subunit, _ = strings.Cut(country, ":")

	y1, y2, err := parseTimeRange(timeRange)
	if err != nil {
		return cfg, err
	}
	cfg.StartYear, cfg.EndYear = y1, y2

	cfg.RootDir, err = cacheLocation(cCtx.String("folder"))
	if err != nil {
		return cfg, err
	}

	Log.Info().Msgf("Variable:  %s", cfg.Variable)
	Log.Info().Msgf("Country:   %s %s", cfg.Country, cfg.Subunit)
	Log.Info().Msgf("Years:     %d - %d", cfg.StartYear, cfg.EndYear)
	Log.Info().Msgf("Folder:    %s", cfg.RootDir)

	return cfg, nil
}

func parseTimeRange(s string) (int, int, error) {
	first, second, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("time range %q is not of the form Y1-Y2", s)
	}
	y1, err := strconv.Atoi(first)
	if err != nil {
		return 0, 0, fmt.Errorf("time range %q: %w", s, err)
	}
	y2, err := strconv.Atoi(second)
	if err != nil {
		return 0, 0, fmt.Errorf("time range %q: %w", s, err)
	}
	return y1, y2, nil
}

// cacheLocation picks the output root: the shared /dataNfs mount when
// it exists, the user's home otherwise.
func cacheLocation(folder string) (string, error) {
	if folder == "" {
		if info, err := os.Stat("/dataNfs"); err == nil && info.IsDir() {
			folder = "/dataNfs"
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			folder = filepath.Join(home, "copernicus_data")
		}
	}

	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", err
	}
	return folder, nil
}

func list(root string) error {
	groups, err := inventory.Scan(root)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		Log.Info().Msg("cache is empty")
		return nil
	}

	for _, g := range groups {
		Log.Info().Msgf("%s %s", g.Country, g.Variable)
		for _, f := range g.Files {
			Log.Info().Msgf("  %-40s %d bytes", f.Name, f.SizeBytes)
		}
	}
	return nil
}
