package main

import (
	"context"
	goflag "flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/1F47E/campus-nav/pkg/catalog"
	"github.com/1F47E/campus-nav/pkg/config"
	"github.com/1F47E/campus-nav/pkg/estimate"
	"github.com/1F47E/campus-nav/pkg/nav"
)

type options struct {
	configFile     string
	source         string
	path           string
	unitsPerMinute float64
	out            io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{out: out}

	rootCmd := &cobra.Command{
		Use:   "campusnav",
		Short: "Pick two places on the campus map and estimate the walk",
		Long: `Campus map navigation: select a start and a destination hotspot and get
the straight-line route with an estimated walking distance and time.`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "config.yaml", "Config file path")
	flags.StringVar(&opts.source, "source", "", "Catalog source: json, http, sqlite, postgres, snapshot")
	flags.StringVarP(&opts.path, "file", "f", "", "Catalog file or DSN (overrides catalog.path)")
	flags.Float64Var(&opts.unitsPerMinute, "units-per-minute", 0, "Walking pace in map units per minute")
	// glog registers -v, -logtostderr and friends on the standard flag set
	flags.AddGoFlagSet(goflag.CommandLine)

	rootCmd.AddCommand(
		newLocationsCmd(opts),
		newRouteCmd(opts),
		newLocateCmd(opts),
		newNavCmd(opts),
		newServeCmd(opts),
		newImportCmd(opts),
		newSnapshotCmd(opts),
	)
	return rootCmd
}

// loadConfig reads the config file and applies flag overrides
func (o *options) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return cfg, err
	}
	if o.source != "" {
		cfg.Catalog.Source = o.source
	}
	if o.path != "" {
		cfg.Catalog.Path = o.path
		cfg.Catalog.URL = o.path
	}
	if o.unitsPerMinute > 0 {
		cfg.Route.UnitsPerMinute = o.unitsPerMinute
	}
	return cfg, cfg.Validate()
}

// loadNavigator loads the catalog once. A catalog that can not be opened or
// loaded leaves the navigator with no locations.
func (o *options) loadNavigator(ctx context.Context) (*nav.Navigator, config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, cfg, err
	}

	src, closeSource, err := catalog.Open(ctx, cfg)
	if err != nil {
		glog.Warningf("failed to open catalog source: %v", err)
		src = nil
	}
	defer closeSource()

	timeout := time.Duration(cfg.Catalog.LoadTimeout) * time.Second
	c := catalog.LoadOrEmpty(ctx, src, timeout)
	return nav.New(c, estimate.NewEstimator(cfg.Route.UnitsPerMinute)), cfg, nil
}

func main() {
	// mark the standard flag set parsed; cobra parses the glog flags
	goflag.CommandLine.Parse([]string{})
	defer glog.Flush()

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		glog.Flush()
		os.Exit(1)
	}
}
