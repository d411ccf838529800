package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/1F47E/campus-nav/pkg/catalog"
	"github.com/1F47E/campus-nav/pkg/models"
	"github.com/1F47E/campus-nav/pkg/render"
	"github.com/1F47E/campus-nav/pkg/rtree"
	"github.com/1F47E/campus-nav/pkg/server"
)

func newLocationsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List the selectable campus locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _, err := opts.loadNavigator(cmd.Context())
			if err != nil {
				return err
			}

			p := render.NewPrinter(opts.out)
			p.Title("Campus Locations")
			p.Hotspots(n.Hotspots())
			p.Stat("Locations", n.Catalog().Len())
			p.Stat("Selectable", len(n.Catalog().Selectable()))
			return nil
		},
	}
}

func newRouteCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "route <start-id> <destination-id>",
		Short: "Select a start and destination and show the route",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, cfg, err := opts.loadNavigator(cmd.Context())
			if err != nil {
				return err
			}

			for _, id := range args {
				if err := n.Click(id); err != nil {
					return fmt.Errorf("cannot select %q: %w", id, err)
				}
			}

			if asJSON {
				enc := json.NewEncoder(opts.out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Route    interface{} `json:"route"`
					Estimate interface{} `json:"estimate"`
				}{n.Route(), n.Estimate()})
			}

			p := render.NewPrinter(opts.out)
			p.Title("Campus Map & Navigation")
			p.Map(render.Draw(cfg.Map.Width, cfg.Map.Height, n.Hotspots(), n.Route()))
			p.Subtitle("Route")
			p.Panel(n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the route as JSON")
	return cmd
}

func newLocateCmd(opts *options) *cobra.Command {
	var radius float64

	cmd := &cobra.Command{
		Use:   "locate <x> <y>",
		Short: "Resolve a map point to the hotspot under it and nearby locations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}
			y, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid y: %w", err)
			}

			n, _, err := opts.loadNavigator(cmd.Context())
			if err != nil {
				return err
			}
			index := rtree.NewHotspotIndex()
			index.Index(n.Catalog().Selectable())

			pt := models.Point{X: x, Y: y}
			p := render.NewPrinter(opts.out)
			if loc := index.HitTest(pt); loc != nil {
				p.Success(fmt.Sprintf("Hotspot: %s (%s)", loc.Label(), loc.ID))
			} else {
				p.Info("No hotspot at this point")
			}
			if loc := index.Nearest(pt); loc != nil {
				p.Stat("Nearest", fmt.Sprintf("%s (%s)", loc.Label(), loc.ID))
			}
			if radius > 0 {
				for _, loc := range index.Within(pt, radius) {
					p.Stat("Within radius", fmt.Sprintf("%s (%s)", loc.Label(), loc.ID))
				}
			}
			return nil
		},
	}
	cmd.Flags().Float64VarP(&radius, "radius", "r", 0, "Also list locations whose center is within this distance")
	return cmd
}

func newServeCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the navigator as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			n, cfg, err := opts.loadNavigator(ctx)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(n),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				glog.Infof("serving %d locations on %s", len(n.Catalog().Selectable()), addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides server.addr)")
	return cmd
}

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <locations.json>",
		Short: "Load location records from a JSON file into the SQL catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Catalog.Source != "sqlite" && cfg.Catalog.Source != "postgres" {
				return fmt.Errorf("import needs a sqlite or postgres catalog source, got %q", cfg.Catalog.Source)
			}

			locs, err := catalog.JSONFile{Path: args[0]}.Load(ctx)
			if err != nil {
				return err
			}

			src, closeSource, err := catalog.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeSource()
			store := src.(*catalog.SQLStore)

			start := time.Now()
			if err := store.InitSchema(ctx); err != nil {
				return err
			}
			if err := store.BulkInsert(ctx, locs); err != nil {
				return err
			}
			count, err := store.Count(ctx)
			if err != nil {
				return err
			}

			p := render.NewPrinter(opts.out)
			p.Success(fmt.Sprintf("Imported %d locations in %v", len(locs), time.Since(start)))
			p.Stat("Total stored", count)
			return nil
		},
	}
}

func newSnapshotCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <out.gob>",
		Short: "Save the configured catalog to a snapshot file for offline use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			src, closeSource, err := catalog.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeSource()

			// unlike the interactive commands, a failed load is an error here
			locs, err := src.Load(ctx)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			c := catalog.New(locs)
			if err := catalog.SaveSnapshot(args[0], c); err != nil {
				return err
			}

			p := render.NewPrinter(opts.out)
			p.Success(fmt.Sprintf("Saved %d locations to %s", c.Len(), args[0]))
			return nil
		},
	}
}
