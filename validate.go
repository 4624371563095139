package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"campusmap/internal/cache"
	"campusmap/internal/config"
	"campusmap/internal/geo"
	"campusmap/internal/layer"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the dataset and report layer counts and skipped records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.Context(), cfg, cmd.OutOrStdout())
	},
}

// loadDataset resolves the configured source to a local file and decodes it
func loadDataset(ctx context.Context, c *config.Config) (*geo.Store, error) {
	mgr, err := cache.NewManager(c.Data.CacheDir)
	if err != nil {
		return nil, err
	}
	path, err := mgr.Resolve(ctx, c.Data.Source)
	if err != nil {
		return nil, err
	}
	return geo.LoadFile(path)
}

func runValidate(ctx context.Context, c *config.Config, out io.Writer) error {
	reg, err := newRegistry(c)
	if err != nil {
		return err
	}
	store, err := loadDataset(ctx, c)
	if err != nil {
		return eris.Wrapf(err, "validate %s", c.Data.Source)
	}
	set := layer.Assign(store.Features(), reg)

	fmt.Fprintf(out, "%s: %d features, %d in layers\n", c.Data.Source, store.Len(), set.Aggregate().Len())
	for i, l := range set.Layers() {
		fmt.Fprintf(out, "  %d %-18s %d\n", i+1, l.Name(), l.Len())
	}

	if len(set.Dropped) > 0 {
		fmt.Fprintf(out, "dropped %d (unsupported geometry):\n", len(set.Dropped))
		for _, f := range set.Dropped {
			fmt.Fprintf(out, "  - %s (%s)\n", f.Name, f.Kind)
		}
	}
	if len(store.Skipped) > 0 {
		fmt.Fprintf(out, "skipped %d invalid records:\n", len(store.Skipped))
		for _, s := range store.Skipped {
			fmt.Fprintf(out, "  - %s\n", s.Error())
		}
	}
	return nil
}
