package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harnesslab/loom/pkg/pipeline"
	"github.com/harnesslab/loom/pkg/scene"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		output     string
		routesPath string
		width      float64
		height     float64
		hideZones  bool
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "preview <positioned.json>",
		Short: "Render a top-down SVG preview of a positioned scene",
		Long: `Preview projects a positioned scene onto the X/Y plane and renders it as
an SVG: zone outlines, component positions, and (optionally) routed wires
in their resolved colors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			sc, err := scene.ReadPositionedFile(args[0])
			if err != nil {
				return err
			}

			var routes []scene.Route
			if routesPath != "" {
				routes, err = scene.ReadRoutesFile(routesPath)
				if err != nil {
					return err
				}
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{
				Width:     width,
				Height:    height,
				ShowZones: !hideZones,
				Refresh:   refresh,
				Logger:    loggerFromContext(ctx),
			}

			svg, hit, err := runner.PreviewWithCacheInfo(ctx, sc, routes, opts)
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, svg, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			printSuccess("Rendered preview of %d components", len(sc.Nodes))
			printStats(len(sc.Nodes), len(routes), hit)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "preview.svg", "output file path")
	cmd.Flags().StringVar(&routesPath, "routes", "", "routes file to overlay (from loom route)")
	cmd.Flags().Float64Var(&width, "width", pipeline.DefaultWidth, "frame width in pixels")
	cmd.Flags().Float64Var(&height, "height", pipeline.DefaultHeight, "frame height in pixels")
	cmd.Flags().BoolVar(&hideZones, "hide-zones", false, "hide zone outlines and labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout result cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even if a cached preview exists")

	return cmd
}
