package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/harnesslab/loom/pkg/errors"
	"github.com/harnesslab/loom/pkg/pipeline"
	"github.com/harnesslab/loom/pkg/scene"
)

// routeCommand creates the route command.
func (c *CLI) routeCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "route <positioned.json>",
		Short: "Generate 3D wire paths for a positioned scene",
		Long: `Route reads a positioned scene, selects a path strategy for each edge
(direct, corner, or spline) based on endpoint geometry, resolves wire color
and radius from the edge's electrical properties, and writes the routed
wires as JSON.

Edges whose endpoints are missing from the scene are skipped with a warning.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			sc, err := scene.ReadPositionedFile(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{
				Refresh: refresh,
				Logger:  loggerFromContext(ctx),
			}

			sp := newSpinnerWithContext(ctx, "Routing wires...")
			sp.Start()
			p := newProgress(c.Logger)

			result, hit, err := runner.RouteWithCacheInfo(ctx, sc, opts)
			sp.Stop()
			if err != nil {
				if ve, ok := apperrors.AsValidation(err); ok {
					printError("Positioned scene is invalid:")
					for _, v := range ve.Violations {
						printDetail("%s: %s", v.Field, v.Message)
					}
					return fmt.Errorf("%d validation errors", len(ve.Violations))
				}
				return err
			}
			p.done(fmt.Sprintf("Routed %d wires", len(result.Routes)))

			for _, id := range result.SkippedEdges {
				printWarning("Edge %q references a missing component; skipped", id)
			}

			if err := scene.WriteRoutesFile(result.Routes, output); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			printSuccess("Routed %d of %d wires", len(result.Routes), len(sc.Edges))
			printStats(len(sc.Nodes), len(result.Routes), hit)
			printFile(output)
			printNewline()
			printNextStep("Render a preview", fmt.Sprintf("loom preview %s --routes %s", args[0], output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "routes.json", "output file path")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout result cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached result exists")

	return cmd
}
