package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/harnesslab/loom/pkg/errors"
	"github.com/harnesslab/loom/pkg/pipeline"
	"github.com/harnesslab/loom/pkg/scene"
)

// positionCommand creates the position command.
func (c *CLI) positionCommand() *cobra.Command {
	var (
		output      string
		seed        uint64
		minDistance float64
		noCache     bool
		refresh     bool
	)

	cmd := &cobra.Command{
		Use:   "position <scene.json>",
		Short: "Place harness components inside their vehicle zones",
		Long: `Position reads a scene file (nodes, edges, coordinate system), places
every node inside its zone using the zone's placement strategy, relaxes
pairwise overlaps, and writes the positioned scene as JSON.

The placement is deterministic for a given seed: re-running with the same
scene and seed reproduces the exact layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			sc, err := scene.ReadSceneFile(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{
				Seed:        seed,
				MinDistance: minDistance,
				Refresh:     refresh,
				Logger:      loggerFromContext(ctx),
			}

			sp := newSpinnerWithContext(ctx, "Positioning components...")
			sp.Start()
			p := newProgress(c.Logger)

			result, hit, err := runner.PositionWithCacheInfo(ctx, sc, opts)
			sp.Stop()
			if err != nil {
				if ve, ok := apperrors.AsValidation(err); ok {
					printError("Scene is invalid:")
					for _, v := range ve.Violations {
						printDetail("%s: %s", v.Field, v.Message)
					}
					return fmt.Errorf("%d validation errors", len(ve.Violations))
				}
				return err
			}
			p.done(fmt.Sprintf("Positioned %d components", len(result.Nodes)))

			for _, zone := range result.DroppedZones {
				printWarning("Zone %q is not in the coordinate system; its components were dropped", zone)
			}

			positioned := scene.PositionedScene{
				Nodes:            result.Nodes,
				Edges:            sc.Edges,
				CoordinateSystem: sc.CoordinateSystem,
				VehicleSignature: sc.VehicleSignature,
			}
			if err := scene.WritePositionedFile(positioned, output); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			printSuccess("Positioned %d components in %d zones", len(result.Nodes), len(result.Metadata.Zones))
			printStats(len(result.Nodes), len(sc.Edges), hit)
			printFile(output)
			printNewline()
			printNextStep("Route the wires", fmt.Sprintf("loom route %s", output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "positioned.json", "output file path")
	cmd.Flags().Uint64Var(&seed, "seed", pipeline.DefaultSeed, "jitter seed for reproducible layouts")
	cmd.Flags().Float64Var(&minDistance, "min-distance", pipeline.DefaultMinDistance, "minimum separation between components (scene units)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout result cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached result exists")

	return cmd
}
