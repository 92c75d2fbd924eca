package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/stillgbx/coltrans"
	"github.com/stillgbx/coltrans/pivot"
	"github.com/stillgbx/coltrans/scene"
)

// newApplyCmd creates the apply command: a one-shot transform of a scene file
// with no preview involved.
func newApplyCmd() *cobra.Command {
	var (
		locStr     string
		rotStr     string
		scaleStr   string
		pivotStr   string
		collection string
		output     string
		bake       bool
	)

	cmd := &cobra.Command{
		Use:   "apply [scene.toml]",
		Short: "Apply a world-space transform to a collection's root objects",
		Long: `Apply a world-space transform to all root objects of a collection.

Only root objects (parent missing or outside the collection) are written;
children follow through the scene hierarchy. Rotation and scale are applied
around the scene's pivot-point setting, overridable with --pivot. The
modified scene is written back in place unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			doc, err := LoadSceneFile(args[0])
			if err != nil {
				return err
			}
			host, err := doc.BuildHost()
			if err != nil {
				return err
			}
			if collection != "" {
				host.Selected = collection
			}
			if pivotStr != "" {
				mode, err := pivot.ParseMode(pivotStr)
				if err != nil {
					return err
				}
				host.Pivot = mode
			}

			loc, err := parseVec3(locStr, 0)
			if err != nil {
				return err
			}
			rotDeg, err := parseVec3(rotStr, 0)
			if err != nil {
				return err
			}
			sc, err := parseVec3(scaleStr, 1)
			if err != nil {
				return err
			}

			undo := &UndoStack{}
			engine := coltrans.NewEngine(host, host)
			engine.Undo = undo
			engine.Baker = scene.RotationBaker{}
			engine.Viewport = host
			engine.SetBakeOnCommit(bake)

			if err := engine.EditDelta(coltrans.Delta{
				Translation: loc,
				Rotation:    radians(rotDeg),
				Scale:       sc,
			}); err != nil {
				return err
			}

			report, err := engine.Apply()
			if errors.Is(err, coltrans.ErrNoop) {
				logger.Info("nothing to apply, all values at default")
				return nil
			}
			if err != nil {
				return err
			}

			logger.Info(report.String(), "baked", report.Baked, "undo_steps", undo.Len())

			doc.Sync(host)
			out := output
			if out == "" {
				out = args[0]
			}
			return SaveSceneFile(out, doc)
		},
	}

	cmd.Flags().StringVar(&locStr, "loc", "", "world translation delta as x,y,z")
	cmd.Flags().StringVar(&rotStr, "rot", "", "world rotation in degrees as x,y,z (XYZ order)")
	cmd.Flags().StringVar(&scaleStr, "scale", "", "per-axis scale as x,y,z")
	cmd.Flags().StringVar(&pivotStr, "pivot", "", "pivot mode: median, bounds, cursor, individual, active")
	cmd.Flags().StringVarP(&collection, "collection", "c", "", "collection to transform (default: scene selection)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output scene file (default: overwrite input)")
	cmd.Flags().BoolVar(&bake, "bake", false, "bake rotations into object bounds after applying")

	return cmd
}
