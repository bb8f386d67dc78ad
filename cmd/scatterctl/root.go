package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/phanxgames/scatter"
	"github.com/spf13/cobra"
)

var (
	scenePath string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "scatterctl",
	Short: "Drive a scatter stage",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		scatter.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&scenePath, "scene", "", "scene file (JSON) describing the stage and its objects")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log gesture diagnostics")
}

// logTransforms logs transform events of stage at the given level.
func logTransforms(stage *scatter.Stage, level slog.Level) {
	stage.OnTransform(func(ev scatter.TransformEvent) {
		scatter.Logger().Log(context.Background(), level, "transform",
			"object", ev.Target.Name,
			"type", ev.Type.String(),
			"x", ev.State.X, "y", ev.State.Y,
			"scale", ev.State.Scale, "rotation", ev.State.Rotation,
			"fast", ev.Fast)
	})
	stage.OnTap(func(ctx scatter.TapContext) {
		scatter.Logger().Info("tap", "object", ctx.Target.Name, "x", ctx.Point.X, "y", ctx.Point.Y)
	})
	stage.OnLongPress(func(ctx scatter.TapContext) {
		scatter.Logger().Info("long press", "object", ctx.Target.Name, "x", ctx.Point.X, "y", ctx.Point.Y)
	})
	stage.OnThrowEnd(func(o *scatter.Scatter) {
		st := o.State()
		scatter.Logger().Info("throw end", "object", o.Name, "x", st.X, "y", st.Y)
	})
}
