package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/phanxgames/scatter"
	"github.com/spf13/cobra"
)

var (
	replayMaxFrames int
	replayStep      time.Duration
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.json>",
	Short: "Replay a gesture script on a headless stage",
	Args:  cobra.ExactArgs(1),
	RunE:  replay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().IntVar(&replayMaxFrames, "max-frames", 10000, "stop after this many frames")
	replayCmd.Flags().DurationVar(&replayStep, "step", 16*time.Millisecond, "simulated frame duration")
}

func replay(cmd *cobra.Command, args []string) error {
	runner, err := scatter.LoadGestureScriptFile(args[0])
	if err != nil {
		return err
	}
	clock := scatter.NewFrameClock(time.Unix(0, 0), replayStep)
	stage, _, err := loadScene(clock)
	if err != nil {
		return err
	}
	logTransforms(stage, slog.LevelDebug)
	stage.SetScriptRunner(runner)

	frames := 0
	for ; frames < replayMaxFrames; frames++ {
		if runner.Done() && !throwing(stage) {
			break
		}
		clock.Tick()
		stage.Update()
	}
	scatter.Logger().Info("replay finished", "frames", frames, "done", runner.Done())

	out := cmd.OutOrStdout()
	for _, o := range stage.Objects() {
		st := o.State()
		fmt.Fprintf(out, "%-12s x=%.2f y=%.2f scale=%.3f rotation=%.3f\n", o.Name, st.X, st.Y, st.Scale, st.Rotation)
	}
	return nil
}

func throwing(stage *scatter.Stage) bool {
	for _, o := range stage.Objects() {
		if o.IsThrowing() {
			return true
		}
	}
	return false
}
