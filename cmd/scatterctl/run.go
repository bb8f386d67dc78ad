package main

import (
	"github.com/phanxgames/scatter"
	"github.com/spf13/cobra"
)

var (
	runScript string
	runFPS    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the stage in a window",
	RunE:  run,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runScript, "script", "", "gesture script to play on start")
	runCmd.Flags().BoolVar(&runFPS, "fps", false, "show the FPS overlay")
}

func run(cmd *cobra.Command, args []string) error {
	stage, sf, err := loadScene(scatter.SystemClock)
	if err != nil {
		return err
	}
	if runScript != "" {
		runner, err := scatter.LoadGestureScriptFile(runScript)
		if err != nil {
			return err
		}
		stage.SetScriptRunner(runner)
	}
	return scatter.Run(stage, scatter.RunConfig{
		Title:   "scatter",
		Width:   int(sf.Width),
		Height:  int(sf.Height),
		ShowFPS: runFPS,
	})
}
