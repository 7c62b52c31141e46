package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/morphic"
)

var (
	flagOut       string
	flagMaxCycles int
)

var scriptCmd = &cobra.Command{
	Use:   "script <file.json>",
	Short: "Replay a test script headless",
	Long: `Replay a JSON test script against the demo world on a software canvas
and write the screenshots it requests.

Script actions: click, press, move, release, drag, key, wait, screenshot.

Example script:
  {"steps": [
    {"action": "drag", "fromX": 60, "fromY": 80, "toX": 400, "toY": 300, "frames": 10},
    {"action": "wait", "frames": 5},
    {"action": "screenshot", "label": "after-drag"}
  ]}`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	scriptCmd.Flags().StringVar(&flagOut, "out", "screenshots", "Directory for screenshots")
	scriptCmd.Flags().IntVar(&flagMaxCycles, "max-cycles", 10000, "Abort after this many cycles")
}

func runScript(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	runner, err := morphic.LoadTestScript(data)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	world := morphic.NewWorld(morphic.NewCanvas(flagWidth, flagHeight), cfg)
	world.SetLogger(logger)
	world.ScreenshotDir = flagOut
	attachMetrics(world, logger)
	buildDemo(world, logger)
	world.SetTestRunner(runner)

	for i := 0; !runner.Done(); i++ {
		if i >= flagMaxCycles {
			return fmt.Errorf("script did not finish within %d cycles", flagMaxCycles)
		}
		world.Update()
	}
	// One more cycle writes screenshots queued by the last step.
	world.Update()

	st := world.Stats()
	logger.Info("script finished", "cycles", st.Cycles, "drops", st.Drops, "failures", st.Failures)
	return nil
}
