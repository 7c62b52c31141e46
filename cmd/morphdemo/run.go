package main

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/morphic"
)

var flagShowFPS bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the demo world in a window",
	Long: `Open the demo world in a window.

Controls:
  Drag       - Move draggable morphs; drag from the palette to copy
  Click      - Toggle the bouncing morph's animation
  Double     - Double-click a morph to glide it back to its start
  Wheel      - Scroll the framed list
  Keys       - Typed keys tint the focused box
  Drop files - Images, text and binaries are reported on the inbox`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagShowFPS, "fps", true, "Show the cycle rate meter")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	world := morphic.NewWorld(morphic.NewEbitenSurface(flagWidth, flagHeight), cfg)
	world.SetLogger(logger)
	attachMetrics(world, logger)
	buildDemo(world, logger)

	return morphic.Run(world, morphic.RunConfig{
		Title:   "Morphic Demo",
		ShowFPS: flagShowFPS,
	})
}
