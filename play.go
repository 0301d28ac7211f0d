package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/penguin/common"
)

var (
	flagWatch       bool
	flagBaseMonitor bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	Long: `Open the game window on the chosen level.

With --watch, edits to prefabs/*.yaml and prefabs/scripts/*.tengo on disk
are applied to the running level.

Examples:
  penguin play
  penguin play --level snowfield --watch
  penguin play --seed 42 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload prefab and script edits from disk")
	cmd.Flags().BoolVarP(&flagBaseMonitor, "monitor", "m", false, "Use base monitor instead of primary (for multi-monitor setups)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	seed := flagSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	game, err := NewGame(GameOptions{
		Level: flagLevel,
		Seed:  seed,
		Watch: flagWatch,
		Log:   log,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := game.Close(); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	if flagBaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.ScreenWidth*2, common.ScreenHeight*2)
	ebiten.SetWindowTitle("penguin")
	ebiten.SetTPS(common.TPS)

	log.WithField("seed", seed).Info("starting")
	return ebiten.RunGame(game)
}
