package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/milk9111/penguin/input"
)

var (
	flagTicks  int
	flagInputs string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Build a level headless and simulate it",
	Long: `Load the level, the prefabs and the patrol script, build the level
without a window and run it for a number of ticks with scripted input.

Inputs are comma separated ticks:actions steps; actions are left, right,
jump and pause joined by '+'.

Examples:
  penguin check
  penguin check --ticks 600 --inputs "60:right,1:jump+right,120:right"`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&flagTicks, "ticks", 300, "Ticks to simulate")
	checkCmd.Flags().StringVar(&flagInputs, "inputs", "", "Scripted input steps")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if flagTicks < 0 {
		return fmt.Errorf("check: negative tick count %d", flagTicks)
	}
	script, err := input.ParseScript(flagInputs)
	if err != nil {
		return err
	}

	game, err := NewGame(GameOptions{
		Level: flagLevel,
		Seed:  flagSeed,
		Input: script,
		Log:   log,
	})
	if err != nil {
		return err
	}
	defer game.Close()

	for i := 0; i < flagTicks; i++ {
		if err := game.Update(); err != nil {
			return err
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), game.Report())
	return nil
}

// Report summarizes the run for the check command.
func (g *Game) Report() string {
	var b strings.Builder
	p := g.level.Player()
	x, y := p.Position()
	fmt.Fprintf(&b, "level:    %s\n", g.level.Name())
	fmt.Fprintf(&b, "ticks:    %d\n", g.level.Ticks())
	fmt.Fprintf(&b, "session:  %s (restarts %d)\n", g.session.State(), g.session.Restarts())
	fmt.Fprintf(&b, "player:   %s health=%d pos=(%.1f, %.1f)\n", p.State(), p.Health(), x, y)
	fmt.Fprintf(&b, "stars:    %d\n", g.hud.Stars())
	for _, e := range g.level.Enemies() {
		fmt.Fprintf(&b, "snowman %d: %s\n", e.ID(), e.State())
	}
	return b.String()
}
