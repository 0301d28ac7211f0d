// penguin is a small side-scrolling platformer: a penguin collects stars,
// avoids spikes and stomps patrolling snowmen.
//
// Usage:
//
//	penguin [play]   - Open the game window (default)
//	penguin check    - Build a level headless and simulate it
//
// Global flags:
//
//	--level <name>      - Level file under levels/ (default: snowfield.json)
//	--seed <value>      - RNG seed for snowman patrols (0 = time based when playing)
//	--log-level <name>  - logrus level (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagLevel    string
	flagSeed     uint64
	flagLogLevel string
)

var log = logrus.New()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "penguin",
	Short: "A side-scrolling platformer",
	Long: `Collect stars, dodge spikes and stomp snowmen.

Controls:
  A/D, Left/Right   - Walk
  Space/Up/W        - Jump
  Esc/P             - Pause`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := logrus.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		log.SetLevel(lvl)
		return nil
	},
	RunE: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "", "Level name in levels/ (basename, .json optional)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time when playing)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	addPlayFlags(rootCmd)
	addPlayFlags(playCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(checkCmd)
}
