package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Faultbox/gridkit/internal/explore"
	"github.com/Faultbox/gridkit/internal/logger"
	"github.com/Faultbox/gridkit/internal/render"
	"github.com/Faultbox/gridkit/internal/scenario"
	"github.com/Faultbox/gridkit/internal/world"
)

var flagSpeed int

var errNoTerminal = errors.New("explore needs an interactive terminal")

var exploreCmd = &cobra.Command{
	Use:   "explore <scenario.yaml>",
	Short: "Walk from start to goal interactively",
	Long: `Opens a full-screen view of the scenario. The walker follows an A* path to
the goal, revealing the map as it goes; cells seen earlier stay remembered.

Keys:
  space        play / pause
  n            single step
  arrows/hjkl  push the walker to a neighbor and replan
  r            reset
  ?            full help
  q            quit`,
	Args: cobra.ExactArgs(1),
	RunE: runExplore,
}

func init() {
	exploreCmd.Flags().IntVar(&flagSpeed, "speed", 8, "Autoplay steps per second")
	rootCmd.AddCommand(exploreCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	r := render.New(cfg.Render)
	sess, err := world.Open(sc, r, logger.Named("explore"))
	if err != nil {
		return err
	}
	walk, err := sess.Walk(cfg)
	if err != nil {
		return err
	}
	return explore.Run(walk, r, sess.Layout(), flagSpeed)
}
