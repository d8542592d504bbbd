// gridtool runs the gridkit algorithms against scenario files and draws
// the result in the terminal.
//
// Usage:
//
//	gridtool path <scenario.yaml>    - A* from start to goal
//	gridtool fov <scenario.yaml>     - Field of view from the viewer
//	gridtool light <scenario.yaml>   - Composite lighting of all lights
//	gridtool flow <scenario.yaml>    - Flow field toward the goal(s)
//	gridtool convert --from X --to Y <a> <b>
//	gridtool topologies              - List supported topologies
//	gridtool explore <scenario.yaml> - Interactive walk with remembered FOV
//	gridtool config                  - Print the effective config
//
// Global flags:
//
//	--config <path>     - Config file (default: ./gridtool.yaml or user config dir)
//	--debug             - Debug logging
//	--log-file <path>   - Also log to a rotated JSON file
//	--no-color          - Plain output
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/gridkit/internal/config"
	"github.com/Faultbox/gridkit/internal/logger"
)

var (
	flags *config.Flags
	cfg   *config.Config
)

func main() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridtool",
	Short: "gridtool - pathfinding, FOV, lighting and flow fields on any grid",
	Long: `gridtool loads a scenario file describing a map on one of the supported
grid topologies and runs one of the gridkit algorithms on it.

Examples:
  gridtool path examples/corridor.yaml
  gridtool fov --radius 5 examples/hex-cave.yaml
  gridtool light examples/iso-room.yaml
  gridtool flow --costs examples/crossroads.yaml
  gridtool convert --from pointy --to odd-r 2 -1`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags = config.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(fovCmd)
	rootCmd.AddCommand(lightCmd)
	rootCmd.AddCommand(flowCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(topologiesCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the config and starts logging before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flags)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	logger.Debug("config loaded")
	return nil
}
