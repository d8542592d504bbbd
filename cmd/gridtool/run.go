package main

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/gridkit/internal/config"
	"github.com/Faultbox/gridkit/internal/logger"
	"github.com/Faultbox/gridkit/internal/render"
	"github.com/Faultbox/gridkit/internal/scenario"
	"github.com/Faultbox/gridkit/internal/world"
)

var (
	flagMemory bool
	flagCosts  bool
	flagImage  string
	flagScale  int
)

var pathCmd = &cobra.Command{
	Use:   "path <scenario.yaml>",
	Short: "Find a path from start to goal",
	Long:  `Runs A* from the scenario's start to its goal and walks the result.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runScenario("path", world.Session.Path),
}

var fovCmd = &cobra.Command{
	Use:   "fov <scenario.yaml>",
	Short: "Show what the viewer can see",
	Long: `Computes the field of view from the scenario's viewer (or start).

With --memory the viewer walks from start to goal and cells seen along the
way stay on the map as remembered.`,
	Args: cobra.ExactArgs(1),
	RunE: runScenario("fov", world.Session.FOV),
}

var lightCmd = &cobra.Command{
	Use:   "light <scenario.yaml>",
	Short: "Composite the scenario's light sources",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenario("light", world.Session.Light),
}

var flowCmd = &cobra.Command{
	Use:   "flow <scenario.yaml>",
	Short: "Build a flow field toward the goal(s)",
	Long: `Builds a flow field toward the scenario's goals and draws the direction
of travel from every cell. Scenario changes are applied afterwards and the
field is updated incrementally where possible.`,
	Args: cobra.ExactArgs(1),
	RunE: runScenario("flow", world.Session.Flow),
}

func init() {
	fovCmd.Flags().BoolVar(&flagMemory, "memory", false, "Walk start to goal and remember seen cells")
	flowCmd.Flags().BoolVar(&flagCosts, "costs", false, "Draw integration costs instead of arrows")
	for _, cmd := range []*cobra.Command{pathCmd, fovCmd, lightCmd, flowCmd} {
		cmd.Flags().StringVar(&flagImage, "image", "", "Also save the picture to this .png, .bmp or .tiff file")
		cmd.Flags().IntVar(&flagScale, "scale", 2, "Image scale factor")
	}
}

// output says where a result goes besides the terminal.
type output struct {
	image string
	scale int
}

type command func(world.Session, *config.Config) (*world.Result, error)

func runScenario(name string, run command) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("memory") {
			cfg.FOV.Memory = flagMemory
		}
		if cmd.Flags().Changed("costs") {
			cfg.Flow.ShowCosts = flagCosts
		}
		out := output{image: flagImage, scale: flagScale}
		return execute(cmd.OutOrStdout(), args[0], out, cfg, logger.Named(name), run)
	}
}

// execute loads a scenario, runs one command on it and writes the picture.
func execute(w io.Writer, path string, out output, cfg *config.Config, log *zap.Logger, run command) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}
	log.Debug("scenario loaded",
		zap.String("path", path),
		zap.String("topology", string(sc.Topology)),
		zap.Int("width", sc.Terrain().Width()),
		zap.Int("height", sc.Terrain().Height()),
		zap.Int("walls", sc.Terrain().Count(scenario.Wall)))

	r := render.New(cfg.Render)
	sess, err := world.Open(sc, r, log)
	if err != nil {
		return err
	}
	res, err := run(sess, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, r.Header(res.Title, res.Stats...))
	fmt.Fprintln(w, r.Render(res.Canvas, sess.Layout()))

	if out.image != "" {
		if err := saveImage(out.image, render.Image(res.Canvas, sess.Layout(), out.scale)); err != nil {
			return fmt.Errorf("saving image: %w", err)
		}
		log.Info("image saved", zap.String("path", out.image))
	}
	return nil
}

func saveImage(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := render.Encode(&buf, img, path); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

var topologiesCmd = &cobra.Command{
	Use:   "topologies",
	Short: "List supported topologies",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, t := range scenario.Topologies {
			fmt.Fprintf(out, "  %s\n", t)
		}
	},
}

var flagSave bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective config",
	Long:  `Prints the config after defaults, file and flags are merged. With --save it is also written to the user config dir.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		if flagSave {
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		}
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&flagSave, "save", false, "Write the config to the user config dir")
}
