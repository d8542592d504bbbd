package config

import "github.com/spf13/pflag"

// Flags holds the CLI overrides bound to a command's flag set. Only flags
// the user actually set override file values.
type Flags struct {
	fs *pflag.FlagSet

	config        string
	debug         bool
	logFile       string
	algorithm     string
	radius        int
	maxIterations int
	noColor       bool
	unweighted    bool
}

// BindFlags registers the config overrides on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.config, "config", "", "Path to config file")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.logFile, "log-file", "", "Also write logs to this file (rotated)")
	fs.StringVar(&f.algorithm, "algorithm", "", "FOV algorithm: shadowcasting, raycasting, floodfill, linecast")
	fs.IntVar(&f.radius, "radius", 0, "FOV radius")
	fs.IntVar(&f.maxIterations, "max-iterations", 0, "A* node expansion budget (0 = unbounded)")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&f.unweighted, "unweighted", false, "Ignore terrain costs")
	return f
}

// ConfigPath returns the explicit config path if provided via --config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return f.config
}

func (f *Flags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.debug {
		cfg.Logging.Level = "debug"
	}
	if f.changed("log-file") {
		cfg.Logging.LogFile = f.logFile
	}
	if f.changed("algorithm") {
		cfg.FOV.Algorithm = f.algorithm
	}
	if f.changed("radius") {
		cfg.FOV.Radius = f.radius
	}
	if f.changed("max-iterations") {
		cfg.Pathfind.MaxIterations = f.maxIterations
	}
	if f.noColor {
		cfg.Render.Color = false
	}
	if f.unweighted {
		cfg.Pathfind.Weighted = false
		cfg.Flow.Weighted = false
	}
}
