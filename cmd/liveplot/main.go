// Command liveplot runs the demo dashboards: synthetic waveforms and,
// on Linux, live network interface rates, plotted in the terminal.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/googlesky/liveplot"
	"github.com/googlesky/liveplot/pacer"
)

var (
	flagConfig   string
	flagWidth    int
	flagHeight   int
	flagFPS      float64
	flagStrategy string
	flagTheme    string
	flagDuration time.Duration
)

func main() {
	// Redirect log output to a file so it doesn't interfere with the TUI.
	logFile, err := os.CreateTemp("", "liveplot-*.log")
	if err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	root := &cobra.Command{
		Use:   "liveplot",
		Short: "Real-time terminal plotting demos",
		Long: "liveplot renders continuously updating multi-series plots onto a\n" +
			"pixel surface and displays them in the terminal as half-block cells.",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "YAML config file")
	pf.IntVar(&flagWidth, "width", 0, "surface width in pixels")
	pf.IntVar(&flagHeight, "height", 0, "surface height in pixels")
	pf.Float64Var(&flagFPS, "fps", 0, "target frame rate (0 = config default)")
	pf.StringVar(&flagStrategy, "strategy", "", "timing strategy: adaptive, hybrid, unlimited")
	pf.StringVar(&flagTheme, "theme", "", "color theme: dark, light, midnight")
	pf.DurationVar(&flagDuration, "duration", 0, "stop after this long (0 = run until quit)")

	root.AddCommand(
		demoCommand("single", "Single-series sine wave", newSineSource,
			func(c *liveplot.Config) {
				c.Title = "Single Series - Sine Wave"
				c.YMin, c.YMax = -120, 120
			}),
		demoCommand("multi", "Multi-series signal monitor", newMultiSource,
			func(c *liveplot.Config) {
				c.Title = "Multi-Series - Signal Monitor"
				c.YMin, c.YMax = -120, 120
				c.BufferSize = 300
			}),
		demoCommand("auto", "Auto-scaling growing amplitude", newAutoSource,
			func(c *liveplot.Config) {
				c.Title = "Auto-Scale Demo"
				c.ScaleMode = liveplot.ScaleAuto
			}),
		demoCommand("net", "Live network interface rates", newNetSource,
			func(c *liveplot.Config) {
				c.Title = "Network Throughput (KB/s)"
				c.ScaleMode = liveplot.ScaleAuto
				c.TargetFPS = 30
			}),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func demoCommand(name, short string, mkSource func(cfg liveplot.Config) (source, error), tweak func(*liveplot.Config)) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(tweak)
			if err != nil {
				return err
			}
			strategy, err := pacer.ParseStrategy(cfg.Strategy)
			if err != nil {
				return err
			}
			src, err := mkSource(cfg)
			if err != nil {
				return err
			}
			return run(cfg, strategy, src, flagDuration)
		},
	}
}

// loadConfig builds the effective configuration: library defaults, then
// the optional config file, then explicit flags.
func loadConfig(tweak func(*liveplot.Config)) (liveplot.Config, error) {
	cfg := liveplot.DefaultConfig()
	cfg.Width, cfg.Height = 960, 480
	tweak(&cfg)

	if flagConfig != "" {
		v := viper.New()
		v.SetConfigFile(flagConfig)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", flagConfig, err)
		}
		if err := v.Unmarshal(&cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", flagConfig, err)
		}
	}

	if flagWidth > 0 {
		cfg.Width = flagWidth
	}
	if flagHeight > 0 {
		cfg.Height = flagHeight
	}
	if flagFPS > 0 {
		cfg.TargetFPS = flagFPS
	}
	if flagStrategy != "" {
		cfg.Strategy = flagStrategy
	}
	if flagTheme != "" {
		cfg.Theme = flagTheme
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
