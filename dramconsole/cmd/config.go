package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Config holds the settings of a console session. Values come from the
// environment (optionally seeded from a .env file) and are overridden by
// flags given on the command line.
type Config struct {
	DataWidth   uint32 `env:"LITEX_DRAM_DATA_WIDTH" envDefault:"128"`
	RefreshRate uint32 `env:"LITEX_DRAM_REFRESH_RATE" envDefault:"6240"`
	Modules     uint32 `env:"LITEX_DRAM_MODULES" envDefault:"2"`
	Prompt      string `env:"LITEX_DRAM_PROMPT" envDefault:"litex> "`

	Record     bool   `env:"LITEX_DRAM_RECORD"`
	RecordPath string `env:"LITEX_DRAM_RECORD_PATH"`
	TraceReads bool   `env:"LITEX_DRAM_TRACE_READS"`

	Monitor     bool `env:"LITEX_DRAM_MONITOR"`
	MonitorPort int  `env:"LITEX_DRAM_MONITOR_PORT" envDefault:"0"`
	OpenBrowser bool `env:"LITEX_DRAM_OPEN_BROWSER"`

	LogLevel string `env:"LITEX_DRAM_LOG_LEVEL" envDefault:"warn"`
	Verbose  bool   `env:"LITEX_DRAM_VERBOSE"`
}

// LoadConfig reads the configuration from the environment. Variables
// defined in envFile are added to the environment first, without replacing
// variables that are already set. A missing envFile is not an error.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()

	f.String("env-file", ".env", "file with LITEX_DRAM_* variables")
	f.Uint32("data-width", 128, "simulated DRAM data width in bits")
	f.Uint32("refresh-rate", 6240, "refresh rate the simulated controller starts with")
	f.Uint32("modules", 2, "number of simulated data modules")
	f.String("prompt", "litex> ", "console prompt")
	f.Bool("record", false, "record register accesses and campaigns to SQLite")
	f.String("record-path", "", "recording file, generated when empty")
	f.Bool("trace-reads", false, "record register reads as well as writes")
	f.Bool("monitor", false, "serve the register banks over HTTP")
	f.Int("monitor-port", 0, "monitoring port, random when 0")
	f.Bool("open-browser", false, "open the monitoring page in a browser")
	f.String("log-level", "warn", "operational log level")
	f.BoolP("verbose", "v", false, "log at debug level")
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *Config) error {
	f := cmd.Flags()

	uints := map[string]*uint32{
		"data-width":   &cfg.DataWidth,
		"refresh-rate": &cfg.RefreshRate,
		"modules":      &cfg.Modules,
	}
	for name, dst := range uints {
		if !f.Changed(name) {
			continue
		}

		v, err := f.GetUint32(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	strs := map[string]*string{
		"prompt":      &cfg.Prompt,
		"record-path": &cfg.RecordPath,
		"log-level":   &cfg.LogLevel,
	}
	for name, dst := range strs {
		if !f.Changed(name) {
			continue
		}

		v, err := f.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	bools := map[string]*bool{
		"record":       &cfg.Record,
		"trace-reads":  &cfg.TraceReads,
		"monitor":      &cfg.Monitor,
		"open-browser": &cfg.OpenBrowser,
		"verbose":      &cfg.Verbose,
	}
	for name, dst := range bools {
		if !f.Changed(name) {
			continue
		}

		v, err := f.GetBool(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if f.Changed("monitor-port") {
		v, err := f.GetInt("monitor-port")
		if err != nil {
			return err
		}
		cfg.MonitorPort = v
	}

	return cfg.normalize()
}

// normalize applies the implications between settings: a record path turns
// recording on and opening a browser turns monitoring on.
func (c *Config) normalize() error {
	if c.RecordPath != "" {
		c.Record = true
	}

	if c.OpenBrowser {
		c.Monitor = true
	}

	if c.DataWidth == 0 {
		return errors.New("data width must not be zero")
	}

	return nil
}
