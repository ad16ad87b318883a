package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug              = "debug"
	ConfigBoardSize          = "board-size"
	ConfigSearchMode         = "search-mode"
	ConfigSearchDepth        = "search-depth"
	ConfigSearchTime         = "search-time"
	ConfigTTSizePower        = "tt-size-power"
	ConfigTTMemoryFraction   = "tt-memory-fraction"
	ConfigAspirationWindow   = "aspiration-window"
	ConfigMaxDepth           = "max-depth"
	ConfigNullWindowSameTurn = "null-window-same-turn"
	ConfigHistoryDecay       = "history-decay"
	ConfigEvalScale          = "eval-scale"
	ConfigEvalOwnGroup       = "eval-own-group"
	ConfigEvalOppGroup       = "eval-opp-group"
	ConfigEvalMaterial       = "eval-material"
	ConfigEvalMobility       = "eval-mobility"
	ConfigZobristSeed        = "zobrist-seed"
	ConfigNatsURL            = "nats-url"
	ConfigBotSubject         = "bot-subject"
	ConfigCPUProfile         = "cpu-profile"
	ConfigMemProfile         = "mem-profile"
	ConfigConfigFile         = "config-file"
)

var ErrBadSearchMode = errors.New("search-mode must be fixed or iterative")

// Config is a viper instance pre-populated with every setting the engine and
// its front ends read.
type Config struct {
	*viper.Viper
	args []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigBoardSize, 5)
	v.SetDefault(ConfigSearchMode, "iterative")
	v.SetDefault(ConfigSearchDepth, 4)
	v.SetDefault(ConfigSearchTime, 5*time.Second)
	v.SetDefault(ConfigTTSizePower, 20)
	v.SetDefault(ConfigTTMemoryFraction, 0.0)
	v.SetDefault(ConfigAspirationWindow, 50)
	v.SetDefault(ConfigMaxDepth, 60)
	v.SetDefault(ConfigNullWindowSameTurn, false)
	v.SetDefault(ConfigHistoryDecay, 8)
	v.SetDefault(ConfigEvalScale, 10)
	v.SetDefault(ConfigEvalOwnGroup, 1)
	v.SetDefault(ConfigEvalOppGroup, 2)
	v.SetDefault(ConfigEvalMaterial, 5)
	v.SetDefault(ConfigEvalMobility, 10)
	v.SetDefault(ConfigZobristSeed, "")
	v.SetDefault(ConfigNatsURL, "nats://localhost:4222")
	v.SetDefault(ConfigBotSubject, "oust.bot.move")
	v.SetDefault(ConfigCPUProfile, "")
	v.SetDefault(ConfigMemProfile, "")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("oust")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// DefaultConfig returns a config with every default set and environment
// overrides applied. It does not look at command-line flags.
func DefaultConfig() *Config {
	return &Config{Viper: newViper()}
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("oust", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigBoardSize, 5, "side length of the hexagonal board")
	fs.String(ConfigSearchMode, "iterative", "fixed or iterative")
	fs.Int(ConfigSearchDepth, 4, "depth in turns for fixed-depth search")
	fs.Duration(ConfigSearchTime, 5*time.Second, "time budget for iterative search")
	fs.Int(ConfigTTSizePower, 20, "transposition table holds 2^n entries")
	fs.Float64(ConfigTTMemoryFraction, 0, "if nonzero, size the transposition table to this fraction of system memory")
	fs.Int(ConfigAspirationWindow, 50, "half-width of the aspiration window")
	fs.Int(ConfigMaxDepth, 60, "deepest iteration the iterative search will attempt")
	fs.Bool(ConfigNullWindowSameTurn, false, "also probe same-turn continuations with a null window")
	fs.Int(ConfigHistoryDecay, 8, "history scores are divided by this at the start of every decision")
	fs.Int(ConfigEvalScale, 10, "evaluation scale factor")
	fs.Int(ConfigEvalOwnGroup, 1, "weight of own squared group sizes")
	fs.Int(ConfigEvalOppGroup, 2, "weight of opposing squared group sizes")
	fs.Int(ConfigEvalMaterial, 5, "weight per stone")
	fs.Int(ConfigEvalMobility, 10, "weight per legal move of the side to move")
	fs.String(ConfigZobristSeed, "", "seed for zobrist keys; random if empty")
	fs.String(ConfigNatsURL, "nats://localhost:4222", "NATS server for the bot")
	fs.String(ConfigBotSubject, "oust.bot.move", "subject the bot answers requests on")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigMemProfile, "", "write a memory profile to this file")
	fs.String(ConfigConfigFile, "", "optional YAML config file")
	return fs
}

// Load parses command-line args and an optional config file. Precedence is
// flags, then environment (OUST_*), then the config file, then defaults.
func (c *Config) Load(args []string) error {
	if c.Viper == nil {
		c.Viper = newViper()
	}
	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	if cf := c.GetString(ConfigConfigFile); cf != "" {
		c.SetConfigFile(cf)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return c.Validate()
}

// Args are the positional arguments left over after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

func (c *Config) Validate() error {
	switch c.GetString(ConfigSearchMode) {
	case "fixed", "iterative":
	default:
		return ErrBadSearchMode
	}
	return nil
}

// SanitizedSettings returns all settings for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
