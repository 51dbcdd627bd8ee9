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
	ConfigDebug                      = "debug"
	ConfigConfigFile                 = "config-file"
	ConfigEvaluator                  = "evaluator"
	ConfigTTMaxEntries               = "tt-max-entries"
	ConfigHistoryMaxBuckets          = "history-max-buckets"
	ConfigMaxDepth                   = "max-depth"
	ConfigTimeScaleShort             = "time-scale-short"
	ConfigTimeScaleLong              = "time-scale-long"
	ConfigTimeScaleThreshold         = "time-scale-threshold"
	ConfigTimeFloor                  = "time-floor"
	ConfigMinRemaining               = "min-remaining"
	ConfigDepthFraction              = "depth-fraction"
	ConfigMinDepthTime               = "min-depth-time"
	ConfigCPUProfile                 = "cpu-profile"
	ConfigMemProfile                 = "mem-profile"
	ConfigSelfplayGames              = "selfplay-games"
	ConfigSelfplayThreads            = "selfplay-threads"
	ConfigSelfplayRandomOpeningPlies = "selfplay-random-opening-plies"
	ConfigSelfplayOutput             = "selfplay-output"
)

var ErrBadConfig = errors.New("bad configuration")

type Config struct {
	viper.Viper
	args []string
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("othello", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "turn on debug logging")
	fs.String(ConfigConfigFile, "", "path to a yaml config file")
	fs.String(ConfigEvaluator, "phased", "static evaluator: counting, phased, or a weighted sum such as counting*2+phased")
	fs.Int(ConfigTTMaxEntries, 200000, "clear the transposition table once it holds more entries than this")
	fs.Int(ConfigHistoryMaxBuckets, 4096, "halve the history table once it has more buckets than this")
	fs.Int(ConfigMaxDepth, 64, "deepest iteration the search will attempt")
	fs.Float64(ConfigTimeScaleShort, 0.5, "fraction of the time limit used when the limit is short")
	fs.Float64(ConfigTimeScaleLong, 0.45, "fraction of the time limit used when the limit is long")
	fs.Duration(ConfigTimeScaleThreshold, 8*time.Second, "limits below this are short")
	fs.Duration(ConfigTimeFloor, 120*time.Millisecond, "minimum usable search time")
	fs.Duration(ConfigMinRemaining, 80*time.Millisecond, "stop deepening when less than this remains")
	fs.Float64(ConfigDepthFraction, 0.85, "fraction of the remaining time given to the next depth")
	fs.Duration(ConfigMinDepthTime, 40*time.Millisecond, "minimum time given to any depth")
	fs.String(ConfigCPUProfile, "", "write a cpu profile to this file")
	fs.String(ConfigMemProfile, "", "write a heap profile to this file on exit")
	fs.Int(ConfigSelfplayGames, 20, "number of games in a self-play run")
	fs.Int(ConfigSelfplayThreads, 4, "games played at once in a self-play run")
	fs.Int(ConfigSelfplayRandomOpeningPlies, 4, "random plies played before the engines take over")
	fs.String(ConfigSelfplayOutput, "", "write the self-play summary to this file")
	return fs
}

// Load parses command-line flags, an optional config.yaml and OTHELLO_*
// environment variables, in increasing order of precedence: defaults,
// config file, environment, flags.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	c.args = nil

	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrBadConfig, err)
	}
	if err := c.BindPFlags(fs); err != nil {
		return fmt.Errorf("%w: %w", ErrBadConfig, err)
	}
	c.SetEnvPrefix("othello")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	cf := c.GetString(ConfigConfigFile)
	if cf != "" {
		c.SetConfigFile(cf)
	} else {
		c.SetConfigName("config")
		c.SetConfigType("yaml")
		c.AddConfigPath("$HOME/.othello")
		c.AddConfigPath(".")
	}
	if err := c.ReadInConfig(); err != nil {
		// a missing default config file is fine; a missing explicit one is not.
		var notFound viper.ConfigFileNotFoundError
		if cf != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("%w: %w", ErrBadConfig, err)
		}
	}
	c.args = fs.Args()
	return nil
}

// Args returns the positional arguments left after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

// DefaultConfig returns a config with every key at its default value.
// It does not look at the environment or any config file.
func DefaultConfig() Config {
	c := Config{Viper: *viper.New()}
	fs := flagSet()
	fs.VisitAll(func(f *pflag.Flag) {
		c.SetDefault(f.Name, f.DefValue)
	})
	return c
}
