package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDefaultConfig(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigTTMaxEntries), 200000)
	is.Equal(cfg.GetInt(ConfigHistoryMaxBuckets), 4096)
	is.Equal(cfg.GetFloat64(ConfigTimeScaleShort), 0.5)
	is.Equal(cfg.GetFloat64(ConfigTimeScaleLong), 0.45)
	is.Equal(cfg.GetDuration(ConfigTimeScaleThreshold), 8*time.Second)
	is.Equal(cfg.GetDuration(ConfigTimeFloor), 120*time.Millisecond)
	is.Equal(cfg.GetDuration(ConfigMinRemaining), 80*time.Millisecond)
	is.Equal(cfg.GetFloat64(ConfigDepthFraction), 0.85)
	is.Equal(cfg.GetDuration(ConfigMinDepthTime), 40*time.Millisecond)
	is.Equal(cfg.GetString(ConfigEvaluator), "phased")
	is.Equal(cfg.GetBool(ConfigDebug), false)
}

func TestLoadFlagsAndArgs(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--evaluator", "counting", "--max-depth=6", "--debug",
		"WEEE", "1.5"})
	is.NoErr(err)
	is.Equal(cfg.GetString(ConfigEvaluator), "counting")
	is.Equal(cfg.GetInt(ConfigMaxDepth), 6)
	is.True(cfg.GetBool(ConfigDebug))
	is.Equal(cfg.Args(), []string{"WEEE", "1.5"})
	// untouched keys keep their defaults
	is.Equal(cfg.GetInt(ConfigTTMaxEntries), 200000)
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("OTHELLO_TT_MAX_ENTRIES", "1234")
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.GetInt(ConfigTTMaxEntries), 1234)

	// flags beat the environment
	is.NoErr(cfg.Load([]string{"--tt-max-entries", "99"}))
	is.Equal(cfg.GetInt(ConfigTTMaxEntries), 99)
}

func TestLoadConfigFile(t *testing.T) {
	is := is.New(t)
	fn := filepath.Join(t.TempDir(), "othello.yaml")
	is.NoErr(os.WriteFile(fn, []byte("evaluator: counting\nmin-remaining: 10ms\n"), 0644))
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--config-file", fn}))
	is.Equal(cfg.GetString(ConfigEvaluator), "counting")
	is.Equal(cfg.GetDuration(ConfigMinRemaining), 10*time.Millisecond)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--no-such-flag"})
	is.True(errors.Is(err, ErrBadConfig))
	err = cfg.Load([]string{"--config-file", "/nonexistent/othello.yaml"})
	is.True(errors.Is(err, ErrBadConfig))
}
