package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigBoardSize), 5)
	is.Equal(cfg.GetString(ConfigSearchMode), "iterative")
	is.Equal(cfg.GetInt(ConfigAspirationWindow), 50)
	is.Equal(cfg.GetInt(ConfigMaxDepth), 60)
	is.Equal(cfg.GetDuration(ConfigSearchTime), 5*time.Second)
	is.Equal(cfg.GetBool(ConfigNullWindowSameTurn), false)
}

func TestFlagOverrides(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--board-size", "7", "--search-mode", "fixed", "--search-time=250ms"})
	is.NoErr(err)
	is.Equal(cfg.GetInt(ConfigBoardSize), 7)
	is.Equal(cfg.GetString(ConfigSearchMode), "fixed")
	is.Equal(cfg.GetDuration(ConfigSearchTime), 250*time.Millisecond)
	// untouched flags keep their defaults
	is.Equal(cfg.GetInt(ConfigHistoryDecay), 8)
}

func TestEnvOverrides(t *testing.T) {
	is := is.New(t)
	t.Setenv("OUST_SEARCH_DEPTH", "6")
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.GetInt(ConfigSearchDepth), 6)
}

func TestConfigFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "oust.yaml")
	is.NoErr(os.WriteFile(path, []byte("eval-mobility: 3\nbot-subject: test.move\n"), 0o644))
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--config-file", path}))
	is.Equal(cfg.GetInt(ConfigEvalMobility), 3)
	is.Equal(cfg.GetString(ConfigBotSubject), "test.move")
}

func TestBadSearchMode(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--search-mode", "sometimes"})
	is.Equal(err, ErrBadSearchMode)
}

func TestPositionalArgs(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"c1", "--board-size", "3", "a3"}))
	is.Equal(cfg.GetInt(ConfigBoardSize), 3)
	is.Equal(cfg.Args(), []string{"c1", "a3"})
}
