// Package config holds the settings shared by the solver binaries. Values
// come from defaults, then FREECELL_* environment variables, then flags.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigMaxNodes              = "max-nodes"
	ConfigLogEvery              = "log-every"
	ConfigVerifyInvariants      = "verify-invariants"
	ConfigDebug                 = "debug"
	ConfigNatsURL               = "nats-url"
	ConfigNatsSubject           = "nats-subject"
	ConfigBatchThreads          = "batch-threads"
	ConfigResultsDB             = "results-db"
	ConfigVisitedMemoryFraction = "visited-memory-fraction"
	ConfigCPUProfile            = "cpu-profile"
)

const (
	DefaultMaxNodes = 100000
	DefaultLogEvery = 1000
	DefaultSubject  = "freecell.solve"
)

type Config struct {
	*viper.Viper
}

// DefaultConfig returns a config holding only the default values. Tests
// and library callers use it directly.
func DefaultConfig() *Config {
	c := &Config{viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigMaxNodes, DefaultMaxNodes)
	c.SetDefault(ConfigLogEvery, DefaultLogEvery)
	c.SetDefault(ConfigVerifyInvariants, false)
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigNatsURL, "nats://localhost:4222")
	c.SetDefault(ConfigNatsSubject, DefaultSubject)
	c.SetDefault(ConfigBatchThreads, 0)
	c.SetDefault(ConfigResultsDB, "")
	c.SetDefault(ConfigVisitedMemoryFraction, 0.25)
	c.SetDefault(ConfigCPUProfile, "")
}

// Load reads the environment and parses args. Unknown flags are an error.
func (c *Config) Load(args []string) error {
	return c.LoadFlagSet(pflag.NewFlagSet("freecell", pflag.ContinueOnError), args)
}

// LoadFlagSet is Load for binaries with flags of their own: the config
// flags are added to fs before it parses args.
func (c *Config) LoadFlagSet(fs *pflag.FlagSet, args []string) error {
	c.Viper = viper.New()
	c.setDefaults()

	fs.Int(ConfigMaxNodes, DefaultMaxNodes, "node exploration ceiling for one search")
	fs.Int(ConfigLogEvery, DefaultLogEvery, "log search progress every this many nodes")
	fs.Bool(ConfigVerifyInvariants, false, "check card conservation on every generated state")
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigNatsURL, "nats://localhost:4222", "the NATS server URL")
	fs.String(ConfigNatsSubject, DefaultSubject, "subject the bot listens on")
	fs.Int(ConfigBatchThreads, 0, "concurrent searches for batch runs (0 = number of CPUs)")
	fs.String(ConfigResultsDB, "", "sqlite file to store batch results in")
	fs.Float64(ConfigVisitedMemoryFraction, 0.25, "fraction of system memory the visited set may be pre-sized to")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c.SetEnvPrefix("freecell")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	// Only flags that were set on the command line override the
	// environment; viper falls back to the flag defaults otherwise.
	return c.BindPFlags(fs)
}

// SanitizedSettings returns the settings for logging. There are no secrets
// beyond credentials embedded in the NATS URL.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	if u, ok := settings[ConfigNatsURL].(string); ok && strings.Contains(u, "@") {
		settings[ConfigNatsURL] = "<redacted>"
	}
	return settings
}
