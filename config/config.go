package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDataPath       = "data-path"
	ConfigLexiconPath    = "lexicon-path"
	ConfigDefaultLexicon = "default-lexicon"
	ConfigDebug          = "debug"
	ConfigNatsURL        = "nats-url"
	ConfigNatsSubject    = "nats-subject"
	ConfigCPUProfile     = "cpu-profile"
	ConfigMemProfile     = "mem-profile"
	ConfigQueryTimeout   = "query-timeout"

	// A YAML letter distribution file; empty means English.
	ConfigLetterDistribution = "letter-distribution"
	// The AWS Lambda function that lookup clients may invoke instead of
	// going through NATS.
	ConfigLambdaFunction = "lambda-function"
)

type Config struct {
	*viper.Viper

	args []string
}

// DefaultConfig returns a config with all defaults set and no flags or
// environment applied yet. Tests use it directly.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDataPath, "./data")
	c.SetDefault(ConfigLexiconPath, "./data/lexica")
	c.SetDefault(ConfigDefaultLexicon, "NWL23")
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigNatsURL, "nats://localhost:4222")
	c.SetDefault(ConfigNatsSubject, "lexlookup.query")
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigMemProfile, "")
	c.SetDefault(ConfigQueryTimeout, 10*time.Second)
	c.SetDefault(ConfigLetterDistribution, "")
	c.SetDefault(ConfigLambdaFunction, "")
}

// Load parses args and the LEXLOOKUP_* environment into the config. Flags
// win over environment variables, which win over defaults.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.SetEnvPrefix("lexlookup")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	c.setDefaults()

	fs := pflag.NewFlagSet("lexlookup", pflag.ContinueOnError)
	fs.String(ConfigDataPath, "./data", "directory holding data files")
	fs.String(ConfigLexiconPath, "./data/lexica", "directory holding word lists (one word per line, optionally gzipped)")
	fs.String(ConfigDefaultLexicon, "NWL23", "the default lexicon to use")
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigNatsURL, "nats://localhost:4222", "the NATS server URL")
	fs.String(ConfigNatsSubject, "lexlookup.query", "the NATS subject to answer lookups on")
	fs.String(ConfigCPUProfile, "", "file to write a CPU profile to")
	fs.String(ConfigMemProfile, "", "file to write a memory profile to")
	fs.Duration(ConfigQueryTimeout, 10*time.Second, "the longest a single lookup may run for")
	fs.String(ConfigLetterDistribution, "", "YAML letter distribution for random racks (default English)")
	fs.String(ConfigLambdaFunction, "", "the lookup lambda's function name or ARN")
	// Unknown flags and positional arguments belong to the command line
	// of the shell, not to us.
	fs.ParseErrorsWhitelist.UnknownFlags = true
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	// Only bind flags that were actually given, so that env vars are not
	// shadowed by flag defaults.
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err == nil {
			err = c.BindPFlag(f.Name, f)
		}
	})
	return err
}

// AdjustRelativePaths rewrites the relative data paths to be relative to
// basePath (normally the directory of the executable) when they don't
// exist relative to the working directory.
func (c *Config) AdjustRelativePaths(basePath string) {
	for _, key := range []string{ConfigDataPath, ConfigLexiconPath, ConfigLetterDistribution} {
		p := c.GetString(key)
		if filepath.IsAbs(p) || p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			continue
		}
		c.Set(key, filepath.Join(basePath, p))
	}
}

// SanitizedSettings returns all settings, suitable for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}

func (c *Config) LexiconPath() string {
	return c.GetString(ConfigLexiconPath)
}

func (c *Config) DefaultLexicon() string {
	return c.GetString(ConfigDefaultLexicon)
}

// Args returns the positional arguments left over after Load parsed the
// flags. Everything after a bare -- is positional.
func (c *Config) Args() []string {
	return c.args
}
