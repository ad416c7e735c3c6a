// Package config loads layered configuration: defaults, an optional YAML
// config file, a .env file and IPRACTICE_* environment variables, with
// command-line flags taking precedence over all of them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/interview-practice/internal/oracle"
	"github.com/abhisek/interview-practice/internal/practice"
)

// MethodAuto picks semantic comparison when an oracle is available and
// substring comparison otherwise.
const MethodAuto = "auto"

// Config holds application configuration.
type Config struct {
	Env       string  `mapstructure:"env"`       // "production" switches to JSON logs
	Bank      string  `mapstructure:"bank"`      // bank file path; empty = default data dir
	DB        string  `mapstructure:"db"`        // history DSN; empty = default data dir
	Method    string  `mapstructure:"method"`    // auto, exact, substring or semantic
	Threshold float64 `mapstructure:"threshold"` // semantic match threshold
	Verbose   bool    `mapstructure:"verbose"`
	Oracle    Oracle  `mapstructure:"oracle"`
}

// Oracle is the similarity oracle section.
type Oracle struct {
	Provider   string        `mapstructure:"provider"`
	Timeout    time.Duration `mapstructure:"timeout"`
	OpenAI     Provider      `mapstructure:"openai"`
	Gemini     Provider      `mapstructure:"gemini"`
	Anthropic  Provider      `mapstructure:"anthropic"`
	OpenRouter Provider      `mapstructure:"openrouter"`
	Retry      Retry         `mapstructure:"retry"`
}

// Provider holds per-backend settings.
type Provider struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Retry configures backoff for transient oracle failures.
type Retry struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// Options controls where Load looks for input.
type Options struct {
	// ConfigFile is an explicit config file. When empty, DefaultConfigPath
	// is tried and a missing file is not an error.
	ConfigFile string

	// EnvFile is loaded into the process environment when it exists.
	// Default: ".env".
	EnvFile string

	// Flags, when set, override file and environment values for the flags
	// the user actually passed.
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"bank":      "bank",
	"db":        "db",
	"method":    "method",
	"threshold": "threshold",
	"verbose":   "verbose",
	"provider":  "oracle.provider",
}

// Load reads configuration from all sources.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("IPRACTICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// API keys use short names rather than the nested key path.
	_ = v.BindEnv("oracle.openai.api_key", "IPRACTICE_OPENAI_API_KEY")
	_ = v.BindEnv("oracle.gemini.api_key", "IPRACTICE_GEMINI_API_KEY")
	_ = v.BindEnv("oracle.anthropic.api_key", "IPRACTICE_ANTHROPIC_API_KEY")
	_ = v.BindEnv("oracle.openrouter.api_key", "IPRACTICE_OPENROUTER_API_KEY")
	_ = v.BindEnv("oracle.provider", "IPRACTICE_PROVIDER", "IPRACTICE_ORACLE_PROVIDER")

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if cfg.Threshold < -1 || cfg.Threshold > 1 {
		return nil, fmt.Errorf("threshold %v out of range [-1, 1]", cfg.Threshold)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := oracle.DefaultConfig()

	v.SetDefault("env", "local")
	v.SetDefault("bank", "")
	v.SetDefault("db", "")
	v.SetDefault("method", MethodAuto)
	v.SetDefault("threshold", practice.DefaultThreshold)
	v.SetDefault("verbose", false)

	v.SetDefault("oracle.provider", "")
	v.SetDefault("oracle.timeout", d.Timeout)
	v.SetDefault("oracle.openai.api_key", "")
	v.SetDefault("oracle.openai.model", d.OpenAI.Model)
	v.SetDefault("oracle.openai.base_url", "")
	v.SetDefault("oracle.gemini.api_key", "")
	v.SetDefault("oracle.gemini.model", d.Gemini.Model)
	v.SetDefault("oracle.gemini.base_url", "")
	v.SetDefault("oracle.anthropic.api_key", "")
	v.SetDefault("oracle.anthropic.model", d.Anthropic.Model)
	v.SetDefault("oracle.anthropic.base_url", "")
	v.SetDefault("oracle.openrouter.api_key", "")
	v.SetDefault("oracle.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("oracle.openrouter.base_url", "")
	v.SetDefault("oracle.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("oracle.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("oracle.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("oracle.retry.multiplier", d.Retry.Multiplier)
}

func readConfigFile(v *viper.Viper, explicit string) error {
	path := explicit
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil
		}
		if _, err := os.Stat(p); err != nil {
			return nil
		}
		path = p
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error loading config file: %w", err)
	}
	return nil
}

// DefaultConfigPath resolves the config file location:
// $XDG_CONFIG_HOME/interview-practice/config.yaml, falling back to
// ~/.config/interview-practice/config.yaml.
func DefaultConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "interview-practice", "config.yaml"), nil
}

// OracleConfig converts the oracle section to an oracle.Config. When no
// provider is set, the vendor API key variables are probed.
func (c *Config) OracleConfig() oracle.Config {
	out := oracle.DefaultConfig()
	out.Provider = c.Oracle.Provider
	if c.Oracle.Timeout > 0 {
		out.Timeout = c.Oracle.Timeout
	}

	out.OpenAI = oracle.OpenAIConfig(overlay(providerFields(out.OpenAI), c.Oracle.OpenAI))
	out.Gemini = oracle.GeminiConfig(overlay(providerFields(out.Gemini), c.Oracle.Gemini))
	out.Anthropic = oracle.AnthropicConfig(overlay(providerFields(out.Anthropic), c.Oracle.Anthropic))
	out.OpenRouter = oracle.OpenRouterConfig(overlay(providerFields(out.OpenRouter), c.Oracle.OpenRouter))

	r := c.Oracle.Retry
	if r.MaxAttempts > 0 {
		out.Retry.MaxAttempts = r.MaxAttempts
	}
	if r.InitialWait > 0 {
		out.Retry.InitialWait = r.InitialWait
	}
	if r.MaxWait > 0 {
		out.Retry.MaxWait = r.MaxWait
	}
	if r.Multiplier > 0 {
		out.Retry.Multiplier = r.Multiplier
	}

	if out.Provider == "" {
		out.Provider = configuredProvider(out)
	}
	if out.Provider == "" {
		out, _ = oracle.Discover(out)
	}
	return out
}

// configuredProvider returns the first provider, in discovery order, whose
// API key came from configuration.
func configuredProvider(cfg oracle.Config) string {
	switch {
	case cfg.Gemini.APIKey != "":
		return oracle.ProviderGemini
	case cfg.OpenAI.APIKey != "":
		return oracle.ProviderOpenAI
	case cfg.Anthropic.APIKey != "":
		return oracle.ProviderAnthropic
	case cfg.OpenRouter.APIKey != "":
		return oracle.ProviderOpenRouter
	}
	return ""
}

// providerFields shares the layout of the oracle backend configs.
type providerFields struct {
	APIKey  string
	Model   string
	BaseURL string
}

func overlay(base providerFields, p Provider) providerFields {
	if p.APIKey != "" {
		base.APIKey = p.APIKey
	}
	if p.Model != "" {
		base.Model = p.Model
	}
	if p.BaseURL != "" {
		base.BaseURL = p.BaseURL
	}
	return base
}

// ResolveMethod turns the configured method name into a practice.Method.
func (c *Config) ResolveMethod(semanticAvailable bool) (practice.Method, error) {
	return ResolveMethod(c.Method, semanticAvailable)
}

// ResolveMethod maps "auto" (or empty) to semantic or substring depending on
// oracle availability and parses anything else.
func ResolveMethod(name string, semanticAvailable bool) (practice.Method, error) {
	if name == "" || strings.EqualFold(name, MethodAuto) {
		if semanticAvailable {
			return practice.MethodSemantic, nil
		}
		return practice.MethodSubstring, nil
	}
	return practice.ParseMethod(name)
}
