// Package config loads the optional hestale configuration file.
//
// The file is chosen by the --config flag or, failing that, the
// HESTALE_CONFIG environment variable. There is no automatic discovery:
// without either, the defaults are used. Command-line flags override
// whatever the file sets.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/TheusHen/hestale/hestale"
	"github.com/TheusHen/hestale/hestale/crypto"
	"github.com/TheusHen/hestale/hestale/passphrase"
	"github.com/TheusHen/hestale/hestale/typewriter"
)

// EnvVar names the environment variable holding the config path.
const EnvVar = "HESTALE_CONFIG"

var ErrInvalid = errors.New("config: invalid configuration")

// Config is the hestale CLI configuration.
type Config struct {
	// PassphraseFile is the plain-text passphrase store.
	PassphraseFile string `yaml:"passphrase_file"`

	// Strategy is "standard" or "experimental".
	Strategy string `yaml:"strategy"`

	// Clipboard enables copying the derived password via OSC 52.
	Clipboard bool `yaml:"clipboard"`

	Effects      EffectsConfig      `yaml:"effects"`
	Experimental ExperimentalConfig `yaml:"experimental"`

	// Backup holds the default share layout for "hestale backup".
	Backup BackupConfig `yaml:"backup"`
}

// EffectsConfig controls the typewriter output.
type EffectsConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Interval    time.Duration `yaml:"interval"`
	PromptColor string        `yaml:"prompt_color"`
	BannerColor string        `yaml:"banner_color"`
	OutputColor string        `yaml:"output_color"`
	NoiseColor  string        `yaml:"noise_color"`
	ExitColor   string        `yaml:"exit_color"`
}

// ExperimentalConfig holds the Argon2id parameters of the experimental
// strategy. Changing them changes every experimental password.
type ExperimentalConfig struct {
	Time      uint32 `yaml:"time"`
	MemoryKiB uint32 `yaml:"memory_kib"`
	Threads   uint8  `yaml:"threads"`
}

type BackupConfig struct {
	DataShards   int `yaml:"data_shards"`
	ParityShards int `yaml:"parity_shards"`
}

// Default returns the built-in configuration.
func Default() Config {
	stretch := crypto.DefaultStretchParams()
	return Config{
		PassphraseFile: passphrase.DefaultPath,
		Strategy:       hestale.Standard.String(),
		Clipboard:      true,
		Effects: EffectsConfig{
			Enabled:     true,
			Interval:    100 * time.Millisecond,
			PromptColor: "green",
			BannerColor: "blue",
			OutputColor: "green",
			NoiseColor:  "red",
			ExitColor:   "magenta",
		},
		Experimental: ExperimentalConfig{
			Time:      stretch.Time,
			MemoryKiB: stretch.MemoryKiB,
			Threads:   stretch.Threads,
		},
		Backup: BackupConfig{
			DataShards:   3,
			ParityShards: 2,
		},
	}
}

// Load reads the file at path on top of Default. Unknown keys are errors.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve loads flagPath if set, else the file named by EnvVar, else
// returns Default. getenv is usually os.Getenv.
func Resolve(flagPath string, getenv func(string) string) (Config, error) {
	path := flagPath
	if path == "" {
		path = getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks the fields that cannot be checked by decoding alone.
func (c Config) Validate() error {
	if c.PassphraseFile == "" {
		return fmt.Errorf("%w: passphrase_file is empty", ErrInvalid)
	}
	if _, err := hestale.ParseKind(c.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Effects.Interval < 0 {
		return fmt.Errorf("%w: effects.interval is negative", ErrInvalid)
	}
	for _, name := range []string{c.Effects.PromptColor, c.Effects.BannerColor, c.Effects.OutputColor, c.Effects.NoiseColor, c.Effects.ExitColor} {
		if err := typewriter.ValidColor(name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	if err := c.StretchParams().Validate(); err != nil {
		return fmt.Errorf("%w: experimental: %v", ErrInvalid, err)
	}
	if c.Backup.DataShards <= 0 || c.Backup.ParityShards <= 0 {
		return fmt.Errorf("%w: backup shard counts must be positive", ErrInvalid)
	}
	return nil
}

// Kind returns the configured strategy kind. The config must be valid.
func (c Config) Kind() hestale.Kind {
	kind, _ := hestale.ParseKind(c.Strategy)
	return kind
}

// StretchParams returns the Argon2id parameters for the experimental strategy.
func (c Config) StretchParams() crypto.StretchParams {
	return crypto.StretchParams{
		Time:      c.Experimental.Time,
		MemoryKiB: c.Experimental.MemoryKiB,
		Threads:   c.Experimental.Threads,
	}
}
