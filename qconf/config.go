/*
Package qconf loads `qbuild.Options` from layered sources: built-in defaults,
an optional YAML file, and environment variables prefixed with "QBUILD_".
Later layers override earlier ones.

Environment variable names map to config keys by dropping the prefix,
lowercasing, and treating a double underscore as nesting:

	QBUILD_PLACEHOLDER                   -> placeholder
	QBUILD_SANITIZER__EXTRA_PATTERNS     -> sanitizer.extra_patterns
	QBUILD_LOGGING__LEVEL                -> logging.level

List values in environment variables are comma-separated.
*/
package qconf

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/mitranim/qbuild"
)

// Prefix of environment variables read by `Load`.
const EnvPrefix = `QBUILD_`

// Settings of a `qbuild.Builder`.
type Config struct {
	// Placeholder style of `Composer.Bind`: "question" or "dollar".
	Placeholder string          `koanf:"placeholder" validate:"oneof=question dollar"`
	Sanitizer   SanitizerConfig `koanf:"sanitizer"`
	Logging     LoggingConfig   `koanf:"logging"`
}

type SanitizerConfig struct {
	// Candidates shorter than this are rejected if they contain ";". Zero
	// disables the check.
	SemicolonThreshold int `koanf:"semicolon_threshold" validate:"gte=0"`

	// Appended to `qbuild.DefaultPatterns`.
	ExtraPatterns []string `koanf:"extra_patterns" validate:"dive,required"`

	// Removed from `qbuild.DefaultPatterns`, compared case-insensitively.
	DisabledDefaults []string `koanf:"disabled_defaults"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"  validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// Returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	return &Config{
		Placeholder: `question`,
		Sanitizer: SanitizerConfig{
			SemicolonThreshold: qbuild.DefaultSemicolonThreshold,
		},
		Logging: LoggingConfig{
			Level:  `warn`,
			Format: `json`,
		},
	}
}

/*
Loads the configuration. Layers:

 1. Defaults from `Default`.
 2. The YAML file at the given path, if the path is non-empty.
 3. Environment variables prefixed with `EnvPrefix`.

The result is validated before returning.
*/
func Load(path string) (*Config, error) {
	k := koanf.New(`.`)

	if err := k.Load(structs.Provider(Default(), `koanf`), nil); err != nil {
		return nil, fmt.Errorf(`failed to load defaults: %w`, err)
	}

	if path != `` {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf(`failed to load config file %s: %w`, path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, `.`, envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf(`failed to load environment variables: %w`, err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf(`failed to process slice fields: %w`, err)
	}

	cfg := &Config{}
	if err := k.Unmarshal(``, cfg); err != nil {
		return nil, fmt.Errorf(`failed to unmarshal configuration: %w`, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(`configuration validation failed: %w`, err)
	}
	return cfg, nil
}

// Checks the `validate` struct tags.
func (self *Config) Validate() error {
	return validator.New().Struct(self)
}

// QBUILD_SANITIZER__SEMICOLON_THRESHOLD -> sanitizer.semicolon_threshold
func envTransformFunc(key string) string {
	key = strings.TrimPrefix(key, EnvPrefix)
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, `__`, `.`)
}

var sliceConfigPaths = []string{
	`sanitizer.extra_patterns`,
	`sanitizer.disabled_defaults`,
}

// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		str, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		var out []string
		for _, val := range strings.Split(str, `,`) {
			val = strings.TrimSpace(val)
			if val != `` {
				out = append(out, val)
			}
		}

		if err := k.Set(path, out); err != nil {
			return fmt.Errorf(`failed to set %s: %w`, path, err)
		}
	}
	return nil
}

/*
Returns the placeholder style. Assumes the config has been validated; unknown
styles fall back to `qbuild.PlaceholderQuestion`.
*/
func (self *Config) PlaceholderStyle() qbuild.Placeholder {
	var out qbuild.Placeholder
	if out.Parse(self.Placeholder) != nil || out == qbuild.PlaceholderInline {
		return qbuild.PlaceholderQuestion
	}
	return out
}

// Default patterns minus the disabled ones, plus the extra ones.
func (self SanitizerConfig) Patterns() []string {
	out := slices.DeleteFunc(slices.Clone(qbuild.DefaultPatterns), func(pat string) bool {
		return slices.ContainsFunc(self.DisabledDefaults, func(val string) bool {
			return strings.EqualFold(val, pat)
		})
	})
	return append(out, self.ExtraPatterns...)
}

/*
Returns a `qbuild.Builder` configured accordingly. Composer and sanitizer
warnings are written to the given output, formatted per `Config.Logging`.
*/
func (self *Config) Builder(out io.Writer) qbuild.Builder {
	log := NewLogger(self.Logging, out)

	san := qbuild.NewSanitizer(self.Sanitizer.SemicolonThreshold, self.Sanitizer.Patterns()...)
	san.Logger = &log

	return qbuild.Builder{Options: qbuild.Options{
		Sanitizer:   san,
		Placeholder: self.PlaceholderStyle(),
		Logger:      &log,
	}}
}
