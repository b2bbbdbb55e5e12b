// Package config loads the verification service configuration from a .env file,
// an optional YAML file and the process environment.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/erc7824/nitrolite/multisig/pkg/log"
	"github.com/erc7824/nitrolite/multisig/pkg/sign"
)

const (
	configDirPathEnv     = "MULTISIG_CONFIG_DIR_PATH"
	defaultConfigDirPath = "."
	configFileName       = "verifier.yaml"
	legacyEnabledEnv     = "MULTISIG_LEGACY_ENABLED"
	ss58PrefixEnv        = "MULTISIG_SS58_PREFIX"
)

// Config is the verification service configuration.
//
// Values are resolved in this order, later sources winning: env-default tags, the
// YAML file, then environment variables (including those loaded from .env).
type Config struct {
	Log log.Config `yaml:"log"`

	// EnabledSchemes lists the schemes the service accepts. Signatures under any
	// other scheme are rejected without being checked.
	EnabledSchemes []string `env:"MULTISIG_SCHEMES" env-default:"ed25519,sr25519,ecdsa" yaml:"schemes" validate:"min=1,dive,scheme"`
	// LegacyEnabled allows verification of untagged legacy signatures.
	LegacyEnabled bool `env:"MULTISIG_LEGACY_ENABLED" env-default:"true" yaml:"legacy_enabled"`
	// BatchConcurrency bounds the number of concurrent verifications in a batch.
	BatchConcurrency int `env:"MULTISIG_BATCH_CONCURRENCY" env-default:"8" yaml:"batch_concurrency" validate:"min=1,max=1024"`
	// SS58Prefix is the network prefix used when rendering addresses in logs.
	SS58Prefix       uint16 `env:"MULTISIG_SS58_PREFIX" env-default:"42" yaml:"ss58_prefix" validate:"max=16383"`
	MetricsNamespace string `env:"MULTISIG_METRICS_NAMESPACE" env-default:"multisig" yaml:"metrics_namespace" validate:"required"`
}

// Load reads the configuration from the directory named by MULTISIG_CONFIG_DIR_PATH
// (default: the working directory). A missing .env or verifier.yaml is not an error.
func Load(logger log.Logger) (*Config, error) {
	logger = logger.WithName("config")

	configDirPath := os.Getenv(configDirPathEnv)
	if configDirPath == "" {
		configDirPath = defaultConfigDirPath
	}

	dotEnvPath := filepath.Join(configDirPath, ".env")
	logger.Info("loading .env file", "path", dotEnvPath)
	if err := godotenv.Load(dotEnvPath); err != nil {
		logger.Warn(".env file not found", "path", dotEnvPath)
	}

	var cfg Config
	yamlPath := filepath.Join(configDirPath, configFileName)
	explicit, err := readFile(yamlPath, &cfg)
	switch {
	case err == nil:
		logger.Info("loaded config file", "path", yamlPath)
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("config file not found", "path", yamlPath)
	default:
		return nil, err
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to read environment")
	}
	explicit.restore(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info("configuration loaded",
		"schemes", strings.Join(cfg.EnabledSchemes, ","),
		"legacy", cfg.LegacyEnabled,
		"batchConcurrency", cfg.BatchConcurrency)
	return &cfg, nil
}

// fileValues holds the file settings whose zero value is meaningful. cleanenv
// treats a zero field as unset and applies its env-default over it.
type fileValues struct {
	LegacyEnabled *bool   `yaml:"legacy_enabled"`
	SS58Prefix    *uint16 `yaml:"ss58_prefix"`
}

// restore puts back the values the file set explicitly, unless the environment
// overrides them.
func (v fileValues) restore(cfg *Config) {
	if _, fromEnv := os.LookupEnv(legacyEnabledEnv); v.LegacyEnabled != nil && !fromEnv {
		cfg.LegacyEnabled = *v.LegacyEnabled
	}
	if _, fromEnv := os.LookupEnv(ss58PrefixEnv); v.SS58Prefix != nil && !fromEnv {
		cfg.SS58Prefix = *v.SS58Prefix
	}
}

// readFile decodes the YAML file at path into cfg and returns the settings it
// sets explicitly.
func readFile(path string, cfg *Config) (fileValues, error) {
	var explicit fileValues
	data, err := os.ReadFile(path)
	if err != nil {
		return explicit, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return explicit, errors.Wrapf(err, "failed to parse %s", path)
	}
	if err := yaml.Unmarshal(data, &explicit); err != nil {
		return explicit, errors.Wrapf(err, "failed to parse %s", path)
	}
	return explicit, nil
}

// Validate checks field ranges and scheme names.
func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

func newValidator() *validator.Validate {
	validate := validator.New()
	if err := validate.RegisterValidation("scheme", func(fl validator.FieldLevel) bool {
		_, err := sign.ParseType(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return validate
}

// Schemes returns the enabled schemes in configuration order, without duplicates.
func (c *Config) Schemes() ([]sign.Type, error) {
	seen := make(map[sign.Type]bool, len(c.EnabledSchemes))
	out := make([]sign.Type, 0, len(c.EnabledSchemes))
	for _, name := range c.EnabledSchemes {
		t, err := sign.ParseType(name)
		if err != nil {
			return nil, errors.Wrap(err, "invalid scheme in configuration")
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out, nil
}

// SchemeEnabled reports whether signatures under t are accepted.
func (c *Config) SchemeEnabled(t sign.Type) bool {
	for _, name := range c.EnabledSchemes {
		if parsed, err := sign.ParseType(name); err == nil && parsed == t {
			return true
		}
	}
	return false
}
