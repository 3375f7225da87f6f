package cli

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/toyz/buildergen/internal/errors"
	"github.com/toyz/buildergen/internal/utils"
)

// DefaultConfigFile is looked up in the working directory when no -config
// flag is given
const DefaultConfigFile = "buildergen.yaml"

// Config holds the configuration for the CLI generator
type Config struct {
	// Directories to scan; a trailing "/..." scans recursively
	Directories []string `yaml:"directories"`

	// ModuleName overrides the module path read from go.mod. It is taken to
	// be rooted at the working directory.
	ModuleName string `yaml:"module"`

	// WarnEmpty reports types whose annotated methods were all rejected
	WarnEmpty bool `yaml:"warn_empty"`

	// FileSuffix replaces the default "_builder.go" file name suffix
	FileSuffix string `yaml:"file_suffix"`

	Verbose bool `yaml:"verbose"`
	Quiet   bool `yaml:"quiet"`

	// DryRun prints generated files instead of writing them
	DryRun bool `yaml:"-"`
}

// LoadConfig reads a YAML config file. A missing file yields an empty
// config unless required is set.
func LoadConfig(path string, required bool) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return config, nil
		}
		return nil, errors.WrapConfigurationError(path, "read", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.WrapConfigurationError(path, "parse", err)
	}

	return config, nil
}

// configValidator holds the checks Validate runs, in order
var configValidator = utils.NewValidatorChain(
	utils.Field(func(c *Config) []string { return c.Directories },
		utils.Custom("directories", "at least one directory path is required",
			func(dirs []string) bool { return len(dirs) > 0 })),
	utils.Field(func(c *Config) []string { return c.Directories },
		utils.ValidateEach("directories", utils.NotEmpty("directory"))),
	utils.Custom("verbose", "verbose and quiet are mutually exclusive",
		func(c *Config) bool { return !(c.Verbose && c.Quiet) }),
	utils.Field(func(c *Config) string { return c.ModuleName },
		utils.Conditional(func(s string) bool { return s != "" }, utils.IsModulePath("module"))),
	utils.Field(func(c *Config) string { return c.FileSuffix },
		utils.Conditional(func(s string) bool { return s != "" }, utils.HasSuffix("file_suffix", ".go"))),
)

// Validate checks settings that would otherwise fail late
func (c *Config) Validate() error {
	if err := configValidator.Validate(c); err != nil {
		return errors.Wrap(errors.ConfigurationErrorCode, "invalid configuration", err).
			WithSuggestion("check " + DefaultConfigFile + " and the command line flags")
	}
	return nil
}
