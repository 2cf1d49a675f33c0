// Package configs provides the Configuration type for lifegen.
package configs

import (
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/macropower/lifegen/api"
	"github.com/macropower/lifegen/api/v1beta1"
	"github.com/macropower/lifegen/pkg/build"
	"github.com/macropower/lifegen/pkg/ruleset"
	"github.com/macropower/lifegen/pkg/yaml"
)

//go:generate go run ../../../internal/schemagen -root ../../.. -o configs.v1beta1.json

// Kind is the kind of [Config] documents.
const Kind = "Configuration"

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	//go:embed configs.v1beta1.json
	schemaJSON []byte

	// ValidKinds contains the valid kind values for configurations.
	ValidKinds = []string{Kind}

	// DefaultValidator validates configuration against the JSON schema.
	DefaultValidator = yaml.MustNewValidator("/configs.v1beta1.json", schemaJSON)

	_ v1beta1.Object = (*Config)(nil)
)

// UIConfig controls terminal output.
type UIConfig struct {
	// Chroma style used for highlighted output and errors. "auto" selects a
	// light or dark style based on the terminal background.
	Theme string `json:"theme,omitempty" jsonschema:"title=Theme"`
}

// Config represents the lifegen configuration.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	Rulesets         *ruleset.Config `json:",inline"`
	Build            *build.Config   `json:",inline"`
	UI               *UIConfig       `json:"ui,omitempty" jsonschema:"title=UI"`
	v1beta1.TypeMeta `json:",inline"`
}

// New creates a new [Config] with default values.
func New() *Config {
	c := &Config{
		TypeMeta: v1beta1.TypeMeta{
			APIVersion: v1beta1.APIVersion,
			Kind:       Kind,
		},
	}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults initializes nil fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.UI == nil {
		c.UI = &UIConfig{}
	}

	if c.UI.Theme == "" {
		c.UI.Theme = "auto"
	}

	if c.Rulesets == nil {
		c.Rulesets = ruleset.NewConfig()
	} else {
		c.Rulesets.EnsureDefaults()
	}

	if c.Build == nil {
		c.Build = build.NewConfig()
	} else {
		c.Build.EnsureDefaults()
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	err := v1beta1.CheckTypeMeta(c, ValidKinds...)
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	var errs []error

	if c.Rulesets != nil {
		err = c.Rulesets.Validate()
		if err != nil {
			errs = append(errs, fmt.Errorf("validate rulesets: %w", err))
		}
	}

	if c.Build != nil {
		err = c.Build.Validate()
		if err != nil {
			errs = append(errs, fmt.Errorf("validate build config: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, ValidKinds)
}

// MarshalYAML serializes the config to YAML.
func (c Config) MarshalYAML() ([]byte, error) {
	type alias Config

	b, err := api.MarshalYAML(alias(c))
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return b, nil
}

// DefaultYAML returns the embedded default config.yaml.
func DefaultYAML() []byte {
	return defaultConfigYAML
}

// WriteDefault writes the embedded default config.yaml to the specified path.
func WriteDefault(path string, force bool) error {
	err := api.WriteDefaultFile(path, defaultConfigYAML, force, "configuration")
	if err != nil {
		return fmt.Errorf("write default config: %w", err)
	}

	return nil
}

// GetPath returns the path to the user configuration file.
func GetPath() string {
	return api.GetConfigPath("config.yaml")
}
