package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/macropower/lifegen/assets"
	"github.com/macropower/lifegen/pkg/shader"
)

// EnvDebugShader enables the debug dump when no debug path is configured.
const EnvDebugShader = "LIFEGEN_DEBUG_SHADER"

// Config configures the build pipeline.
type Config struct {
	Shader *ShaderConfig `json:"shader,omitempty" jsonschema:"title=Shader"`
	Output *OutputConfig `json:"output,omitempty" jsonschema:"title=Output"`
}

// ShaderConfig selects the shader sources.
type ShaderConfig struct {
	// Validate the assembled WGSL. Defaults to true.
	Validate *bool `json:"validate,omitempty" jsonschema:"title=Validate"`
	// Directory containing the template and its imports. When empty, the
	// embedded Game of Life template is used.
	Root string `json:"root,omitempty" jsonschema:"title=Root"`
	// Template path relative to Root.
	Entry string `json:"entry,omitempty" jsonschema:"title=Entry"`
	// Indentation unit for generated rule code.
	Indent string `json:"indent,omitempty" jsonschema:"title=Indent"`
}

// OutputConfig controls what is written.
type OutputConfig struct {
	// Destination file. When empty, output is written to stdout.
	Path string `json:"path,omitempty" jsonschema:"title=Path"`
	// Write the assembled WGSL here before validation.
	DebugPath string `json:"debugPath,omitempty" jsonschema:"title=Debug Path"`
	// Artifact kind.
	Emit Emit `json:"emit,omitempty" jsonschema:"title=Emit,enum=wgsl,enum=spirv"`
}

// NewConfig returns a [Config] with default values.
func NewConfig() *Config {
	c := &Config{}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults initializes nil fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.Shader == nil {
		c.Shader = &ShaderConfig{}
	}

	if c.Shader.Entry == "" {
		c.Shader.Entry = assets.Entry
	}

	if c.Shader.Validate == nil {
		validate := true
		c.Shader.Validate = &validate
	}

	if c.Shader.Indent == "" {
		c.Shader.Indent = "    "
	}

	if c.Output == nil {
		c.Output = &OutputConfig{}
	}

	if c.Output.Emit == "" {
		c.Output.Emit = EmitWGSL
	}
}

// Validate checks field values that the schema cannot.
func (c *Config) Validate() error {
	if c.Output != nil {
		_, err := ParseEmit(string(c.Output.Emit))
		if err != nil {
			return fmt.Errorf("output: %w", err)
		}
	}

	if c.Shader != nil && c.Shader.Root != "" {
		info, err := os.Stat(c.Shader.Root)
		if err != nil {
			return fmt.Errorf("shader root: %w", err)
		}

		if !info.IsDir() {
			return fmt.Errorf("shader root %s: not a directory", c.Shader.Root)
		}
	}

	return nil
}

// DebugPath returns the configured debug dump path. When none is configured
// and [EnvDebugShader] is set, the dump is written next to the entry.
func (c *Config) DebugPath() string {
	if c.Output.DebugPath != "" {
		return c.Output.DebugPath
	}

	if os.Getenv(EnvDebugShader) == "" {
		return ""
	}

	root := c.Shader.Root
	if root == "" {
		root = "."
	}

	return filepath.Join(root, filepath.FromSlash(c.Shader.Entry)+".debug.wgsl")
}

// Loader returns the shader loader for the configured root.
func (c *Config) Loader() shader.Loader {
	if c.Shader.Root == "" {
		return shader.NewFSLoader(assets.Shaders())
	}

	return shader.NewFSLoader(os.DirFS(c.Shader.Root))
}

// Options converts the configuration into [BuilderOpt]s.
func (c *Config) Options() []BuilderOpt {
	return []BuilderOpt{
		WithLoader(c.Loader()),
		WithEntry(c.Shader.Entry),
		WithIndent(c.Shader.Indent),
		WithValidate(*c.Shader.Validate),
		WithDebugPath(c.DebugPath()),
		WithOutputPath(c.Output.Path),
		WithEmit(c.Output.Emit),
	}
}
