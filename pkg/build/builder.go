package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/lifegen/assets"
	"github.com/macropower/lifegen/pkg/log"
	"github.com/macropower/lifegen/pkg/rule"
	"github.com/macropower/lifegen/pkg/ruleset"
	"github.com/macropower/lifegen/pkg/shader"
	"github.com/macropower/lifegen/pkg/template"
)

// Emit selects the artifact written by a build.
type Emit string

const (
	EmitWGSL  Emit = "wgsl"
	EmitSPIRV Emit = "spirv"
)

// ErrUnknownEmit is returned for unsupported [Emit] values.
var ErrUnknownEmit = errors.New("unknown emit format")

// ParseEmit parses an [Emit] value; the empty string selects [EmitWGSL].
func ParseEmit(s string) (Emit, error) {
	switch e := Emit(s); e {
	case "":
		return EmitWGSL, nil
	case EmitWGSL, EmitSPIRV:
		return e, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownEmit, s)
}

// Output is the result of a successful build.
type Output struct {
	// Rule is the compiled ruleset.
	Rule *rule.Rule
	// Unit is the assembled shader with origins pointing into the
	// template and its imports.
	Unit *shader.Unit
	// Ruleset is the name of the compiled ruleset.
	Ruleset string
	// Emit is the artifact kind returned by [Output.Bytes].
	Emit Emit
	// SPIRV holds the compiled module when Emit is [EmitSPIRV].
	SPIRV []byte
}

// WGSL returns the assembled WGSL source.
func (o *Output) WGSL() string {
	return o.Unit.Source
}

// Bytes returns the artifact selected by [Output.Emit].
func (o *Output) Bytes() []byte {
	if o.Emit == EmitSPIRV {
		return o.SPIRV
	}

	return []byte(o.Unit.Source)
}

// Files lists the shader files the build read.
func (o *Output) Files() []string {
	return o.Unit.Files
}

// Builder runs the build pipeline. It is safe to call [Builder.Build]
// repeatedly; every call reloads the shader sources.
type Builder struct {
	loader      shader.Loader
	tracer      trace.Tracer
	entry       string
	rulesetName string
	ruleText    string
	indent      string
	debugPath   string
	outputPath  string
	emit        Emit
	validate    bool
}

// BuilderOpt configures a [Builder].
type BuilderOpt func(b *Builder)

// WithLoader sets the shader source loader.
func WithLoader(l shader.Loader) BuilderOpt {
	return func(b *Builder) {
		b.loader = l
	}
}

// WithEntry sets the template path, relative to the loader root.
func WithEntry(entry string) BuilderOpt {
	return func(b *Builder) {
		b.entry = entry
	}
}

// WithRuleset sets the ruleset name and rule text to compile.
func WithRuleset(name, text string) BuilderOpt {
	return func(b *Builder) {
		b.rulesetName = name
		b.ruleText = text
	}
}

// WithValidate toggles WGSL validation of the assembled shader.
func WithValidate(validate bool) BuilderOpt {
	return func(b *Builder) {
		b.validate = validate
	}
}

// WithDebugPath writes the assembled WGSL to path before validation.
func WithDebugPath(path string) BuilderOpt {
	return func(b *Builder) {
		b.debugPath = path
	}
}

// WithOutputPath writes the emitted artifact to path after every build.
func WithOutputPath(path string) BuilderOpt {
	return func(b *Builder) {
		b.outputPath = path
	}
}

// WithEmit selects the artifact kind.
func WithEmit(emit Emit) BuilderOpt {
	return func(b *Builder) {
		b.emit = emit
	}
}

// WithIndent sets the indentation unit of generated rule code.
func WithIndent(indent string) BuilderOpt {
	return func(b *Builder) {
		b.indent = indent
	}
}

// NewBuilder creates a [Builder]. Without options it builds the embedded
// template with the built-in Conway ruleset.
func NewBuilder(opts ...BuilderOpt) *Builder {
	b := &Builder{
		loader:      shader.NewFSLoader(assets.Shaders()),
		tracer:      otel.Tracer("build"),
		entry:       assets.Entry,
		rulesetName: ruleset.DefaultName,
		ruleText:    ruleset.Builtins()[ruleset.DefaultName].Rule,
		indent:      "    ",
		emit:        EmitWGSL,
		validate:    true,
	}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build resolves, compiles, assembles and validates the shader.
// Stages run in child spans of a "build" span.
func (b *Builder) Build(ctx context.Context) (*Output, error) {
	ctx, span := b.tracer.Start(ctx, "build", trace.WithAttributes(
		attribute.String("entry", b.entry),
		attribute.String("ruleset", b.rulesetName),
		attribute.String("emit", string(b.emit)),
	))
	defer span.End()

	out, err := b.build(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build failed")

		return nil, err
	}

	log.WithContext(ctx).DebugContext(ctx, "built shader",
		slog.String("entry", b.entry),
		slog.String("ruleset", b.rulesetName),
		slog.Int("files", len(out.Files())),
		slog.String("size", humanize.Bytes(uint64(len(out.Bytes())))),
	)

	return out, nil
}

func (b *Builder) build(ctx context.Context) (*Output, error) {
	out := &Output{Ruleset: b.rulesetName, Emit: b.emit}

	var unit *shader.Unit

	err := b.stage(ctx, "resolve", func(context.Context) error {
		var err error

		unit, err = shader.ResolveUnit(b.loader, b.entry)
		if err != nil {
			return fmt.Errorf("resolve shader: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	err = b.stage(ctx, "compile", func(context.Context) error {
		var err error

		out.Rule, err = rule.Compile(b.ruleText)
		if err != nil {
			return fmt.Errorf("compile ruleset %q: %w", b.rulesetName, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	err = b.stage(ctx, "assemble", func(context.Context) error {
		code := out.Rule.WGSL(
			rule.WithIndent(b.indent),
			rule.WithBaseIndent(template.MarkerIndent(unit.Source)),
		)

		src, err := template.Assemble(unit.Source, code)
		if err != nil {
			return fmt.Errorf("assemble %s: %w", b.entry, err)
		}

		out.Unit = unit.Replace(src)

		return nil
	})
	if err != nil {
		return nil, err
	}

	if b.debugPath != "" {
		err = b.stage(ctx, "debug", func(ctx context.Context) error {
			return writeFile(ctx, b.debugPath, []byte(out.Unit.Source))
		})
		if err != nil {
			return nil, err
		}
	}

	switch {
	case b.emit == EmitSPIRV:
		err = b.stage(ctx, "spirv", func(context.Context) error {
			var err error

			out.SPIRV, err = shader.CompileSPIRV(out.Unit)

			return err //nolint:wrapcheck // Positioned validation errors.
		})
	case b.validate:
		err = b.stage(ctx, "validate", func(context.Context) error {
			return shader.Validate(out.Unit) //nolint:wrapcheck // Positioned validation errors.
		})
	}
	if err != nil {
		return nil, err
	}

	if b.outputPath != "" {
		err = b.stage(ctx, "write", func(ctx context.Context) error {
			return writeFile(ctx, b.outputPath, out.Bytes())
		})
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (b *Builder) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := b.tracer.Start(ctx, name)
	defer span.End()

	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, name+" failed")
	}

	return err
}

func writeFile(ctx context.Context, path string, data []byte) error {
	dir := filepath.Dir(path)

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	err = os.WriteFile(path, data, 0o644) //nolint:gosec // G306: Shader output is not sensitive.
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	log.WithContext(ctx).DebugContext(ctx, "wrote file",
		slog.String("path", path),
		slog.String("size", humanize.Bytes(uint64(len(data)))),
	)

	return nil
}
