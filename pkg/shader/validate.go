package shader

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"
	"github.com/gogpu/naga/wgsl"
)

// ValidationError is a WGSL compiler diagnostic mapped back to the file that
// produced the offending line.
type ValidationError struct {
	Err    error
	Origin Origin
	// Line and Column locate the diagnostic in the flattened unit.
	Line   int
	Column int
}

func (e *ValidationError) Error() string {
	switch {
	case e.Origin.Path != "":
		return fmt.Sprintf("%s:%d: invalid wgsl: %v", e.Origin.Path, e.Origin.Line, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("%d:%d: invalid wgsl: %v", e.Line, e.Column, e.Err)
	}

	return fmt.Sprintf("invalid wgsl: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate parses, lowers and validates the unit's WGSL source.
func Validate(u *Unit) error {
	mod, err := u.lower()
	if err != nil {
		return err
	}

	verrs, err := naga.Validate(mod)
	if err != nil {
		return u.validationError(err)
	}

	if len(verrs) > 0 {
		return u.validationError(errors.Join(validationErrors(verrs)...))
	}

	return nil
}

// CompileSPIRV compiles the unit's WGSL source to a SPIR-V binary.
func CompileSPIRV(u *Unit) ([]byte, error) {
	mod, err := u.lower()
	if err != nil {
		return nil, err
	}

	b, err := naga.GenerateSPIRV(mod, spirv.Options{Version: spirv.Version1_3})
	if err != nil {
		return nil, fmt.Errorf("generate spir-v: %w", err)
	}

	return b, nil
}

func (u *Unit) lower() (*ir.Module, error) {
	ast, err := naga.Parse(u.Source)
	if err != nil {
		return nil, u.validationError(err)
	}

	mod, err := naga.LowerWithSource(ast, u.Source)
	if err != nil {
		return nil, u.validationError(err)
	}

	return mod, nil
}

func (u *Unit) validationError(err error) *ValidationError {
	verr := &ValidationError{Err: err}

	var (
		parseErr  wgsl.ParseError
		sourceErr *wgsl.SourceErrors
	)

	switch {
	case errors.As(err, &parseErr):
		verr.Line, verr.Column = parseErr.Token.Line, parseErr.Token.Column
	case errors.As(err, &sourceErr) && len(*sourceErr) > 0:
		start := (*sourceErr)[0].Span.Start
		verr.Line, verr.Column = start.Line, start.Column

		// Lowering errors are reported at the start of the enclosing
		// function. Point at the generated code instead when it lives there.
		if o, ok := u.replacedOrigin(verr.Line); ok {
			verr.Origin = o

			return verr
		}
	}

	if o, ok := u.Origin(verr.Line); ok {
		verr.Origin = o
	}

	return verr
}

func validationErrors(verrs []ir.ValidationError) []error {
	errs := make([]error, 0, len(verrs))
	for _, v := range verrs {
		errs = append(errs, v)
	}

	return errs
}
