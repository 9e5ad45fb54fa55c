// Package cel provides the CEL environment used to filter parsed chunks by
// their attributes, e.g. `critical && type != "IDAT"` or `length > 1024`.
package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/twinfer/pngchunk-plugin/pkg/pngchunk"
)

// NewEnvironment creates a CEL environment exposing one chunk per
// evaluation. Integral attributes are declared as int so literals need no
// unsigned suffix in filter expressions.
func NewEnvironment() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("type", cel.StringType),
		cel.Variable("length", cel.IntType),
		cel.Variable("crc", cel.IntType),
		cel.Variable("critical", cel.BoolType),
		cel.Variable("public", cel.BoolType),
		cel.Variable("safe_to_copy", cel.BoolType),
		cel.Variable("reserved_bit_valid", cel.BoolType),
		cel.Variable("data", cel.BytesType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return env, nil
}

// CompileFilter compiles a filter expression against env. The expression
// must evaluate to a boolean.
func CompileFilter(env *cel.Env, expr string) (cel.Program, error) {
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compiling filter %q: %w", expr, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter %q evaluates to %s, want bool", expr, ast.OutputType())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("building filter program: %w", err)
	}
	return program, nil
}

// EvalChunk evaluates a compiled filter against one chunk and reports
// whether the chunk matches.
func EvalChunk(program cel.Program, chunk *pngchunk.Chunk) (bool, error) {
	typ := chunk.Type()
	out, _, err := program.Eval(map[string]any{
		"type":               typ.String(),
		"length":             int64(chunk.Length()),
		"crc":                int64(chunk.CRC()),
		"critical":           typ.IsCritical(),
		"public":             typ.IsPublic(),
		"safe_to_copy":       typ.IsSafeToCopy(),
		"reserved_bit_valid": typ.IsReservedBitValid(),
		"data":               chunk.Data(),
	})
	if err != nil {
		return false, fmt.Errorf("evaluating filter: %w", err)
	}

	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter returned %T, want bool", out.Value())
	}
	return matched, nil
}
