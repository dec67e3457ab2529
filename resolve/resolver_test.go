package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dc03/wis/ast"
	"github.com/dc03/wis/depm"
	"github.com/dc03/wis/report"
	"github.com/dc03/wis/resolve"
	"github.com/dc03/wis/syntax"
	"github.com/dc03/wis/typing"
)

func resolveSource(t *testing.T, source string) (*report.Sink, *depm.Module) {
	sink := report.New(report.LevelSilent)
	module := depm.NewModule("test", ".")
	registry := depm.NewRegistry()
	registry.Append(module, 0)

	stmts, _ := syntax.ParseModule(sink, source, module, registry, 0)
	module.Statements = stmts

	require.False(t, sink.HadError(), "unexpected parse error")

	resolve.Check(sink, module)
	return sink, module
}

func TestResolveArithmeticWidening(t *testing.T) {
	_, module := resolveSource(t, "var x = 1 + 2.5;\n")

	v, ok := module.Statements[0].(*ast.VarStmt)
	require.True(t, ok)
	require.Equal(t, typing.KindFloat, v.ResolvedType.Kind)

	bin := v.Initializer.(*ast.Binary)
	assert.Equal(t, typing.ConversionIntToFloat, bin.Left.Resolved().Conv)
	assert.Equal(t, typing.ConversionNone, bin.Right.Resolved().Conv)
}

func TestResolveVisibilityEnforcement(t *testing.T) {
	src := `class Box {
private var secret: int = 1;
public fn peek() -> int {
return this.secret;
}
}
fn leak(b: Box) -> int {
return b.secret;
}
`
	sink, _ := resolveSource(t, src)
	assert.True(t, sink.HadError())
}

func TestResolveVisibilityAllowsInternalAccess(t *testing.T) {
	src := `class Box {
private var secret: int = 1;
public fn peek() -> int {
return this.secret;
}
}
`
	sink, _ := resolveSource(t, src)
	assert.False(t, sink.HadError())
}

func TestResolveUndefinedNameIsError(t *testing.T) {
	sink, _ := resolveSource(t, "var x = y;\n")
	assert.True(t, sink.HadError())
}

func TestResolveTypeMismatchAssignment(t *testing.T) {
	sink, _ := resolveSource(t, "var x: string = 1;\n")
	assert.True(t, sink.HadError())
}

func TestResolveIdempotentOnSecondPass(t *testing.T) {
	sink := report.New(report.LevelSilent)
	module := depm.NewModule("test", ".")
	registry := depm.NewRegistry()
	registry.Append(module, 0)

	stmts, _ := syntax.ParseModule(sink, "var x = 1 + 2;\n", module, registry, 0)
	module.Statements = stmts

	resolve.Check(sink, module)
	firstHadError := sink.HadError()
	firstType := module.Statements[0].(*ast.VarStmt).ResolvedType

	resolve.Check(sink, module)
	assert.Equal(t, firstHadError, sink.HadError())
	assert.True(t, typing.Equals(firstType, module.Statements[0].(*ast.VarStmt).ResolvedType))
}
