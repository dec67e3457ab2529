package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dc03/wis/ast"
	"github.com/dc03/wis/depm"
	"github.com/dc03/wis/report"
)

func parseSource(t *testing.T, source string) ([]ast.Stmt, *report.Sink, *depm.Module) {
	sink := report.New(report.LevelSilent)
	module := depm.NewModule("test", ".")
	registry := depm.NewRegistry()
	registry.Append(module, 0)

	stmts, _ := ParseModule(sink, source, module, registry, 0)
	return stmts, sink, module
}

func TestParseNewlineAsTerminator(t *testing.T) {
	stmts, sink, _ := parseSource(t, "var x = 1\nvar y = 2\n")
	assert.False(t, sink.HadError())
	require.Len(t, stmts, 2)
	assert.IsType(t, &ast.VarStmt{}, stmts[0])
	assert.IsType(t, &ast.VarStmt{}, stmts[1])
}

func TestParseTupleMemberChain(t *testing.T) {
	stmts, sink, _ := parseSource(t, "x.2.0;")
	assert.False(t, sink.HadError())
	require.Len(t, stmts, 1)

	exprStmt, ok := stmts[0].(*ast.ExpressionStmt)
	require.True(t, ok)

	outer, ok := exprStmt.Expression.(*ast.Get)
	require.True(t, ok)
	assert.Equal(t, "0", outer.Name)

	inner, ok := outer.Object.(*ast.Get)
	require.True(t, ok)
	assert.Equal(t, "2", inner.Name)

	_, ok = inner.Object.(*ast.Variable)
	assert.True(t, ok)
}

func TestParseForLoopDesugaring(t *testing.T) {
	stmts, sink, _ := parseSource(t, "for(var i = 0; i < 10; i = i + 1) { break; }")
	assert.False(t, sink.HadError())
	require.Len(t, stmts, 1)

	block, ok := stmts[0].(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Stmts, 2)

	assert.IsType(t, &ast.VarStmt{}, block.Stmts[0])

	whileStmt, ok := block.Stmts[1].(*ast.WhileStmt)
	require.True(t, ok)
	require.Len(t, whileStmt.Body.Stmts, 2)
	assert.IsType(t, &ast.BreakStmt{}, whileStmt.Body.Stmts[0])
	assert.IsType(t, &ast.ExpressionStmt{}, whileStmt.Body.Stmts[1])
}

func TestParseAssignmentTargetError(t *testing.T) {
	_, sink, _ := parseSource(t, "1 + 2 = 3;")
	assert.True(t, sink.HadError())
}

func TestParseDuplicateConstructor(t *testing.T) {
	src := `class Box {
public fn Box() -> unit {
}
public fn Box() -> unit {
}
}
`
	_, sink, module := parseSource(t, src)
	assert.True(t, sink.HadError())
	assert.Contains(t, module.Classes, "Box")
}

func TestParseImportCycleShortCircuit(t *testing.T) {
	sink := report.New(report.LevelSilent)
	registry := depm.NewRegistry()

	b := depm.NewModule("b", ".")
	registry.Append(b, 1)

	a := depm.NewModule("a", ".")
	registry.Append(a, 0)

	idx, ok := registry.Find("b")
	require.True(t, ok)
	registry.Lift(idx, 1)
	a.Imported = append(a.Imported, idx)

	assert.GreaterOrEqual(t, registry.Depth(idx), 1)
	assert.Equal(t, 2, registry.Len())
	_ = sink
}
