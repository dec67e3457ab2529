package syntax

import (
	"io/ioutil"
	"path/filepath"

	"github.com/dc03/wis/ast"
	"github.com/dc03/wis/depm"
	"github.com/dc03/wis/report"
	"github.com/dc03/wis/resolve"
)

// importDeclaration parses `import "path";` and drives the full
// import-resolution algorithm: resolving the path, checking for a
// self-import, looking the module up in the registry (lifting depths on
// a longer rediscovered path), or else reading, parsing, and resolving
// the file fresh.
func (p *Parser) importDeclaration() ast.Stmt {
	start := p.previous()
	pathTok := p.consume(STRING_VALUE, "expected a string literal path after 'import'")
	span := report.Over(start.Span, pathTok.Span)
	p.endStatement()

	path := pathTok.Lexeme
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.module.Directory, path)
	}
	moduleName := filepath.Base(path)
	if ext := filepath.Ext(moduleName); ext != "" {
		moduleName = moduleName[:len(moduleName)-len(ext)]
	}

	if moduleName == p.module.Name {
		p.sink.Error(span, "module %q cannot import itself", moduleName)
		return &ast.NullStmt{}
	}

	if idx, ok := p.registry.Find(moduleName); ok {
		if p.registry.Depth(idx) < p.depth+1 {
			p.registry.Lift(idx, p.depth+1)
		}
		p.module.Imported = append(p.module.Imported, idx)
		return &ast.NullStmt{}
	}

	source, err := ioutil.ReadFile(path)
	if err != nil {
		p.sink.Error(span, "unable to open imported module %q: %s", path, err)
		return &ast.NullStmt{}
	}

	savedSnap := p.sink.Save()
	importedModule := depm.NewModule(moduleName, filepath.Dir(path))
	importedModule.Statements, _ = ParseModule(p.sink, string(source), importedModule, p.registry, p.depth+1)
	resolve.Check(p.sink, importedModule)
	p.sink.Restore(savedSnap)

	idx := p.registry.Append(importedModule, p.depth+1)
	p.module.Imported = append(p.module.Imported, idx)

	return &ast.NullStmt{}
}

// ParseModule scans and parses a complete module's source, returning its
// statements. It is the recursive entry point importDeclaration calls for
// a freshly discovered import, and the one the compiler driver (package
// cmd/wisc) calls for the root module.
func ParseModule(sink *report.Sink, source string, module *depm.Module, registry *depm.Registry, depth int) ([]ast.Stmt, *Parser) {
	sink.SetSource(source)
	sink.SetModuleName(module.Name)

	scanner := NewScanner(sink, source)
	tokens := scanner.Scan()

	parser := NewParser(sink, tokens, module, registry, depth)
	stmts := parser.Parse()
	return stmts, parser
}
