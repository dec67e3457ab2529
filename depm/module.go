// Package depm holds the process-wide module registry: the bookkeeping
// the parser consults and mutates while resolving imports across a
// compilation (see SPEC_FULL.md's import resolution algorithm).
package depm

import "github.com/dc03/wis/ast"

// Module is one source file's worth of compiled state: its parsed
// statements plus lookup tables into them. Classes and Functions hold
// unowned references into Statements, which owns every node.
type Module struct {
	Name      string
	Directory string

	Statements []ast.Stmt
	Classes    map[string]*ast.ClassStmt
	Functions  map[string]*ast.FunctionStmt

	// Imported holds, in import order, the registry index of each module
	// this one imports.
	Imported []int
}

func NewModule(name, directory string) *Module {
	return &Module{
		Name:      name,
		Directory: directory,
		Classes:   make(map[string]*ast.ClassStmt),
		Functions: make(map[string]*ast.FunctionStmt),
	}
}

// entry is one (Module, depth) pair in the registry.
type entry struct {
	module *Module
	depth  int
}

// Registry is the process-wide, creation-ordered list of modules. Indices
// are stable once assigned: Append never reorders or removes entries, it
// only appends and (via Lift) edits depths in place.
type Registry struct {
	entries []entry
	byName  map[string]int
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Append records a newly parsed module at the given depth and returns its
// stable registry index.
func (r *Registry) Append(m *Module, depth int) int {
	idx := len(r.entries)
	r.entries = append(r.entries, entry{module: m, depth: depth})
	r.byName[m.Name] = idx
	return idx
}

// Find returns the registry index of a module by name, or (-1, false).
func (r *Registry) Find(name string) (int, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return -1, false
	}
	return idx, true
}

// Module returns the module stored at idx.
func (r *Registry) Module(idx int) *Module {
	return r.entries[idx].module
}

// Depth returns the current depth stored at idx.
func (r *Registry) Depth(idx int) int {
	return r.entries[idx].depth
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Lift raises the depth of the module at idx to at least minDepth, and
// recursively lifts every module it transitively imports to at least one
// more than its own new depth. This is what keeps depth equal to "maximum
// import distance from any root" when a longer path to an already-parsed
// module is discovered later (see the import-cycle boundary scenario).
func (r *Registry) Lift(idx, minDepth int) {
	if r.entries[idx].depth >= minDepth {
		return
	}
	r.entries[idx].depth = minDepth

	for _, childIdx := range r.entries[idx].module.Imported {
		r.Lift(childIdx, minDepth+1)
	}
}
