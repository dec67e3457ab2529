// Command wisc is the front-end driver: it reads a root source file,
// parses it (transitively resolving imports), type-checks every module,
// and exits non-zero if any error was latched. Bytecode generation is
// out of scope here and is never invoked.
package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"

	"github.com/dc03/wis/depm"
	"github.com/dc03/wis/report"
	"github.com/dc03/wis/resolve"
	"github.com/dc03/wis/syntax"
)

var logLevels = map[string]int{
	"silent":  report.LevelSilent,
	"error":   report.LevelError,
	"warn":    report.LevelWarn,
	"verbose": report.LevelVerbose,
}

func main() {
	cli := olive.NewCLI("wisc", "wisc compiles a wis source module's front-end", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("warn")
	cli.AddPrimaryArg("root-path", "the path to the root source file", true)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	rootPath, _ := result.PrimaryArg()
	level := logLevels[result.Arguments["loglevel"].(string)]

	os.Exit(run(rootPath, level))
}

func run(rootPath string, level int) int {
	sink := report.New(level)

	source, err := ioutil.ReadFile(rootPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wisc: unable to open %q: %s\n", rootPath, err)
		return 1
	}

	dir := filepath.Dir(rootPath)
	moduleName, hasManifest, err := depm.LoadManifest(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "wisc:", err)
		return 1
	}
	if !hasManifest {
		moduleName = basenameNoExt(rootPath)
	}

	registry := depm.NewRegistry()
	module := depm.NewModule(moduleName, dir)
	registry.Append(module, 0)

	stmts, _ := syntax.ParseModule(sink, string(source), module, registry, 0)
	module.Statements = stmts

	resolve.Check(sink, module)

	if sink.HadError() || sink.HadRuntimeError() {
		return 1
	}
	return 0
}

func basenameNoExt(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	return base
}
