// Command bee is the Bee compiler's CLI surface (base spec §6): a single
// executable with two modes, the implicit root command (compile-to-object)
// and the `run` subcommand (JIT). Argument parsing is built on
// github.com/ComedicChimera/olive.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"bee/internal/driver"
	"bee/internal/report"

	"github.com/ComedicChimera/olive"
)

func main() {
	cli := olive.NewCLI("bee", "bee is the compiler for the Bee language", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	cli.AddPrimaryArg("source-file", "the path to the Bee source file to compile", true)

	runCmd := cli.AddSubcommand("run", "parse, lower, and JIT-execute a source file", true)
	runCmd.AddPrimaryArg("source-file", "the path to the Bee source file to run", true)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		reporter := report.New(report.LogLevelError)
		reporter.PrintFatal("%s", err.Error())
		return
	}

	reporter := report.New(resolveLogLevel(result.Arguments["loglevel"]))

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "run":
		srcPath, _ := subResult.PrimaryArg()
		execRun(reporter, srcPath)
	default:
		srcPath, _ := result.PrimaryArg()
		execCompile(reporter, srcPath)
	}
}

func resolveLogLevel(v interface{}) int {
	s, _ := v.(string)
	switch s {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "warn":
		return report.LogLevelWarn
	default:
		return report.LogLevelVerbose
	}
}

// execCompile implements `bee <source-file>` (base spec §6): parse,
// lower, emit out.ll, invoke the external toolchain to produce an object
// file.
func execCompile(reporter *report.Reporter, srcPath string) {
	d := driver.New()
	mod, err := d.CompileFile(srcPath)
	if err != nil {
		reporter.PrintFatal("%s", err.Error())
		return
	}

	llPath := "out.ll"
	if err := driver.EmitModule(mod, llPath); err != nil {
		reporter.PrintFatal("%s", err.Error())
		return
	}

	if err := driver.Optimize(llPath); err != nil {
		reporter.PrintFatal("%s", err.Error())
		return
	}

	objPath := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath)) + ".o"
	if err := driver.CompileToObject(llPath, objPath); err != nil {
		reporter.PrintFatal("%s", err.Error())
		return
	}

	reporter.PrintInfo("Compiled", objPath)
}

// execRun implements `bee run <source-file>` (base spec §6): parse,
// lower, emit and optimize out.ll, then execute it with the external `lli`
// tool and copy lli's standard output to stdout. Execution happens in a
// separate lli process, not inside the bee process.
func execRun(reporter *report.Reporter, srcPath string) {
	d := driver.New()
	mod, err := d.CompileFile(srcPath)
	if err != nil {
		reporter.PrintFatal("%s", err.Error())
		return
	}

	llPath := "out.ll"
	if err := driver.EmitModule(mod, llPath); err != nil {
		reporter.PrintFatal("%s", err.Error())
		return
	}

	if err := driver.Optimize(llPath); err != nil {
		reporter.PrintFatal("%s", err.Error())
		return
	}

	output, err := driver.RunJIT(llPath)
	if err != nil {
		reporter.PrintFatal("%s", err.Error())
		return
	}

	os.Stdout.WriteString(output)
}
