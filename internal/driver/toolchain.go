package driver

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/llir/llvm/ir"
)

// optimizationPasses is the pipeline named in base spec §4.6, expressed
// as the `opt` legacy pass-manager flags that implement each named pass:
// mem2reg (promote-memory-to-register), instcombine (instruction
// combining), reassociate, gvn (global-value-numbering), simplifycfg
// (control-flow-graph simplification).
var optimizationPasses = []string{
	"-mem2reg",
	"-instcombine",
	"-reassociate",
	"-gvn",
	"-simplifycfg",
}

// EmitModule prints mod's textual IR to outPath (default "out.ll" per
// base spec §6), truncating any existing file.
func EmitModule(mod *ir.Module, outPath string) error {
	return writeFile(outPath, mod.String())
}

// Optimize runs mod's textual IR at llPath through the external `opt`
// binary's optimization pipeline (base spec §4.6), overwriting llPath
// with the optimized IR. This shells out rather than calling an
// in-process optimizer because github.com/llir/llvm is IR construction
// and printing only — it has no optimization passes of its own.
func Optimize(llPath string) error {
	args := append(append([]string{}, optimizationPasses...), "-S", "-o", llPath, llPath)
	cmd := exec.Command("opt", args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("driver: opt failed: %s", stderr.String())
	}
	return nil
}

// CompileToObject invokes the external `clang` driver to turn llPath into
// a native object file at objPath (base-spec §6's `bee <file>` mode).
func CompileToObject(llPath, objPath string) error {
	cmd := exec.Command("clang", "-c", llPath, "-o", objPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return errors.New(stderr.String())
	}
	return nil
}

// RunJIT invokes the external `lli` interpreter/JIT on llPath and returns
// its standard output; stderr is only reported inside the error when lli
// fails (base-spec §6's `bee run <file>` mode: "hand the
// module to an execution engine and invoke the entry function").
func RunJIT(llPath string) (string, error) {
	cmd := exec.Command("lli", llPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("driver: lli failed: %s", stderr.String())
	}
	return stdout.String(), nil
}

func writeFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("driver: failed to open output file %q: %w", path, err)
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}
