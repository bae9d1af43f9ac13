// Package driver implements the Module Driver's outer shell (base spec
// §4.6): reading a source file, running it through internal/lexer and
// internal/parser, and handing the parsed top-level block to
// internal/codegen.LowerProgram, which performs the actual synthetic-main
// wrapping and lowering described in the base spec. Once a module comes
// back, this package hands it to the external LLVM toolchain for
// optimization, JIT execution, or object compilation (EXPANSION — DOMAIN
// STACK), since github.com/llir/llvm only constructs and prints IR text.
package driver

import (
	"bufio"
	"os"

	"bee/internal/ast"
	"bee/internal/codegen"
	"bee/internal/lexer"
	"bee/internal/parser"

	"github.com/llir/llvm/ir"
)

// Driver owns one compilation's codegen context, seeded with the
// preloaded runtime built-ins (base spec §6).
type Driver struct {
	ctx *codegen.Context
}

// New creates a Driver with builtins preloaded.
func New() *Driver {
	d := &Driver{ctx: codegen.New()}
	registerBuiltins(d.ctx)
	return d
}

// CompileFile reads path and lowers it to an LLVM module.
func (d *Driver) CompileFile(path string) (*ir.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return d.Compile(bufio.NewReader(f))
}

// Compile lexes, parses, and lowers the program read from src.
func (d *Driver) Compile(src *bufio.Reader) (*ir.Module, error) {
	lx := lexer.New(src)
	p, err := parser.New(lx)
	if err != nil {
		return nil, err
	}

	decls, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}

	if err := d.ctx.LowerProgram(&ast.Block{Stmts: decls}); err != nil {
		return nil, err
	}

	return d.ctx.Module, nil
}
