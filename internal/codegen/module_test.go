package codegen

import (
	"testing"

	"bee/internal/ast"

	"github.com/llir/llvm/ir/enum"
)

func TestLowerProgramCreatesExternalMain(t *testing.T) {
	c := New()
	err := c.LowerProgram(&ast.Block{})
	if err != nil {
		t.Fatalf("LowerProgram: %v", err)
	}

	main, ok := c.funcs["main"]
	if !ok {
		t.Fatal("main was not registered")
	}
	if main.Linkage != enum.LinkageExternal {
		t.Errorf("main must have external linkage")
	}
	if c.scopes.Depth() != 0 {
		t.Errorf("LowerProgram must leave the scope stack empty, got depth %d", c.scopes.Depth())
	}
}

func TestLowerProgramLowersTopLevelFunctionDecl(t *testing.T) {
	c := New()
	topLevel := &ast.Block{Stmts: []ast.Stmt{
		&ast.FunctionDecl{
			ReturnType: "int",
			Name:       "answer",
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.Return{Expr: &ast.IntegerLiteral{Value: 42}},
			}},
		},
	}}

	if err := c.LowerProgram(topLevel); err != nil {
		t.Fatalf("LowerProgram: %v", err)
	}

	if _, ok := c.funcs["answer"]; !ok {
		t.Fatal("a top-level FunctionDecl must be registered during LowerProgram")
	}

	main := c.funcs["main"]
	entry := main.Blocks[0]
	if len(entry.Insts) != 0 {
		t.Errorf("declaring a function must not emit instructions into main's own block, got %d", len(entry.Insts))
	}
}

func TestLowerProgramMainEndsInVoidReturn(t *testing.T) {
	c := New()
	if err := c.LowerProgram(&ast.Block{}); err != nil {
		t.Fatalf("LowerProgram: %v", err)
	}

	main := c.funcs["main"]
	last := main.Blocks[len(main.Blocks)-1]
	if last.Term == nil {
		t.Fatal("main's last block must have a terminator")
	}
}
