package codegen

import (
	"bee/internal/ast"

	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// LowerProgram implements the Module Driver (base spec §4.6): create a
// void-returning function named main with external linkage, push its
// entry block as the root scope, lower the program's top-level block
// into it (this includes any FunctionDecl/ExternDecl statements the
// parser produced at top level — declaring a function is itself a
// statement kind, and declaring one inserts nothing into main's own
// block), emit a void return, and pop.
func (c *Context) LowerProgram(topLevel *ast.Block) error {
	main := c.Module.NewFunc("main", types.Void)
	main.Linkage = enum.LinkageExternal
	c.RegisterFunc("main", main)

	entry := main.NewBlock("entry")

	prevFunc := c.enclosingFunc
	c.enclosingFunc = main
	depth := c.scopes.Depth()
	c.pushScope(entry)

	if err := c.genBlockStmt(topLevel); err != nil {
		return err
	}

	if !c.blockTerminated(c.currentBlock()) {
		c.currentBlock().NewRet(nil)
	}

	for c.scopes.Depth() > depth {
		c.popScope()
	}
	c.enclosingFunc = prevFunc

	return nil
}
