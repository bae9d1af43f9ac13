// Package codegen implements the Codegen Context (base spec §4.3),
// Expression Lowering (§4.4), and Statement Lowering (§4.5): the AST ->
// LLVM IR lowering core, built on github.com/llir/llvm.
package codegen

import (
	"bee/internal/scope"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Context owns the module under construction, the scope stack, the
// function currently being lowered, and the handful of IR-builder
// primitives the lowering needs (§4.3). It is created once per
// compilation (base spec §9 Design Note on process-wide state: pass by
// reference, exactly one per compilation) and is not safe for concurrent
// use (§5).
type Context struct {
	Module *ir.Module

	scopes *scope.Stack

	// enclosingFunc is the function currently being lowered.
	enclosingFunc *ir.Func

	// globalCounter produces unique suffixes for compiler-generated
	// globals (string literals), mirroring chai's generator.globalCounter.
	globalCounter int

	// funcs is the module's function table, keyed by name: every extern
	// and function declaration registers here so Call lowering can
	// resolve callees (base spec §4.4 UnknownFunction check).
	funcs map[string]*ir.Func
}

// New creates a Context around a fresh module.
func New() *Context {
	return &Context{
		Module: ir.NewModule(),
		scopes: scope.New(),
		funcs:  make(map[string]*ir.Func),
	}
}

// RegisterFunc adds fn to the module's function table under name, making
// it resolvable by Call lowering. Used both for preloaded externs
// (internal/driver) and for ExternDecl/FunctionDecl lowering.
func (c *Context) RegisterFunc(name string, fn *ir.Func) {
	c.funcs[name] = fn
}

// -----------------------------------------------------------------------------
// Scope-stack delegation (§4.2 operations, exposed through the context so
// lowering code has one thing to thread through).

func (c *Context) pushScope(block *ir.Block) { c.scopes.Push(block) }
func (c *Context) popScope()                 { c.scopes.Pop() }

func (c *Context) currentBlock() *ir.Block     { return c.scopes.CurrentBlock() }
func (c *Context) setCurrentBlock(b *ir.Block) { c.scopes.SetCurrentBlock(b) }

// blockTerminated reports whether block already ends in a terminator
// instruction (a Return lowered directly into it, base spec §4.5). A
// basic block may carry exactly one terminator, so callers that would
// otherwise append a branch past a block's end — genIf's jump to
// continue, genLoop's jump back to the loop test — must check this
// first and skip the branch if a Return already closed the block.
func (c *Context) blockTerminated(block *ir.Block) bool {
	return block.Term != nil
}

// -----------------------------------------------------------------------------
// Function / block management.

// EnclosingFunc returns the function currently being lowered.
func (c *Context) EnclosingFunc() *ir.Func { return c.enclosingFunc }

// newBasicBlock creates a new basic block belonging to the enclosing
// function, named for readability only (LLVM renumbers unnamed/duplicate
// block names on print).
func (c *Context) newBasicBlock(name string) *ir.Block {
	return c.enclosingFunc.NewBlock(name)
}

// moveBlockAfter repositions a block to immediately follow another in the
// function's block list, matching original_source's BasicBlock::moveAfter
// calls in NConditional/NLoop (purely cosmetic: it only affects the
// printed order of blocks, not control flow).
func (c *Context) moveBlockAfter(moved, after *ir.Block) {
	blocks := c.enclosingFunc.Blocks
	// remove moved from its current position
	idx := -1
	for i, b := range blocks {
		if b == moved {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	blocks = append(blocks[:idx], blocks[idx+1:]...)

	// find the (possibly shifted) position of after and insert just past it
	afterIdx := -1
	for i, b := range blocks {
		if b == after {
			afterIdx = i
			break
		}
	}
	if afterIdx == -1 {
		blocks = append(blocks, moved)
	} else {
		blocks = append(blocks[:afterIdx+1], append([]*ir.Block{moved}, blocks[afterIdx+1:]...)...)
	}
	c.enclosingFunc.Blocks = blocks
}

// entryBlock returns the enclosing function's entry block, where all
// stack slots live for the function's lifetime (base spec §3 invariant).
func (c *Context) entryBlock() *ir.Block {
	return c.enclosingFunc.Blocks[0]
}

// -----------------------------------------------------------------------------
// IR-builder primitives (§4.3).

// allocateSlot allocates a stack slot for typ in the enclosing function's
// entry block — every symbol handle lives there for the function's
// lifetime regardless of which lexical block declares it (§3 invariant).
func (c *Context) allocateSlot(typ types.Type) *ir.InstAlloca {
	return c.entryBlock().NewAlloca(typ)
}

func (c *Context) load(typ types.Type, ptr value.Value) value.Value {
	return c.currentBlock().NewLoad(typ, ptr)
}

func (c *Context) store(v, ptr value.Value) {
	c.currentBlock().NewStore(v, ptr)
}

// indexedAddress computes the element-strided address elemType*(base +
// idx), base spec §4.4's "indexed address (GEP)" primitive.
func (c *Context) indexedAddress(elemType types.Type, base, idx value.Value) value.Value {
	return c.currentBlock().NewGetElementPtr(elemType, base, idx)
}

func (c *Context) branchUnconditional(target *ir.Block) {
	c.currentBlock().NewBr(target)
}

func (c *Context) branchConditional(cond value.Value, then, els *ir.Block) {
	c.currentBlock().NewCondBr(cond, then, els)
}

func (c *Context) call(fn value.Value, args ...value.Value) value.Value {
	return c.currentBlock().NewCall(fn, args...)
}

// declareFunction declares a function with the given name, return type,
// parameter list, and linkage.
func (c *Context) declareFunction(name string, retType types.Type, params []*ir.Param, linkage enum.Linkage) *ir.Func {
	fn := c.Module.NewFunc(name, retType, params...)
	fn.Linkage = linkage
	return fn
}
