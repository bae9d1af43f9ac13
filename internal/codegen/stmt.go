package codegen

import (
	"bee/internal/ast"
	bt "bee/internal/types"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
)

// genBlockStmt lowers every statement in block in order (base spec §4.5).
func (c *Context) genBlockStmt(block *ast.Block) error {
	for _, stmt := range block.Stmts {
		if err := c.genStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// genStmt dispatches a single statement to its lowering function.
func (c *Context) genStmt(s ast.Stmt) error {
	switch v := s.(type) {
	case *ast.ExprStmt:
		_, err := c.genExpr(v.Expr)
		return err

	case *ast.Return:
		return c.genReturn(v)

	case *ast.VarDecl:
		return c.genVarDecl(v)

	case *ast.ArrayDecl:
		return c.genArrayDecl(v)

	case *ast.ExternDecl:
		return c.genExternDecl(v)

	case *ast.FunctionDecl:
		return c.genFunctionDecl(v)

	case *ast.If:
		return c.genIf(v)

	case *ast.Loop:
		return c.genLoop(v)
	}

	panic("codegen: unhandled statement variant")
}

// genReturn lowers the returned expression and terminates the current
// block with it immediately (base spec §4.5). A Return may appear
// inside an If branch or Loop body, whose own block genIf/genLoop never
// revisits (§8), so the `ret` must land in that block the moment the
// Return is lowered — not be stashed for a single end-of-function read,
// which would let whichever branch happens to lower last overwrite the
// value a different runtime path actually produced.
func (c *Context) genReturn(r *ast.Return) error {
	v, err := c.genExpr(r.Expr)
	if err != nil {
		return err
	}
	c.currentBlock().NewRet(v)
	return nil
}

// genVarDecl lowers a scalar local declaration.
func (c *Context) genVarDecl(vd *ast.VarDecl) error {
	irType, err := bt.Map(vd.Type)
	if err != nil {
		return err
	}

	slot := c.allocateSlot(irType)
	if err := c.scopes.Define(vd.Name, slot, irType); err != nil {
		return err
	}

	if vd.Init != nil {
		_, err := c.genAssign(&ast.Assign{Target: vd.Name, RHS: vd.Init})
		if err != nil {
			return err
		}
	}

	return nil
}

// genArrayDecl lowers an array-typed local declaration. The slot holds a
// pointer to the element type; an initializer (typically an ArrayLiteral)
// is stored through that slot so later ArrayRead/ArrayWrite recovers the
// array base pointer (base spec §4.5).
func (c *Context) genArrayDecl(ad *ast.ArrayDecl) error {
	elemType, err := bt.Map(ad.ElemType)
	if err != nil {
		return err
	}

	slot := c.allocateSlot(ptrTo(elemType))
	if err := c.scopes.Define(ad.Name, slot, elemType); err != nil {
		return err
	}

	if ad.Init != nil {
		_, err := c.genAssign(&ast.Assign{Target: ad.Name, RHS: ad.Init})
		if err != nil {
			return err
		}
	}

	return nil
}

// genExternDecl declares an externally-linked function with no body.
func (c *Context) genExternDecl(ed *ast.ExternDecl) error {
	retType, err := bt.Map(ed.ReturnType)
	if err != nil {
		return err
	}

	params := make([]*ir.Param, len(ed.Params))
	for i, p := range ed.Params {
		pt, err := bt.Map(p.Type)
		if err != nil {
			return err
		}
		params[i] = ir.NewParam(p.Name, pt)
	}

	fn := c.declareFunction(ed.Name, retType, params, enum.LinkageExternal)
	c.RegisterFunc(ed.Name, fn)
	return nil
}

// genFunctionDecl declares a function with internal linkage and lowers
// its body into a fresh entry block and scope. Return statements inside
// the body terminate their own block directly (genReturn); if control
// falls through to the end of the body without one, the final block is
// still unterminated and genFunctionDecl closes it with an implicit
// `ret void` (base spec §4.5).
func (c *Context) genFunctionDecl(fd *ast.FunctionDecl) error {
	retType, err := bt.Map(fd.ReturnType)
	if err != nil {
		return err
	}

	params := make([]*ir.Param, len(fd.Params))
	for i, p := range fd.Params {
		pt, err := bt.Map(p.Type)
		if err != nil {
			return err
		}
		params[i] = ir.NewParam(p.Name, pt)
	}

	fn := c.declareFunction(fd.Name, retType, params, enum.LinkageInternal)
	c.RegisterFunc(fd.Name, fn)

	entry := fn.NewBlock("entry")

	prevFunc := c.enclosingFunc
	c.enclosingFunc = fn

	depth := c.scopes.Depth()
	c.pushScope(entry)

	for i, p := range fd.Params {
		slot := c.allocateSlot(params[i].Type())
		if err := c.scopes.Define(p.Name, slot, params[i].Type()); err != nil {
			return err
		}
		c.store(params[i], slot)
	}

	if err := c.genBlockStmt(fd.Body); err != nil {
		return err
	}

	if !c.blockTerminated(c.currentBlock()) {
		c.currentBlock().NewRet(nil)
	}

	// pop the function's own scope plus any If/Loop scopes its body left
	for c.scopes.Depth() > depth {
		c.popScope()
	}
	c.enclosingFunc = prevFunc

	return nil
}
