package codegen

import "bee/internal/ast"

// genIf lowers a conditional (base spec §4.5). It creates three blocks —
// then, else, continue — owned by the enclosing function, and pushes a
// scope for each as it is entered. Matching original_source's
// NConditional::codeGen, none of those three scopes are popped here: the
// statement-lowering invariant in §3/§8 explicitly exempts If (and Loop)
// from the "depth unchanged" rule, and the state machine in §4.5 describes
// If as ending with "continue" on top of an enlarged stack, not a restored
// one. Empty then/else blocks still receive their unconditional branch to
// continue, since that branch is emitted unconditionally regardless of
// whether the block lowered anything — unless a Return already closed the
// block directly (genReturn terminates its own block immediately): a
// basic block carries exactly one terminator, so branching past a Return
// would be a second one and invalid IR.
func (c *Context) genIf(stmt *ast.If) error {
	thenBlock := c.newBasicBlock("then")
	elseBlock := c.newBasicBlock("else")
	continueBlock := c.newBasicBlock("continue")

	cond, err := c.genExpr(stmt.Cond)
	if err != nil {
		return err
	}
	c.branchConditional(cond, thenBlock, elseBlock)

	c.pushScope(thenBlock)
	if err := c.genBlockStmt(stmt.Then); err != nil {
		return err
	}
	if !c.blockTerminated(c.currentBlock()) {
		c.branchUnconditional(continueBlock)
	}

	c.moveBlockAfter(elseBlock, c.currentBlock())
	c.pushScope(elseBlock)
	if err := c.genBlockStmt(stmt.Else); err != nil {
		return err
	}
	if !c.blockTerminated(c.currentBlock()) {
		c.branchUnconditional(continueBlock)
	}

	c.moveBlockAfter(continueBlock, c.currentBlock())
	c.pushScope(continueBlock)

	return nil
}

// genLoop lowers a while-style loop with the condition evaluated once
// before entry and again at the tail of every iteration (base spec §4.5,
// §9 Open Question: kept as pre-test-plus-post-test rather than rewritten
// to a canonical single-test header, since this is documented as
// intentional and the side effects of Cond are meant to run once before
// the loop and once per iteration after the body). The tail re-check is
// skipped if a Return inside the body already terminated the loop block,
// for the same one-terminator-per-block reason as genIf.
func (c *Context) genLoop(stmt *ast.Loop) error {
	loopBlock := c.newBasicBlock("loop")
	continueBlock := c.newBasicBlock("continue")

	entryCond, err := c.genExpr(stmt.Cond)
	if err != nil {
		return err
	}
	c.branchConditional(entryCond, loopBlock, continueBlock)

	c.pushScope(loopBlock)
	if err := c.genBlockStmt(stmt.Body); err != nil {
		return err
	}

	if !c.blockTerminated(c.currentBlock()) {
		tailCond, err := c.genExpr(stmt.Cond)
		if err != nil {
			return err
		}
		c.branchConditional(tailCond, loopBlock, continueBlock)
	}

	c.moveBlockAfter(continueBlock, c.currentBlock())
	c.pushScope(continueBlock)

	return nil
}
