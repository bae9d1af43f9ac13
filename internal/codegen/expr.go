package codegen

import (
	"bee/internal/ast"
	"bee/internal/report"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genExpr lowers an expression to an IR value (base spec §4.4). Order of
// evaluation is always left-to-right for binary, call-argument, and
// array-literal positions — this must be preserved since lowered
// sub-expressions may have observable side effects (calls).
func (c *Context) genExpr(e ast.Expr) (value.Value, error) {
	switch v := e.(type) {
	case *ast.IntegerLiteral:
		return constant.NewInt(types.I64, v.Value), nil

	case *ast.DoubleLiteral:
		return constant.NewFloat(types.Double, v.Value), nil

	case *ast.BoolLiteral:
		return constant.NewBool(v.Value), nil

	case *ast.StringLiteral:
		return c.genStringConstant(v.Raw), nil

	case *ast.Identifier:
		return c.genIdentifier(v)

	case *ast.Call:
		return c.genCall(v)

	case *ast.ArrayLiteral:
		return c.genArrayLiteral(v)

	case *ast.ArrayRead:
		return c.genArrayRead(v)

	case *ast.ArrayWrite:
		return c.genArrayWrite(v)

	case *ast.BinaryOp:
		return c.genBinaryOp(v)

	case *ast.UnaryOp:
		return c.genUnaryOp(v)

	case *ast.Assign:
		return c.genAssign(v)
	}

	panic("codegen: unhandled expression variant")
}

func (c *Context) genIdentifier(id *ast.Identifier) (value.Value, error) {
	entry, err := c.scopes.Lookup(id.Name)
	if err != nil {
		return nil, err
	}
	return c.load(entry.Type, entry.Handle), nil
}

func (c *Context) genCall(call *ast.Call) (value.Value, error) {
	fn, ok := c.funcs[call.Callee]
	if !ok {
		return nil, report.UnknownFunction(call.Callee)
	}

	args := make([]value.Value, len(call.Args))
	for i, a := range call.Args {
		v, err := c.genExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	return c.call(fn, args...), nil
}

func (c *Context) genArrayLiteral(lit *ast.ArrayLiteral) (value.Value, error) {
	if len(lit.Items) == 0 {
		return nil, report.EmptyArrayLiteral()
	}

	items := make([]value.Value, len(lit.Items))
	for i, item := range lit.Items {
		v, err := c.genExpr(item)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}

	elemType := items[0].Type()
	arrType := types.NewArray(uint64(len(items)), elemType)
	alloc := c.currentBlock().NewAlloca(arrType)

	zero := constant.NewInt(types.I64, 0)
	for i, item := range items {
		idx := constant.NewInt(types.I64, int64(i))
		ptr := c.currentBlock().NewGetElementPtr(arrType, alloc, zero, idx)
		c.store(item, ptr)
	}

	// The expression's value is the stack-slot address, presented as a
	// pointer to the element type so it matches an ArrayDecl handle's
	// stored shape (base spec §9 Design Note: array slots store a pointer
	// to the element type; the array's own alloca is naturally a pointer
	// to the array type, so it is bitcast down to a flat element pointer).
	return c.currentBlock().NewBitCast(alloc, types.NewPointer(elemType)), nil
}

func (c *Context) genArrayRead(read *ast.ArrayRead) (value.Value, error) {
	entry, err := c.scopes.Lookup(read.Array)
	if err != nil {
		return nil, err
	}

	ptr := c.load(types.NewPointer(entry.Type), entry.Handle)

	idx, err := c.genExpr(read.Index)
	if err != nil {
		return nil, err
	}

	elemPtr := c.indexedAddress(entry.Type, ptr, idx)
	return c.load(entry.Type, elemPtr), nil
}

func (c *Context) genArrayWrite(write *ast.ArrayWrite) (value.Value, error) {
	entry, err := c.scopes.Lookup(write.Array)
	if err != nil {
		return nil, err
	}

	ptr := c.load(types.NewPointer(entry.Type), entry.Handle)

	idx, err := c.genExpr(write.Index)
	if err != nil {
		return nil, err
	}

	elemPtr := c.indexedAddress(entry.Type, ptr, idx)

	rhs, err := c.genExpr(write.RHS)
	if err != nil {
		return nil, err
	}

	if !write.Compound {
		c.store(rhs, elemPtr)
		return rhs, nil
	}

	current := c.load(entry.Type, elemPtr)
	combined, err := c.applyArithmetic(write.Op.ArithmeticOf(), current, rhs)
	if err != nil {
		return nil, err
	}
	c.store(combined, elemPtr)
	return combined, nil
}

func (c *Context) genBinaryOp(bin *ast.BinaryOp) (value.Value, error) {
	lhs, err := c.genExpr(bin.LHS)
	if err != nil {
		return nil, err
	}
	rhs, err := c.genExpr(bin.RHS)
	if err != nil {
		return nil, err
	}

	if bin.Op.IsArithmetic() {
		return c.applyArithmetic(bin.Op, lhs, rhs)
	}
	if bin.Op.IsComparison() {
		return c.applyComparison(bin.Op, lhs, rhs)
	}
	return nil, report.BadBinary()
}

// isFloatOperand reports whether v's type is the double type, the only
// case (§9 Open Question resolution) in which arithmetic/comparison is
// dispatched to float instructions rather than signed-integer ones.
func isFloatOperand(v value.Value) bool {
	_, ok := v.Type().(*types.FloatType)
	return ok
}

func (c *Context) applyArithmetic(op ast.Op, lhs, rhs value.Value) (value.Value, error) {
	block := c.currentBlock()

	if isFloatOperand(lhs) || isFloatOperand(rhs) {
		switch op {
		case ast.PLUS:
			return block.NewFAdd(lhs, rhs), nil
		case ast.MINUS:
			return block.NewFSub(lhs, rhs), nil
		case ast.MUL:
			return block.NewFMul(lhs, rhs), nil
		case ast.DIV:
			return block.NewFDiv(lhs, rhs), nil
		}
		return nil, report.BadBinary()
	}

	switch op {
	case ast.PLUS:
		return block.NewAdd(lhs, rhs), nil
	case ast.MINUS:
		return block.NewSub(lhs, rhs), nil
	case ast.MUL:
		return block.NewMul(lhs, rhs), nil
	case ast.DIV:
		return block.NewSDiv(lhs, rhs), nil
	}
	return nil, report.BadBinary()
}

var integerPredicates = map[ast.Op]enum.IPred{
	ast.EQ: enum.IPredEQ,
	ast.NE: enum.IPredNE,
	ast.LT: enum.IPredSLT,
	ast.LE: enum.IPredSLE,
	ast.GT: enum.IPredSGT,
	ast.GE: enum.IPredSGE,
}

var floatPredicates = map[ast.Op]enum.FPred{
	ast.EQ: enum.FPredOEQ,
	ast.NE: enum.FPredONE,
	ast.LT: enum.FPredOLT,
	ast.LE: enum.FPredOLE,
	ast.GT: enum.FPredOGT,
	ast.GE: enum.FPredOGE,
}

func (c *Context) applyComparison(op ast.Op, lhs, rhs value.Value) (value.Value, error) {
	block := c.currentBlock()

	if isFloatOperand(lhs) || isFloatOperand(rhs) {
		pred, ok := floatPredicates[op]
		if !ok {
			return nil, report.BadBinary()
		}
		return block.NewFCmp(pred, lhs, rhs), nil
	}

	pred, ok := integerPredicates[op]
	if !ok {
		return nil, report.BadBinary()
	}
	return block.NewICmp(pred, lhs, rhs), nil
}

func (c *Context) genUnaryOp(un *ast.UnaryOp) (value.Value, error) {
	operand, err := c.genExpr(un.Operand)
	if err != nil {
		return nil, err
	}

	block := c.currentBlock()

	switch un.Op {
	case ast.MINUS:
		if isFloatOperand(operand) {
			return block.NewFNeg(operand), nil
		}
		zero := constant.NewInt(operand.Type().(*types.IntType), 0)
		return block.NewSub(zero, operand), nil
	case ast.NOT:
		it, ok := operand.Type().(*types.IntType)
		if !ok {
			return nil, report.BadUnary()
		}
		allOnes := constant.NewInt(it, -1)
		return block.NewXor(operand, allOnes), nil
	default:
		return nil, report.BadUnary()
	}
}

func (c *Context) genAssign(as *ast.Assign) (value.Value, error) {
	entry, err := c.scopes.Lookup(as.Target)
	if err != nil {
		return nil, err
	}

	rhs, err := c.genExpr(as.RHS)
	if err != nil {
		return nil, err
	}

	if !as.Compound {
		c.store(rhs, entry.Handle)
		return rhs, nil
	}

	current := c.load(entry.Type, entry.Handle)
	combined, err := c.applyArithmetic(as.Op.ArithmeticOf(), current, rhs)
	if err != nil {
		return nil, err
	}
	c.store(combined, entry.Handle)
	return combined, nil
}
