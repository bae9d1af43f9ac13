package codegen

import (
	"testing"

	"bee/internal/ast"
	"bee/internal/report"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// newTestContext builds a Context with a single function "f" already
// pushed as the enclosing function and its entry block as the current
// scope, ready to receive genExpr/genStmt calls.
func newTestContext(t *testing.T) *Context {
	t.Helper()
	c := New()
	fn := c.Module.NewFunc("f", types.Void)
	c.enclosingFunc = fn
	entry := fn.NewBlock("entry")
	c.pushScope(entry)
	return c
}

func TestGenIntegerLiteral(t *testing.T) {
	c := newTestContext(t)
	v, err := c.genExpr(&ast.IntegerLiteral{Value: 42})
	if err != nil {
		t.Fatalf("genExpr: %v", err)
	}
	if v.Type() != types.I64 {
		t.Errorf("got type %v, want i64", v.Type())
	}
}

func TestGenDoubleLiteral(t *testing.T) {
	c := newTestContext(t)
	v, err := c.genExpr(&ast.DoubleLiteral{Value: 3.5})
	if err != nil {
		t.Fatalf("genExpr: %v", err)
	}
	if v.Type() != types.Double {
		t.Errorf("got type %v, want double", v.Type())
	}
}

func TestGenBoolLiteral(t *testing.T) {
	c := newTestContext(t)
	v, err := c.genExpr(&ast.BoolLiteral{Value: true})
	if err != nil {
		t.Fatalf("genExpr: %v", err)
	}
	if v.Type() != types.I1 {
		t.Errorf("got type %v, want i1", v.Type())
	}
}

func TestGenStringLiteralProducesPrivateGlobal(t *testing.T) {
	c := newTestContext(t)
	v, err := c.genExpr(&ast.StringLiteral{Raw: `"hi"`})
	if err != nil {
		t.Fatalf("genExpr: %v", err)
	}
	ptrType, ok := v.Type().(*types.PointerType)
	if !ok || ptrType.ElemType != types.I8 {
		t.Fatalf("got type %v, want i8*", v.Type())
	}
	if len(c.Module.Globals) != 1 {
		t.Fatalf("got %d globals, want 1", len(c.Module.Globals))
	}
	g := c.Module.Globals[0]
	if g.Linkage != enum.LinkagePrivate || !g.Immutable {
		t.Errorf("string constant global must be private and immutable")
	}
}

func TestGenIdentifierUndeclared(t *testing.T) {
	c := newTestContext(t)
	_, err := c.genExpr(&ast.Identifier{Name: "missing"})
	if err == nil {
		t.Fatal("expected Undeclared error, got nil")
	}
	re, ok := err.(*report.Error)
	if !ok || re.Kind != report.KindUndeclared {
		t.Errorf("got %v, want KindUndeclared", err)
	}
}

func TestGenIdentifierLoadsDeclaredVar(t *testing.T) {
	c := newTestContext(t)
	if err := c.genVarDecl(&ast.VarDecl{Type: "int", Name: "x", Init: &ast.IntegerLiteral{Value: 7}}); err != nil {
		t.Fatalf("genVarDecl: %v", err)
	}
	v, err := c.genExpr(&ast.Identifier{Name: "x"})
	if err != nil {
		t.Fatalf("genExpr: %v", err)
	}
	if _, ok := v.(*ir.InstLoad); !ok {
		t.Errorf("got %T, want *ir.InstLoad", v)
	}
}

func TestGenBinaryOpIntegerDispatch(t *testing.T) {
	c := newTestContext(t)
	v, err := c.genExpr(&ast.BinaryOp{
		Op:  ast.PLUS,
		LHS: &ast.IntegerLiteral{Value: 1},
		RHS: &ast.IntegerLiteral{Value: 2},
	})
	if err != nil {
		t.Fatalf("genExpr: %v", err)
	}
	if _, ok := v.(*ir.InstAdd); !ok {
		t.Errorf("got %T, want *ir.InstAdd", v)
	}
}

func TestGenBinaryOpFloatDispatch(t *testing.T) {
	c := newTestContext(t)
	v, err := c.genExpr(&ast.BinaryOp{
		Op:  ast.PLUS,
		LHS: &ast.DoubleLiteral{Value: 1},
		RHS: &ast.DoubleLiteral{Value: 2},
	})
	if err != nil {
		t.Fatalf("genExpr: %v", err)
	}
	if _, ok := v.(*ir.InstFAdd); !ok {
		t.Errorf("got %T, want *ir.InstFAdd", v)
	}
}

func TestGenBinaryOpMixedOperandsUsesFloat(t *testing.T) {
	c := newTestContext(t)
	v, err := c.genExpr(&ast.BinaryOp{
		Op:  ast.MUL,
		LHS: &ast.IntegerLiteral{Value: 1},
		RHS: &ast.DoubleLiteral{Value: 2},
	})
	if err != nil {
		t.Fatalf("genExpr: %v", err)
	}
	if _, ok := v.(*ir.InstFMul); !ok {
		t.Errorf("got %T, want *ir.InstFMul (mixed operand dispatch)", v)
	}
}

func TestGenComparisonIntegerUsesSignedPredicate(t *testing.T) {
	c := newTestContext(t)
	v, err := c.genExpr(&ast.BinaryOp{
		Op:  ast.LT,
		LHS: &ast.IntegerLiteral{Value: 1},
		RHS: &ast.IntegerLiteral{Value: 2},
	})
	if err != nil {
		t.Fatalf("genExpr: %v", err)
	}
	icmp, ok := v.(*ir.InstICmp)
	if !ok {
		t.Fatalf("got %T, want *ir.InstICmp", v)
	}
	if icmp.Pred != enum.IPredSLT {
		t.Errorf("got pred %v, want SLT", icmp.Pred)
	}
}

func TestGenUnaryNot(t *testing.T) {
	c := newTestContext(t)
	v, err := c.genExpr(&ast.UnaryOp{Op: ast.NOT, Operand: &ast.BoolLiteral{Value: true}})
	if err != nil {
		t.Fatalf("genExpr: %v", err)
	}
	if _, ok := v.(*ir.InstXor); !ok {
		t.Errorf("got %T, want *ir.InstXor", v)
	}
}

func TestGenUnaryMinusFloat(t *testing.T) {
	c := newTestContext(t)
	v, err := c.genExpr(&ast.UnaryOp{Op: ast.MINUS, Operand: &ast.DoubleLiteral{Value: 2}})
	if err != nil {
		t.Fatalf("genExpr: %v", err)
	}
	if _, ok := v.(*ir.InstFNeg); !ok {
		t.Errorf("got %T, want *ir.InstFNeg", v)
	}
}

func TestGenUnaryNotOnNonIntegerFails(t *testing.T) {
	c := newTestContext(t)
	_, err := c.genExpr(&ast.UnaryOp{Op: ast.NOT, Operand: &ast.DoubleLiteral{Value: 1}})
	if err == nil {
		t.Fatal("expected BadUnary error, got nil")
	}
}

func TestGenEmptyArrayLiteralFails(t *testing.T) {
	c := newTestContext(t)
	_, err := c.genExpr(&ast.ArrayLiteral{})
	if err == nil {
		t.Fatal("expected EmptyArrayLiteral error, got nil")
	}
	re, ok := err.(*report.Error)
	if !ok || re.Kind != report.KindEmptyArrayLiteral {
		t.Errorf("got %v, want KindEmptyArrayLiteral", err)
	}
}

func TestGenArrayLiteralAndReadRoundTrip(t *testing.T) {
	c := newTestContext(t)
	if err := c.genArrayDecl(&ast.ArrayDecl{
		ElemType: "int",
		Name:     "xs",
		Init: &ast.ArrayLiteral{Items: []ast.Expr{
			&ast.IntegerLiteral{Value: 10},
			&ast.IntegerLiteral{Value: 20},
		}},
	}); err != nil {
		t.Fatalf("genArrayDecl: %v", err)
	}

	v, err := c.genExpr(&ast.ArrayRead{Array: "xs", Index: &ast.IntegerLiteral{Value: 1}})
	if err != nil {
		t.Fatalf("genExpr(ArrayRead): %v", err)
	}
	if v.Type() != types.I64 {
		t.Errorf("got element type %v, want i64", v.Type())
	}
}

func TestGenArrayWriteCompoundLoadsBeforeStoring(t *testing.T) {
	c := newTestContext(t)
	if err := c.genArrayDecl(&ast.ArrayDecl{
		ElemType: "int",
		Name:     "xs",
		Init:     &ast.ArrayLiteral{Items: []ast.Expr{&ast.IntegerLiteral{Value: 1}}},
	}); err != nil {
		t.Fatalf("genArrayDecl: %v", err)
	}

	v, err := c.genExpr(&ast.ArrayWrite{
		Array:    "xs",
		Index:    &ast.IntegerLiteral{Value: 0},
		Op:       ast.PLUSASN,
		RHS:      &ast.IntegerLiteral{Value: 5},
		Compound: true,
	})
	if err != nil {
		t.Fatalf("genExpr(ArrayWrite): %v", err)
	}
	add, ok := v.(*ir.InstAdd)
	if !ok {
		t.Fatalf("got %T, want *ir.InstAdd for compound element write", v)
	}
	if _, ok := add.X.(*ir.InstLoad); !ok {
		t.Errorf("compound element write must combine the loaded element, got %T", add.X)
	}
	insts := c.currentBlock().Insts
	if st, ok := insts[len(insts)-1].(*ir.InstStore); !ok || st.Src != add {
		t.Errorf("compound element write must end by storing the combined value")
	}
}

func TestGenCallUnknownFunctionFails(t *testing.T) {
	c := newTestContext(t)
	_, err := c.genExpr(&ast.Call{Callee: "nope"})
	if err == nil {
		t.Fatal("expected UnknownFunction error, got nil")
	}
	re, ok := err.(*report.Error)
	if !ok || re.Kind != report.KindUnknownFunction {
		t.Errorf("got %v, want KindUnknownFunction", err)
	}
}

func TestGenCallResolvesRegisteredFunction(t *testing.T) {
	c := newTestContext(t)
	callee := c.Module.NewFunc("g", types.I64)
	c.RegisterFunc("g", callee)

	v, err := c.genExpr(&ast.Call{Callee: "g"})
	if err != nil {
		t.Fatalf("genExpr(Call): %v", err)
	}
	call, ok := v.(*ir.InstCall)
	if !ok {
		t.Fatalf("got %T, want *ir.InstCall", v)
	}
	if call.Callee != callee {
		t.Errorf("call target mismatch")
	}
}

func TestGenAssignPlainStoresWithoutLoad(t *testing.T) {
	c := newTestContext(t)
	if err := c.genVarDecl(&ast.VarDecl{Type: "int", Name: "x"}); err != nil {
		t.Fatalf("genVarDecl: %v", err)
	}

	before := len(c.currentBlock().Insts)
	_, err := c.genExpr(&ast.Assign{Target: "x", RHS: &ast.IntegerLiteral{Value: 9}})
	if err != nil {
		t.Fatalf("genExpr(Assign): %v", err)
	}
	after := c.currentBlock().Insts[before:]

	for _, inst := range after {
		if _, ok := inst.(*ir.InstLoad); ok {
			t.Errorf("plain assignment must not load before storing")
		}
	}
}

func TestGenAssignCompoundLoadsThenStores(t *testing.T) {
	c := newTestContext(t)
	if err := c.genVarDecl(&ast.VarDecl{Type: "int", Name: "x", Init: &ast.IntegerLiteral{Value: 1}}); err != nil {
		t.Fatalf("genVarDecl: %v", err)
	}

	v, err := c.genExpr(&ast.Assign{Target: "x", Op: ast.PLUSASN, RHS: &ast.IntegerLiteral{Value: 2}, Compound: true})
	if err != nil {
		t.Fatalf("genExpr(Assign): %v", err)
	}
	add, ok := v.(*ir.InstAdd)
	if !ok {
		t.Fatalf("got %T, want *ir.InstAdd", v)
	}
	if _, ok := add.X.(*ir.InstLoad); !ok {
		t.Errorf("compound assignment must combine the loaded value, got %T", add.X)
	}
	insts := c.currentBlock().Insts
	if st, ok := insts[len(insts)-1].(*ir.InstStore); !ok || st.Src != add {
		t.Errorf("compound assignment must end by storing the combined value")
	}
}
