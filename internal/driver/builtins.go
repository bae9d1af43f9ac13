package driver

import (
	"bee/internal/codegen"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// registerBuiltins preloads the small runtime surface base-spec §6
// scenarios call into: print(string), printi(int) and printd(double), all
// declared extern with C linkage, the way original_source's runtime.c intrinsics
// are exposed to generated code. These are registered directly on the
// module rather than parsed from source, mirroring chai's
// generate.NewGenerator seeding the symbol table with intrinsics before
// lowering user code.
func registerBuiltins(ctx *codegen.Context) {
	printFn := ctx.Module.NewFunc("print", types.Void, ir.NewParam("s", types.NewPointer(types.I8)))
	printFn.Linkage = enum.LinkageExternal
	ctx.RegisterFunc("print", printFn)

	printiFn := ctx.Module.NewFunc("printi", types.Void, ir.NewParam("v", types.I64))
	printiFn.Linkage = enum.LinkageExternal
	ctx.RegisterFunc("printi", printiFn)

	printdFn := ctx.Module.NewFunc("printd", types.Void, ir.NewParam("v", types.Double))
	printdFn.Linkage = enum.LinkageExternal
	ctx.RegisterFunc("printd", printdFn)
}
