package codegen

import "github.com/llir/llvm/ir/types"

// ptrTo is a small readability wrapper around types.NewPointer, used
// wherever a symbol handle needs to be typed as "pointer to element type"
// (array locals, base spec §3 Symbol entry).
func ptrTo(elem types.Type) types.Type {
	return types.NewPointer(elem)
}
