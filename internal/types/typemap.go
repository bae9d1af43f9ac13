// Package types implements the Type Mapper (base spec §4.1): a pure
// function from surface type names to backend IR types.
package types

import (
	"bee/internal/report"

	"github.com/llir/llvm/ir/types"
)

// Map translates a surface type name to its backend IR type. The
// recognized set is exactly {void, int, double, string, bool} (§4.1); any
// other name fails with report.UnknownType.
func Map(name string) (types.Type, error) {
	switch name {
	case "void":
		return types.Void, nil
	case "int":
		return types.I64, nil
	case "double":
		return types.Double, nil
	case "string":
		return types.NewPointer(types.I8), nil
	case "bool":
		return types.I1, nil
	default:
		return nil, report.UnknownType(name)
	}
}
