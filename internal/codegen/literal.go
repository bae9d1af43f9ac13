package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// unescapeString strips the surrounding quotes from a raw string-literal
// token and recognizes exactly the `\n` escape, per base spec §4.4 and the
// §9 Open Question: any other backslash is copied through verbatim rather
// than treated as an error or extended escape.
func unescapeString(raw string) string {
	// strip surrounding quotes
	inner := raw
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}

	out := make([]byte, 0, len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) && inner[i+1] == 'n' {
			out = append(out, '\n')
			i++
			continue
		}
		out = append(out, inner[i])
	}
	return string(out)
}

// genStringConstant builds a private, immutable global byte array holding
// the unescaped contents of raw plus a trailing NUL, and returns it
// bitcast to i8*, matching original_source NString::codeGen.
func (c *Context) genStringConstant(raw string) value.Value {
	unescaped := unescapeString(raw)

	chars := make([]constant.Constant, 0, len(unescaped)+1)
	for i := 0; i < len(unescaped); i++ {
		chars = append(chars, constant.NewInt(types.I8, int64(unescaped[i])))
	}
	chars = append(chars, constant.NewInt(types.I8, 0))

	arrType := types.NewArray(uint64(len(chars)), types.I8)
	init := constant.NewArray(arrType, chars...)

	name := fmt.Sprintf(".str.%d", c.globalCounter)
	c.globalCounter++

	global := c.Module.NewGlobalDef(name, init)
	global.Linkage = enum.LinkagePrivate
	global.Immutable = true

	return constant.NewBitCast(global, types.NewPointer(types.I8))
}
