// Package scope implements the Scope Stack (base spec §4.2): a stack of
// lexical scopes, each mapping a name to a storage handle and its stored
// IR type, plus the insertion point active when that scope was entered.
//
// Lookup walks the stack from top to bottom without mutating it — the
// Design Notes in base spec §9 call out the original's pop/recurse/push
// traversal as unsafe and recommend a plain top-down scan instead, which
// is what Stack.Lookup does.
package scope

import (
	"bee/internal/report"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Entry is a symbol binding: a storage handle and its stored IR type. For
// arrays the stored type is the element type (base spec §3 Symbol entry).
type Entry struct {
	Handle value.Value
	Type   types.Type
}

// scopeFrame is one level of the stack.
type scopeFrame struct {
	names map[string]Entry
	block *ir.Block
}

// Stack is the lowering pass's lexical scope stack. It is not
// thread-safe (base spec §4.2): a single lowering pass owns it exclusively.
type Stack struct {
	frames []*scopeFrame
}

// New creates an empty scope stack.
func New() *Stack {
	return &Stack{}
}

// Push pushes a fresh, empty scope whose insertion point is block.
func (s *Stack) Push(block *ir.Block) {
	s.frames = append(s.frames, &scopeFrame{
		names: make(map[string]Entry),
		block: block,
	})
}

// Pop discards the top scope. Panics if the stack is empty — popping an
// empty stack is a core bug, not a user-facing error (the push/pop
// discipline is RAII-equivalent per base spec §5 and should never
// underflow if every Push is paired with a Pop).
func (s *Stack) Pop() {
	if len(s.frames) == 0 {
		panic("scope: Pop on empty stack")
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth returns the current number of scopes on the stack.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Define inserts name into the top scope. Fails with report.Redeclared if
// the name already exists in the top scope only — shadowing an outer
// scope's binding is fine.
func (s *Stack) Define(name string, handle value.Value, typ types.Type) error {
	top := s.top()
	if _, ok := top.names[name]; ok {
		return report.Redeclared(name)
	}
	top.names[name] = Entry{Handle: handle, Type: typ}
	return nil
}

// Lookup returns the entry for the nearest enclosing scope containing
// name, searching from innermost (top) outward. Fails with
// report.Undeclared if no scope binds it.
func (s *Stack) Lookup(name string) (Entry, error) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if e, ok := s.frames[i].names[name]; ok {
			return e, nil
		}
	}
	return Entry{}, report.Undeclared(name)
}

// CurrentBlock returns the top scope's insertion point.
func (s *Stack) CurrentBlock() *ir.Block {
	return s.top().block
}

// SetCurrentBlock mutates the top scope's insertion point.
func (s *Stack) SetCurrentBlock(b *ir.Block) {
	s.top().block = b
}

func (s *Stack) top() *scopeFrame {
	if len(s.frames) == 0 {
		panic("scope: operation on empty stack")
	}
	return s.frames[len(s.frames)-1]
}
