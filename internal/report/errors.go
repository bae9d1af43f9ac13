// Package report implements the closed error-kind set of base spec §7 and
// a pterm-backed reporter for displaying them, using a tag-plus-message
// shape for each diagnostic.
package report

import "fmt"

// Kind is one entry of the closed error-kind set (base spec §7).
type Kind int

const (
	KindUnknownType Kind = iota
	KindUndeclared
	KindRedeclared
	KindUnknownFunction
	KindBadUnary
	KindBadBinary
	KindEmptyArrayLiteral
)

var kindTags = map[Kind]string{
	KindUnknownType:       "Unknown Type",
	KindUndeclared:        "Undeclared",
	KindRedeclared:        "Redeclared",
	KindUnknownFunction:   "Unknown Function",
	KindBadUnary:          "Bad Unary",
	KindBadBinary:         "Bad Binary",
	KindEmptyArrayLiteral: "Empty Array Literal",
}

func (k Kind) String() string {
	if tag, ok := kindTags[k]; ok {
		return tag
	}
	return "Unknown Error"
}

// Error is a fatal lowering failure: a kind plus the offending symbol
// name. Base spec §7 policy: reported at the point of detection, not
// recovered locally, terminates the pass.
type Error struct {
	Kind Kind
	Name string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Name)
}

// UnknownType builds the error for an unrecognized type name (§4.1).
func UnknownType(name string) *Error { return &Error{KindUnknownType, name} }

// Undeclared builds the error for a lookup that found nothing (§4.2).
func Undeclared(name string) *Error { return &Error{KindUndeclared, name} }

// Redeclared builds the error for a name already bound in the current scope (§4.2).
func Redeclared(name string) *Error { return &Error{KindRedeclared, name} }

// UnknownFunction builds the error for a call whose callee isn't in the module (§4.4).
func UnknownFunction(name string) *Error { return &Error{KindUnknownFunction, name} }

// BadUnary builds the error for an unrecognized unary operator tag (§4.4).
func BadUnary() *Error { return &Error{Kind: KindBadUnary} }

// BadBinary builds the error for an unrecognized binary operator tag (§4.4).
func BadBinary() *Error { return &Error{Kind: KindBadBinary} }

// EmptyArrayLiteral builds the error for a zero-element array literal,
// which has no element type to allocate storage for (§9 Open Question).
func EmptyArrayLiteral() *Error { return &Error{Kind: KindEmptyArrayLiteral} }
