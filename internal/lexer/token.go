// Package lexer tokenizes Bee source text. It supplements the base spec
// (out of scope for the lowering core, base spec §1) with just enough
// front end to turn the end-to-end scenarios in base spec §8 into ASTs;
// it carries none of the core's semantic weight (no type checking, no
// scope management).
package lexer

// Kind enumerates token kinds.
type Kind int

const (
	TOK_EOF Kind = iota

	TOK_IDENT
	TOK_INTLIT
	TOK_DOUBLELIT
	TOK_STRINGLIT
	TOK_BOOLLIT

	TOK_FUNC
	TOK_EXTERN
	TOK_IF
	TOK_ELSE
	TOK_WHILE
	TOK_RETURN

	TOK_TYPE_NAME // int, double, string, bool, void (contextual keyword, value holds the name)

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_SLASH

	TOK_PLUSEQ
	TOK_MINUSEQ
	TOK_STAREQ
	TOK_SLASHEQ

	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_LE
	TOK_GT
	TOK_GE

	TOK_ASSIGN
	TOK_NOT

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_COMMA
	TOK_SEMI
)

// Token is a single lexical token: its kind, literal text, and the
// 1-based line it started on.
type Token struct {
	Kind  Kind
	Value string
	Line  int
}

var keywords = map[string]Kind{
	"func":   TOK_FUNC,
	"extern": TOK_EXTERN,
	"if":     TOK_IF,
	"else":   TOK_ELSE,
	"while":  TOK_WHILE,
	"return": TOK_RETURN,
	"true":   TOK_BOOLLIT,
	"false":  TOK_BOOLLIT,
}

var typeNames = map[string]bool{
	"int":    true,
	"double": true,
	"string": true,
	"bool":   true,
	"void":   true,
}
