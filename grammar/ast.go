package grammar

import "github.com/alecthomas/participle/v2/lexer"

// ----------------------------------------------------------------------------
// Query expression AST
//
// This file defines the parse tree for a standalone ORM queryset
// expression: optional import statements followed by exactly one
// expression. The grammar is deliberately permissive about vocabulary (it
// knows nothing about which queryset methods exist) and strict about
// structure (balanced delimiters, well-formed argument lists).
// ----------------------------------------------------------------------------

// Script is the root of a parse tree.
type Script struct {
	Pos     lexer.Position
	Imports []*ImportStmt `( @@ Semicolon? )*`
	Expr    *Expression   `@@ Semicolon?`
}

// ImportStmt is a from-import or a plain import.
type ImportStmt struct {
	Pos  lexer.Position
	From *FromImport  `  @@`
	Mod  *PlainImport `| @@`
}

// FromImport is "from module.path import Name, Name".
type FromImport struct {
	Pos    lexer.Position
	Module *DottedName `"from" @@`
	Names  []string    `"import" @Ident ( Comma @Ident )*`
}

// PlainImport is "import module.path".
type PlainImport struct {
	Pos     lexer.Position
	Modules []*DottedName `"import" @@ ( Comma @@ )*`
}

// DottedName is a possibly namespaced identifier (e.g., db.models).
type DottedName struct {
	Pos   lexer.Position
	Parts []string `@Ident ( Dot @Ident )*`
}

// ----------------------------------------------------------------------------
// Expressions
//
// Precedence (lowest to highest):
// 1. | (combinator OR)
// 2. & (combinator AND)
// 3. Comparison (==, !=, <, >, <=, >=)
// 4. Addition/Subtraction
// 5. Multiplication/Division/Modulo
// 6. Power (**)
// 7. Unary (~, -, +)
// 8. Postfix (attribute access, calls, indexing)
// 9. Atom
// ----------------------------------------------------------------------------

// Expression is the top-level expression type (| combinator).
type Expression struct {
	Pos   lexer.Position
	Left  *AndExpr  `@@`
	Right []*OrTerm `@@*`
}

// OrTerm is a | operand.
type OrTerm struct {
	Pos  lexer.Position
	Expr *AndExpr `Pipe @@`
}

// AndExpr handles the & combinator.
type AndExpr struct {
	Pos   lexer.Position
	Left  *ComparisonExpr `@@`
	Right []*AndTerm      `@@*`
}

// AndTerm is a & operand.
type AndTerm struct {
	Pos  lexer.Position
	Expr *ComparisonExpr `Amp @@`
}

// ComparisonExpr handles comparisons.
type ComparisonExpr struct {
	Pos   lexer.Position
	Left  *AddSubExpr       `@@`
	Right []*ComparisonTerm `@@*`
}

// ComparisonTerm is a comparison operator and operand.
type ComparisonTerm struct {
	Pos  lexer.Position
	Op   string      `@( EqEq | NotEq | LessEq | GreaterEq | Less | Greater )`
	Expr *AddSubExpr `@@`
}

// AddSubExpr handles + and -.
type AddSubExpr struct {
	Pos   lexer.Position
	Left  *MulDivExpr   `@@`
	Right []*AddSubTerm `@@*`
}

// AddSubTerm is a + or - operand.
type AddSubTerm struct {
	Pos  lexer.Position
	Op   string      `@( Plus | Minus )`
	Expr *MulDivExpr `@@`
}

// MulDivExpr handles *, /, %.
type MulDivExpr struct {
	Pos   lexer.Position
	Left  *PowerExpr    `@@`
	Right []*MulDivTerm `@@*`
}

// MulDivTerm is a *, / or % operand.
type MulDivTerm struct {
	Pos  lexer.Position
	Op   string     `@( Star | Slash | Percent )`
	Expr *PowerExpr `@@`
}

// PowerExpr handles **.
type PowerExpr struct {
	Pos   lexer.Position
	Left  *UnaryExpr   `@@`
	Right []*UnaryExpr `( Pow @@ )*`
}

// UnaryExpr handles ~, unary - and unary +.
type UnaryExpr struct {
	Pos  lexer.Position
	Op   string       `@( Tilde | Minus | Plus )?`
	Expr *PostfixExpr `@@`
}

// PostfixExpr handles attribute access, calls and indexing.
type PostfixExpr struct {
	Pos      lexer.Position
	Atom     *Atom            `@@`
	Suffixes []*PostfixSuffix `@@*`
}

// PostfixSuffix is one postfix operation.
type PostfixSuffix struct {
	Pos       lexer.Position
	Attribute string       `  Dot @Ident`
	Call      *CallSuffix  `| @@`
	Index     *IndexSuffix `| @@`
}

// CallSuffix is (arg, arg, ...) with positional or keyword arguments.
type CallSuffix struct {
	Pos  lexer.Position
	Args []*Arg `LParen ( @@ ( Comma @@ )* Comma? )? RParen`
}

// Arg is a call argument, optionally in name=value keyword form.
type Arg struct {
	Pos   lexer.Position
	Name  string      `( @Ident Eq )?`
	Value *Expression `@@`
}

// IndexSuffix is [expr] or the slice forms [a:b], [a:], [:b].
type IndexSuffix struct {
	Pos   lexer.Position
	Start *Expression `LBracket @@?`
	Slice bool        `( @Colon`
	End   *Expression `  @@? )? RBracket`
}

// ----------------------------------------------------------------------------
// Atoms
// ----------------------------------------------------------------------------

// Atom is the base expression type. Literal keywords (None/True/False)
// must be tried before the bare-variable fallback.
type Atom struct {
	Pos      lexer.Position
	Literal  *Literal   `  @@`
	Paren    *ParenExpr `| @@`
	Variable string     `| @Ident`
}

// Literal is a constant value.
type Literal struct {
	Pos   lexer.Position
	None  bool         `  @"None"`
	True  bool         `| @"True"`
	False bool         `| @"False"`
	Float *float64     `| @Float`
	Int   *int64       `| @Int`
	Str   *string      `| @String`
	List  *ListLiteral `| @@`
	Dict  *DictLiteral `| @@`
}

// ParenExpr is (expr) or a tuple (expr, expr, ...).
type ParenExpr struct {
	Pos   lexer.Position
	Exprs []*Expression `LParen ( @@ ( Comma @@ )* Comma? )? RParen`
}

// ListLiteral is [expr, expr, ...].
type ListLiteral struct {
	Pos   lexer.Position
	Items []*Expression `LBracket ( @@ ( Comma @@ )* Comma? )? RBracket`
}

// DictLiteral is {key: value, ...}.
type DictLiteral struct {
	Pos   lexer.Position
	Pairs []*DictPair `LBrace ( @@ ( Comma @@ )* Comma? )? RBrace`
}

// DictPair is key: value in a dict literal.
type DictPair struct {
	Pos   lexer.Position
	Key   *Expression `@@ Colon`
	Value *Expression `@@`
}
