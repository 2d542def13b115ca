// Package grammar parses generated ORM query strings as standalone
// expressions. It exists for post-hoc syntax validation of language-model
// output: the parser recognizes balanced, well-formed queryset chains and
// rejects truncated or malformed replies, without knowing anything about
// the methods a particular ORM actually exposes.
package grammar

import (
	"strings"

	"github.com/alecthomas/participle/v2"
)

// Parser is the query expression parser instance.
var Parser = participle.MustBuild[Script](
	participle.Lexer(queryLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(10), // keyword arguments and tuples need backtracking
)

// Parse parses a query string into an AST.
func Parse(query string) (*Script, error) {
	return Parser.ParseString("", query)
}

// String returns the full dotted form of a DottedName (e.g., "db.models").
func (n *DottedName) String() string {
	if n == nil {
		return ""
	}
	return strings.Join(n.Parts, ".")
}

// IsKeyword reports whether the argument is in name=value form.
func (a *Arg) IsKeyword() bool {
	return a != nil && a.Name != ""
}

// IsInt returns true if this literal is an integer.
func (l *Literal) IsInt() bool {
	return l != nil && l.Int != nil
}

// IsString returns true if this literal is a string.
func (l *Literal) IsString() bool {
	return l != nil && l.Str != nil
}
