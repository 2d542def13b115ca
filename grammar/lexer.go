package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// queryLexer tokenizes ORM queryset expressions. Signs on numbers are
// handled by the grammar (unary minus), not the lexer, so expressions
// like F('score')-1 tokenize correctly.
var queryLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Whitespace and comments (elided from output)
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
		{Name: "Comment", Pattern: `#[^\r\n]*`, Action: nil},

		// Multi-character operators (must come before single-char)
		{Name: "EqEq", Pattern: `==`},
		{Name: "NotEq", Pattern: `!=`},
		{Name: "LessEq", Pattern: `<=`},
		{Name: "GreaterEq", Pattern: `>=`},
		{Name: "Pow", Pattern: `\*\*`},

		// Single-character operators
		{Name: "Eq", Pattern: `=`},
		{Name: "Less", Pattern: `<`},
		{Name: "Greater", Pattern: `>`},
		{Name: "Plus", Pattern: `\+`},
		{Name: "Minus", Pattern: `-`},
		{Name: "Star", Pattern: `\*`},
		{Name: "Slash", Pattern: `/`},
		{Name: "Percent", Pattern: `%`},
		{Name: "Tilde", Pattern: `~`},
		{Name: "Pipe", Pattern: `\|`},
		{Name: "Amp", Pattern: `&`},
		{Name: "Dot", Pattern: `\.`},
		{Name: "Comma", Pattern: `,`},
		{Name: "Colon", Pattern: `:`},
		{Name: "Semicolon", Pattern: `;`},
		{Name: "LParen", Pattern: `\(`},
		{Name: "RParen", Pattern: `\)`},
		{Name: "LBracket", Pattern: `\[`},
		{Name: "RBracket", Pattern: `\]`},
		{Name: "LBrace", Pattern: `\{`},
		{Name: "RBrace", Pattern: `\}`},

		// String literals (both single and double quotes)
		{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`},

		// Numbers - float must come before int to match longest
		{Name: "Float", Pattern: `\d+\.\d*(?:[eE][+-]?\d+)?|\.\d+(?:[eE][+-]?\d+)?|\d+[eE][+-]?\d+`},
		{Name: "Int", Pattern: `\d+`},

		// Identifiers (keywords are matched by literal)
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	},
})
