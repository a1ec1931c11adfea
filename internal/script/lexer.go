package script

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// The lexer has two states. At the start of a line only a verb, a comment or
// blank space can appear, so any '#' there opens a comment. Inside a command
// '#' followed by 3, 6 or 8 hex digits is a color literal and any other '#'
// opens a trailing comment. An @name directly followed by :N is a single
// token so group names never absorb the index.
var scriptLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n`},
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Verb", Pattern: `[A-Za-z_]\w*`, Action: lexer.Push("Line")},
	},
	"Line": {
		{Name: "Continue", Pattern: `\\[ \t]*\r?\n`},
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n`, Action: lexer.Pop()},
		{Name: "Hex", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Func", Pattern: `(?i)(?:rgb|hsv|hsl|cmyk|xyz)\([^)\n]*\)`},
		{Name: "String", Pattern: `"(?:[^"\\\n]|\\.)*"`},
		{Name: "Path", Pattern: `(?:~|\.{1,2})?/[^\s(),=#"\[\]]*`},
		{Name: "Range", Pattern: `\.\.`},
		{Name: "GroupIndex", Pattern: `@[\p{L}_][\p{L}\p{N}_.\-]*:\d+`},
		{Name: "Group", Pattern: `@[\p{L}_][\p{L}\p{N}_.\-]*`},
		{Name: "Star", Pattern: `\*`},
		{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_.\-/]*`},
		{Name: "Punct", Pattern: `[(),=\[\]]`},
	},
})

var symbols = scriptLexer.Symbols()

var (
	tokWhitespace = symbols["Whitespace"]
	tokNewline    = symbols["Newline"]
	tokComment    = symbols["Comment"]
	tokContinue   = symbols["Continue"]
	tokVerb       = symbols["Verb"]
	tokHex        = symbols["Hex"]
	tokFunc       = symbols["Func"]
	tokString     = symbols["String"]
	tokPath       = symbols["Path"]
	tokRange      = symbols["Range"]
	tokGroupIndex = symbols["GroupIndex"]
	tokGroup      = symbols["Group"]
	tokStar       = symbols["Star"]
	tokNumber     = symbols["Number"]
	tokIdent      = symbols["Ident"]
	tokPunct      = symbols["Punct"]
)
