package script

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	swerr "github.com/amterp/swatch/internal/errors"
)

// Parser turns script text into Statements one logical line at a time.
// Text past the current line is not tokenized until Next is called again, so
// a malformed later line never prevents earlier ones from being returned.
type Parser struct {
	lex    lexer.Lexer
	peeked *lexer.Token
	err    error
}

// NewParser creates a parser over src. filename is used only in positions.
func NewParser(filename, src string) *Parser {
	p := &Parser{}
	p.lex, p.err = scriptLexer.LexString(filename, src)
	return p
}

// Parse parses an entire script. Intended for callers that do not execute
// incrementally, such as tests and the check command.
func Parse(src string) ([]*Statement, error) {
	p := NewParser("", src)
	var out []*Statement
	for {
		st, err := p.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, st)
	}
}

// Next returns the next statement, or io.EOF when the script is exhausted.
// Blank and comment-only lines are skipped. After a syntax error every later
// call returns the same error.
func (p *Parser) Next() (*Statement, error) {
	if p.err != nil {
		return nil, p.err
	}
	st, err := p.statement()
	if err != nil {
		p.err = err
		return nil, err
	}
	return st, nil
}

func (p *Parser) statement() (*Statement, error) {
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.EOF():
			return nil, io.EOF
		case tok.Type == tokNewline, tok.Type == tokComment:
			continue
		case tok.Type == tokVerb:
			return p.command(tok)
		default:
			return nil, swerr.Syntax(posOf(tok), "expected a command, found %q", tok.Value)
		}
	}
}

func (p *Parser) command(verb lexer.Token) (*Statement, error) {
	st := &Statement{Verb: strings.ToLower(verb.Value), Pos: posOf(verb)}

	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if isPunct(tok, "(") {
		if err := p.callArgs(st); err != nil {
			return nil, err
		}
		if tok, err = p.next(); err != nil {
			return nil, err
		}
		if !endsLine(tok) {
			return nil, swerr.Syntax(posOf(tok), "unexpected %q after ')'", tok.Value)
		}
		return st, p.finishLine(tok)
	}

	for !endsLine(tok) {
		arg, err := p.arg(tok)
		if err != nil {
			return nil, err
		}
		if arg.Value, err = p.joined(arg.Value); err != nil {
			return nil, err
		}
		st.Args = append(st.Args, arg)
		if tok, err = p.next(); err != nil {
			return nil, err
		}
	}
	return st, p.finishLine(tok)
}

// callArgs parses "a, b, key=c)" after the opening parenthesis.
func (p *Parser) callArgs(st *Statement) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if isPunct(tok, ")") {
		return nil
	}
	for {
		if endsLine(tok) {
			return swerr.Syntax(posOf(tok), "missing ')'")
		}
		arg, err := p.arg(tok)
		if err != nil {
			return err
		}
		st.Args = append(st.Args, arg)

		if tok, err = p.next(); err != nil {
			return err
		}
		switch {
		case isPunct(tok, ")"):
			return nil
		case isPunct(tok, ","):
			if tok, err = p.next(); err != nil {
				return err
			}
		case endsLine(tok):
			return swerr.Syntax(posOf(tok), "missing ')'")
		default:
			return swerr.Syntax(posOf(tok), "expected ',' or ')', found %q", tok.Value)
		}
	}
}

func (p *Parser) arg(tok lexer.Token) (Arg, error) {
	if tok.Type == tokIdent {
		next, err := p.peek()
		if err != nil {
			return Arg{}, err
		}
		if isPunct(next, "=") {
			p.peeked = nil
			valTok, err := p.next()
			if err != nil {
				return Arg{}, err
			}
			if endsLine(valTok) {
				return Arg{}, swerr.Syntax(posOf(valTok), "missing value for %s", tok.Value)
			}
			val, err := p.value(valTok)
			if err != nil {
				return Arg{}, err
			}
			return Arg{Key: strings.ToLower(tok.Value), Value: val, Pos: posOf(tok)}, nil
		}
	}
	val, err := p.value(tok)
	if err != nil {
		return Arg{}, err
	}
	return Arg{Value: val, Pos: val.Pos}, nil
}

func (p *Parser) value(tok lexer.Token) (Value, error) {
	pos := posOf(tok)
	switch tok.Type {
	case tokHex, tokFunc:
		return Value{Kind: ValueColor, Text: tok.Value, Pos: pos}, nil
	case tokString:
		s, err := strconv.Unquote(tok.Value)
		if err != nil {
			return Value{}, swerr.Syntax(pos, "invalid escape in string %s", tok.Value)
		}
		return Value{Kind: ValueString, Text: s, Pos: pos}, nil
	case tokGroup:
		return Value{Kind: ValueGroup, Text: tok.Value[1:], Pos: pos}, nil
	case tokGroupIndex:
		return p.groupIndex(tok)
	case tokStar:
		return Value{Kind: ValueAll, Text: tok.Value, Pos: pos}, nil
	case tokPath:
		return Value{Kind: ValuePath, Text: tok.Value, Pos: pos}, nil
	case tokIdent:
		return Value{Kind: ValueWord, Text: tok.Value, Pos: pos}, nil
	case tokNumber:
		next, err := p.peek()
		if err != nil {
			return Value{}, err
		}
		if next.Type != tokRange {
			return Value{Kind: ValueNumber, Text: tok.Value, Pos: pos}, nil
		}
		p.peeked = nil
		hi, err := p.next()
		if err != nil {
			return Value{}, err
		}
		if hi.Type != tokNumber {
			return Value{}, swerr.Syntax(posOf(hi), "range %s.. needs an upper bound", tok.Value)
		}
		return Value{
			Kind: ValueRange,
			Text: tok.Value + ".." + hi.Value,
			Lo:   tok.Value,
			Hi:   hi.Value,
			Pos:  pos,
		}, nil
	case tokRange:
		return Value{}, swerr.Syntax(pos, "range needs a lower bound")
	case tokPunct:
		if tok.Value == "[" {
			return p.list(tok)
		}
	}
	return Value{}, swerr.Syntax(pos, "unexpected %q", tok.Value)
}

// groupIndex parses "@name:i" with an optional "..j" upper bound.
func (p *Parser) groupIndex(tok lexer.Token) (Value, error) {
	sep := strings.LastIndexByte(tok.Value, ':')
	v := Value{Kind: ValueGroupIndex, Text: tok.Value[1:sep], Lo: tok.Value[sep+1:], Pos: posOf(tok)}

	next, err := p.peek()
	if err != nil {
		return Value{}, err
	}
	if next.Type != tokRange {
		return v, nil
	}
	p.peeked = nil
	hi, err := p.next()
	if err != nil {
		return Value{}, err
	}
	if hi.Type != tokNumber {
		return Value{}, swerr.Syntax(posOf(hi), "range %s.. needs an upper bound", tok.Value)
	}
	v.Kind = ValueGroupRange
	v.Hi = hi.Value
	return v, nil
}

// list parses "a, b]" after an opening bracket.
func (p *Parser) list(open lexer.Token) (Value, error) {
	out := Value{Kind: ValueList, Pos: posOf(open)}
	for {
		tok, err := p.next()
		if err != nil {
			return Value{}, err
		}
		if endsLine(tok) {
			return Value{}, swerr.Syntax(posOf(tok), "missing ']'")
		}
		if isPunct(tok, "]") && len(out.Items) == 0 {
			return Value{}, swerr.Syntax(posOf(tok), "empty selection list")
		}
		item, err := p.listItem(tok)
		if err != nil {
			return Value{}, err
		}
		out.Items = append(out.Items, item)

		if tok, err = p.next(); err != nil {
			return Value{}, err
		}
		switch {
		case isPunct(tok, "]"):
			return out, nil
		case isPunct(tok, ","):
		case endsLine(tok):
			return Value{}, swerr.Syntax(posOf(tok), "missing ']'")
		default:
			return Value{}, swerr.Syntax(posOf(tok), "expected ',' or ']', found %q", tok.Value)
		}
	}
}

// joined folds "a, b, c" in the bare form into one list value. first is the
// value already parsed; it is returned unchanged when no ',' follows.
func (p *Parser) joined(first Value) (Value, error) {
	next, err := p.peek()
	if err != nil || !isPunct(next, ",") {
		return first, err
	}
	if !first.Kind.selectable() {
		return Value{}, swerr.Syntax(posOf(next), "only selectors can be joined with ','")
	}

	out := Value{Kind: ValueList, Items: []Value{first}, Pos: first.Pos}
	for isPunct(next, ",") {
		p.peeked = nil
		tok, err := p.next()
		if err != nil {
			return Value{}, err
		}
		if endsLine(tok) {
			return Value{}, swerr.Syntax(posOf(tok), "missing selector after ','")
		}
		item, err := p.listItem(tok)
		if err != nil {
			return Value{}, err
		}
		out.Items = append(out.Items, item)
		if next, err = p.peek(); err != nil {
			return Value{}, err
		}
	}
	return out, nil
}

func (p *Parser) listItem(tok lexer.Token) (Value, error) {
	item, err := p.value(tok)
	if err != nil {
		return Value{}, err
	}
	if !item.Kind.selectable() {
		return Value{}, swerr.Syntax(item.Pos, "expected a selector in list, found %s", item.Kind)
	}
	return item, nil
}

// finishLine consumes a trailing comment so the next call starts on a fresh
// line. tok is the token that ended the command.
func (p *Parser) finishLine(tok lexer.Token) error {
	if tok.Type != tokComment {
		return nil
	}
	next, err := p.next()
	if err != nil {
		return err
	}
	if !next.EOF() && next.Type != tokNewline {
		return swerr.Syntax(posOf(next), "unexpected %q after comment", next.Value)
	}
	return nil
}

// next returns the next significant token, skipping blanks and line
// continuations.
func (p *Parser) next() (lexer.Token, error) {
	if p.peeked != nil {
		tok := *p.peeked
		p.peeked = nil
		return tok, nil
	}
	for {
		tok, err := p.lex.Next()
		if err != nil {
			return lexer.Token{}, lexError(err)
		}
		if tok.Type == tokWhitespace || tok.Type == tokContinue {
			continue
		}
		return tok, nil
	}
}

func (p *Parser) peek() (lexer.Token, error) {
	if p.peeked == nil {
		tok, err := p.next()
		if err != nil {
			return lexer.Token{}, err
		}
		p.peeked = &tok
	}
	return *p.peeked, nil
}

func endsLine(tok lexer.Token) bool {
	return tok.EOF() || tok.Type == tokNewline || tok.Type == tokComment
}

func isPunct(tok lexer.Token, s string) bool {
	return tok.Type == tokPunct && tok.Value == s
}

func posOf(tok lexer.Token) swerr.Pos {
	return swerr.Pos{File: tok.Pos.Filename, Line: tok.Pos.Line, Column: tok.Pos.Column}
}

func lexError(err error) error {
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		return swerr.Syntax(swerr.Pos{File: lerr.Pos.Filename, Line: lerr.Pos.Line, Column: lerr.Pos.Column}, "%s", lerr.Msg)
	}
	return swerr.Syntax(swerr.Pos{}, "%v", err)
}
