package script

import (
	"fmt"
	"strings"

	swerr "github.com/amterp/swatch/internal/errors"
)

// ValueKind classifies a literal argument.
type ValueKind int

const (
	ValueNumber     ValueKind = iota + 1
	ValueWord                 // bare identifier
	ValueString               // double-quoted, escapes resolved
	ValueColor                // #hex or rgb(...)-style literal
	ValueGroup                // @name; Text holds the name without '@'
	ValueAll                  // *
	ValueRange                // a..b; Lo and Hi hold the bound literals
	ValuePath                 // /abs, ./rel, ../rel or ~/home
	ValueGroupIndex           // @name:i; Text holds the name, Lo the index
	ValueGroupRange           // @name:a..b; Text holds the name
	ValueList                 // selectors joined by ','; Items holds them
)

func (k ValueKind) String() string {
	switch k {
	case ValueNumber:
		return "number"
	case ValueWord:
		return "word"
	case ValueString:
		return "string"
	case ValueColor:
		return "color"
	case ValueGroup:
		return "group"
	case ValueAll:
		return "'*'"
	case ValueRange:
		return "range"
	case ValuePath:
		return "path"
	case ValueGroupIndex:
		return "group index"
	case ValueGroupRange:
		return "group range"
	case ValueList:
		return "selection list"
	}
	return "unknown"
}

// Value is one literal as written in the script.
type Value struct {
	Kind  ValueKind
	Text  string
	Lo    string
	Hi    string
	Items []Value
	Pos   swerr.Pos
}

// selectable reports whether values of kind k can appear in a selection list.
func (k ValueKind) selectable() bool {
	switch k {
	case ValueNumber, ValueWord, ValueString, ValueGroup, ValueAll, ValueRange, ValueGroupIndex, ValueGroupRange:
		return true
	}
	return false
}

func (v Value) String() string {
	switch v.Kind {
	case ValueString:
		return fmt.Sprintf("%q", v.Text)
	case ValueGroup:
		return "@" + v.Text
	case ValueRange:
		return v.Lo + ".." + v.Hi
	case ValueGroupIndex:
		return "@" + v.Text + ":" + v.Lo
	case ValueGroupRange:
		return "@" + v.Text + ":" + v.Lo + ".." + v.Hi
	case ValueList:
		items := make([]string, len(v.Items))
		for i, item := range v.Items {
			items[i] = item.String()
		}
		return "[" + strings.Join(items, ", ") + "]"
	}
	return v.Text
}

// Arg is a positional or keyword (key=value) argument.
type Arg struct {
	Key   string
	Value Value
	Pos   swerr.Pos
}

func (a Arg) String() string {
	if a.Key != "" {
		return a.Key + "=" + a.Value.String()
	}
	return a.Value.String()
}

// Statement is one parsed, unvalidated logical line.
type Statement struct {
	Verb string
	Args []Arg
	Pos  swerr.Pos
}

// String renders the statement in canonical call form.
func (s *Statement) String() string {
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = a.String()
	}
	return s.Verb + "(" + strings.Join(args, ", ") + ")"
}
