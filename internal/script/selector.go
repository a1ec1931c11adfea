package script

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	swerr "github.com/amterp/swatch/internal/errors"
)

// SelectorKind discriminates Selector.
type SelectorKind int

const (
	SelectIndex SelectorKind = iota + 1
	SelectRange
	SelectName
	SelectGroup
	SelectAll
	SelectGroupIndex
	SelectGroupRange
	SelectList
)

// Selector is an unresolved reference to cells. Indexes are 0-based display
// ranks; ranges are inclusive. The group index kinds count instead within a
// group's member order. A SelectList is the union of its Parts, which are
// never lists themselves.
type Selector struct {
	Kind  SelectorKind
	Index int
	Lo    int
	Hi    int
	Name  string
	Parts []Selector
}

// All selects every cell.
var All = Selector{Kind: SelectAll}

func (s Selector) String() string {
	switch s.Kind {
	case SelectIndex:
		return strconv.Itoa(s.Index)
	case SelectRange:
		return fmt.Sprintf("%d..%d", s.Lo, s.Hi)
	case SelectName:
		return s.Name
	case SelectGroup:
		return "@" + s.Name
	case SelectAll:
		return "*"
	case SelectGroupIndex:
		return fmt.Sprintf("@%s:%d", s.Name, s.Index)
	case SelectGroupRange:
		return fmt.Sprintf("@%s:%d..%d", s.Name, s.Lo, s.Hi)
	case SelectList:
		parts := make([]string, len(s.Parts))
		for i, p := range s.Parts {
			parts[i] = p.String()
		}
		return strings.Join(parts, ", ")
	}
	return "?"
}

// Equal reports whether two selectors are written the same way.
func (s Selector) Equal(o Selector) bool {
	return s.Kind == o.Kind && s.Index == o.Index && s.Lo == o.Lo && s.Hi == o.Hi &&
		s.Name == o.Name && slices.EqualFunc(s.Parts, o.Parts, Selector.Equal)
}

// ParseSelector parses a selector typed outside a script, such as a command
// line argument. Blank text selects everything.
func ParseSelector(text string) (Selector, error) {
	if strings.TrimSpace(text) == "" {
		return All, nil
	}
	bad := &swerr.ValidationError{Field: "selector", Message: fmt.Sprintf("%q is not an index, range, name, @group, @group:index, * or a list of them", text)}
	if strings.ContainsAny(text, "\n\r") {
		return Selector{}, bad
	}
	st, err := NewParser("", "list "+text).Next()
	if err != nil {
		return Selector{}, bad
	}
	cmd, err := Validate(st)
	if err != nil {
		return Selector{}, bad
	}
	return cmd.(*List).Target, nil
}
