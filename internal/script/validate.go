package script

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/amterp/swatch/internal/color"
	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/util"
)

type param struct {
	name     string
	alias    string
	optional bool
}

var signatures = map[string][]param{
	"new":     {},
	"insert":  {{name: "color"}, {name: "name", optional: true}, {name: "position", alias: "at", optional: true}},
	"delete":  {{name: "selector"}},
	"move":    {{name: "selector"}, {name: "position", alias: "to"}},
	"rename":  {{name: "selector"}, {name: "name"}},
	"set":     {{name: "selector"}, {name: "attribute"}, {name: "value"}},
	"group":   {{name: "name"}, {name: "selector"}},
	"ungroup": {{name: "name"}},
	"undo":    {{name: "count", optional: true}},
	"redo":    {{name: "count", optional: true}},
	"save":    {{name: "path"}},
	"load":    {{name: "path"}},
	"list":    {{name: "selector", optional: true}},
	"grid":    {{name: "selector", optional: true}},
}

// Verbs returns the known command names, sorted.
func Verbs() []string {
	out := make([]string, 0, len(signatures))
	for v := range signatures {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Validate checks a statement's arity and literal types and lifts it into a
// Command. It never consults palette state.
func Validate(st *Statement) (Command, error) {
	params, ok := signatures[st.Verb]
	if !ok {
		return nil, swerr.Invalid(st.Pos, "", fmt.Sprintf("unknown command %q", st.Verb))
	}
	args, err := bind(st, params)
	if err != nil {
		return nil, err
	}

	base := at{pos: st.Pos}
	switch st.Verb {
	case "new":
		return &New{at: base}, nil

	case "insert":
		cmd := &Insert{at: base}
		if cmd.Color, err = colorArg(args["color"]); err != nil {
			return nil, err
		}
		if a, ok := args["name"]; ok {
			if cmd.Name, err = nameArg(a, "name", false); err != nil {
				return nil, err
			}
		}
		if a, ok := args["position"]; ok {
			pos, err := positionArg(a)
			if err != nil {
				return nil, err
			}
			cmd.Position = &pos
		}
		return cmd, nil

	case "delete":
		sel, err := selectorArg(args["selector"])
		if err != nil {
			return nil, err
		}
		return &Delete{at: base, Target: sel}, nil

	case "move":
		sel, err := selectorArg(args["selector"])
		if err != nil {
			return nil, err
		}
		to, err := positionArg(args["position"])
		if err != nil {
			return nil, err
		}
		return &Move{at: base, Target: sel, To: to}, nil

	case "rename":
		sel, err := selectorArg(args["selector"])
		if err != nil {
			return nil, err
		}
		name, err := nameArg(args["name"], "name", true)
		if err != nil {
			return nil, err
		}
		return &Rename{at: base, Target: sel, Name: name}, nil

	case "set":
		return setCommand(base, args)

	case "group":
		name, err := groupNameArg(args["name"])
		if err != nil {
			return nil, err
		}
		sel, err := selectorArg(args["selector"])
		if err != nil {
			return nil, err
		}
		return &Group{at: base, Name: name, Target: sel}, nil

	case "ungroup":
		name, err := groupNameArg(args["name"])
		if err != nil {
			return nil, err
		}
		return &Ungroup{at: base, Name: name}, nil

	case "undo", "redo":
		count := 1
		if a, ok := args["count"]; ok {
			if count, err = intArg(a, "count"); err != nil {
				return nil, err
			}
		}
		if st.Verb == "undo" {
			return &Undo{at: base, Count: count}, nil
		}
		return &Redo{at: base, Count: count}, nil

	case "save", "load":
		path, err := pathArg(args["path"])
		if err != nil {
			return nil, err
		}
		if st.Verb == "save" {
			return &Save{at: base, Path: path}, nil
		}
		return &Load{at: base, Path: path}, nil

	case "list", "grid":
		sel := All
		if a, ok := args["selector"]; ok {
			if sel, err = selectorArg(a); err != nil {
				return nil, err
			}
		}
		if st.Verb == "list" {
			return &List{at: base, Target: sel}, nil
		}
		return &Grid{at: base, Target: sel}, nil
	}
	panic("unhandled verb " + st.Verb)
}

// bind matches positional and keyword arguments to parameters.
func bind(st *Statement, params []param) (map[string]Value, error) {
	out := make(map[string]Value, len(params))
	next := 0
	seenKeyword := false

	for _, a := range st.Args {
		if a.Key == "" {
			if seenKeyword {
				return nil, swerr.Invalid(a.Pos, "", "positional argument after keyword argument")
			}
			if next >= len(params) {
				return nil, swerr.Invalid(a.Pos, "", fmt.Sprintf("%s takes at most %d arguments, got %d", st.Verb, len(params), len(st.Args)))
			}
			out[params[next].name] = a.Value
			next++
			continue
		}

		seenKeyword = true
		idx := slices.IndexFunc(params, func(p param) bool {
			return p.name == a.Key || (p.alias != "" && p.alias == a.Key)
		})
		if idx < 0 {
			return nil, swerr.Invalid(a.Pos, "", fmt.Sprintf("%s has no parameter %q", st.Verb, a.Key))
		}
		name := params[idx].name
		if _, dup := out[name]; dup {
			return nil, swerr.Invalid(a.Pos, "", fmt.Sprintf("%s given twice", name))
		}
		out[name] = a.Value
	}

	for _, p := range params {
		if _, ok := out[p.name]; !ok && !p.optional {
			return nil, swerr.Invalid(st.Pos, "", fmt.Sprintf("%s: missing %s", st.Verb, p.name))
		}
	}
	return out, nil
}

func setCommand(base at, args map[string]Value) (Command, error) {
	sel, err := selectorArg(args["selector"])
	if err != nil {
		return nil, err
	}
	attrVal := args["attribute"]
	if attrVal.Kind != ValueWord && attrVal.Kind != ValueString {
		return nil, swerr.Invalid(attrVal.Pos, "attribute", fmt.Sprintf("expected an attribute name, got %s", attrVal.Kind))
	}

	cmd := &Set{at: base, Target: sel, Attr: Attribute(strings.ToLower(attrVal.Text))}
	value := args["value"]
	switch cmd.Attr {
	case AttrColor:
		if cmd.Color, err = colorArg(value); err != nil {
			return nil, err
		}
	case AttrHue:
		if cmd.Amount, err = floatArg(value, "hue", 0, 360); err != nil {
			return nil, err
		}
	case AttrSaturation, AttrLightness:
		if cmd.Amount, err = floatArg(value, string(cmd.Attr), 0, 1); err != nil {
			return nil, err
		}
	default:
		return nil, swerr.Invalid(attrVal.Pos, "attribute",
			fmt.Sprintf("unknown attribute %q (expected color, hue, saturation or lightness)", attrVal.Text))
	}
	return cmd, nil
}

func colorArg(v Value) (color.Color, error) {
	switch v.Kind {
	case ValueColor, ValueWord, ValueString:
		c, err := color.Parse(v.Text)
		if err != nil {
			return color.Color{}, swerr.Invalid(v.Pos, "color", err.Error())
		}
		return c, nil
	}
	return color.Color{}, swerr.Invalid(v.Pos, "color", fmt.Sprintf("expected a color, got %s", v.Kind))
}

func nameArg(v Value, field string, allowEmpty bool) (string, error) {
	if v.Kind != ValueWord && v.Kind != ValueString {
		return "", swerr.Invalid(v.Pos, field, fmt.Sprintf("expected a name, got %s", v.Kind))
	}
	name := util.NormalizeName(v.Text)
	if name == "" && allowEmpty {
		return "", nil
	}
	if err := util.ValidateName(name); err != nil {
		return "", swerr.Invalid(v.Pos, field, err.Error())
	}
	return name, nil
}

func groupNameArg(v Value) (string, error) {
	switch v.Kind {
	case ValueGroup, ValueWord, ValueString:
	default:
		return "", swerr.Invalid(v.Pos, "group name", fmt.Sprintf("expected a group name, got %s", v.Kind))
	}
	name := util.NormalizeName(v.Text)
	if err := util.ValidateGroupName(name); err != nil {
		return "", swerr.Invalid(v.Pos, "group name", err.Error())
	}
	return name, nil
}

func selectorArg(v Value) (Selector, error) {
	switch v.Kind {
	case ValueNumber:
		i, err := intArg(v, "selector")
		if err != nil {
			return Selector{}, err
		}
		return Selector{Kind: SelectIndex, Index: i}, nil
	case ValueRange:
		lo, hi, err := rangeBounds(v)
		if err != nil {
			return Selector{}, err
		}
		return Selector{Kind: SelectRange, Lo: lo, Hi: hi}, nil
	case ValueGroup:
		return Selector{Kind: SelectGroup, Name: util.NormalizeName(v.Text)}, nil
	case ValueGroupIndex:
		i, err := strconv.Atoi(v.Lo)
		if err != nil {
			return Selector{}, swerr.Invalid(v.Pos, "selector", fmt.Sprintf("%s needs an integer index", v))
		}
		return Selector{Kind: SelectGroupIndex, Name: util.NormalizeName(v.Text), Index: i}, nil
	case ValueGroupRange:
		lo, hi, err := rangeBounds(v)
		if err != nil {
			return Selector{}, err
		}
		return Selector{Kind: SelectGroupRange, Name: util.NormalizeName(v.Text), Lo: lo, Hi: hi}, nil
	case ValueList:
		parts := make([]Selector, 0, len(v.Items))
		for _, item := range v.Items {
			sel, err := selectorArg(item)
			if err != nil {
				return Selector{}, err
			}
			if !slices.ContainsFunc(parts, sel.Equal) {
				parts = append(parts, sel)
			}
		}
		if len(parts) == 1 {
			return parts[0], nil
		}
		return Selector{Kind: SelectList, Parts: parts}, nil
	case ValueAll:
		return All, nil
	case ValueWord, ValueString:
		name := util.NormalizeName(v.Text)
		if name == "" {
			return Selector{}, swerr.Invalid(v.Pos, "selector", "empty name")
		}
		return Selector{Kind: SelectName, Name: name}, nil
	}
	return Selector{}, swerr.Invalid(v.Pos, "selector", fmt.Sprintf("expected an index, range, name, @group or *, got %s", v.Kind))
}

func rangeBounds(v Value) (int, int, error) {
	lo, errLo := strconv.Atoi(v.Lo)
	hi, errHi := strconv.Atoi(v.Hi)
	if errLo != nil || errHi != nil {
		return 0, 0, swerr.Invalid(v.Pos, "selector", fmt.Sprintf("range %s needs integer bounds", v))
	}
	if lo > hi {
		return 0, 0, swerr.Invalid(v.Pos, "selector", fmt.Sprintf("range %s is reversed", v))
	}
	return lo, hi, nil
}

// positionArg accepts a rank or the words start and end.
func positionArg(v Value) (int, error) {
	if v.Kind == ValueWord {
		switch strings.ToLower(v.Text) {
		case "start":
			return 0, nil
		case "end":
			return PositionEnd, nil
		}
	}
	return intArg(v, "position")
}

func intArg(v Value, field string) (int, error) {
	if v.Kind != ValueNumber {
		return 0, swerr.Invalid(v.Pos, field, fmt.Sprintf("expected a whole number, got %s", v.Kind))
	}
	n, err := strconv.Atoi(v.Text)
	if err != nil {
		return 0, swerr.Invalid(v.Pos, field, fmt.Sprintf("%s is not a whole number", v.Text))
	}
	return n, nil
}

func floatArg(v Value, field string, lo, hi float64) (float64, error) {
	if v.Kind != ValueNumber {
		return 0, swerr.Invalid(v.Pos, field, fmt.Sprintf("expected a number, got %s", v.Kind))
	}
	f, err := strconv.ParseFloat(v.Text, 64)
	if err != nil || math.IsNaN(f) {
		return 0, swerr.Invalid(v.Pos, field, fmt.Sprintf("%s is not a number", v.Text))
	}
	if f < lo || f > hi {
		return 0, swerr.Invalid(v.Pos, field, fmt.Sprintf("%s out of range %g-%g", v.Text, lo, hi))
	}
	return f, nil
}

func pathArg(v Value) (string, error) {
	switch v.Kind {
	case ValueString, ValueWord, ValuePath:
		if strings.TrimSpace(v.Text) == "" {
			return "", swerr.Invalid(v.Pos, "path", "empty path")
		}
		return v.Text, nil
	}
	return "", swerr.Invalid(v.Pos, "path", fmt.Sprintf("expected a path, got %s", v.Kind))
}
