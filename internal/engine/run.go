package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/script"
)

// Report summarizes a script run. Results holds one entry per committed
// command, in order.
type Report struct {
	Committed int
	Results   []Result
}

// ScriptError is the failure that stopped a script. Commands before it stay
// applied and recorded in history.
type ScriptError struct {
	Pos       swerr.Pos
	Verb      string
	Committed int
	Err       error
}

func (e *ScriptError) Error() string {
	msg := e.Err.Error()
	if _, has := swerr.PosOf(e.Err); !has && !e.Pos.IsZero() {
		msg = fmt.Sprintf("%s: %s", e.Pos, msg)
	}
	return fmt.Sprintf("%s (%s committed)", msg, plural(e.Committed, "command"))
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Run executes a script line by line: parse, validate, resolve, apply,
// record. It stops at the first failure and returns it as a *ScriptError.
// Cancellation is honored between commands, never inside one.
func (e *Engine) Run(ctx context.Context, filename, src string) (*Report, error) {
	rep := &Report{}
	p := script.NewParser(filename, src)
	for {
		if err := ctx.Err(); err != nil {
			return rep, &ScriptError{Committed: rep.Committed, Err: err}
		}

		st, err := p.Next()
		if errors.Is(err, io.EOF) {
			return rep, nil
		}
		if err != nil {
			pos, _ := swerr.PosOf(err)
			return rep, &ScriptError{Pos: pos, Committed: rep.Committed, Err: err}
		}

		cmd, err := script.Validate(st)
		if err != nil {
			return rep, &ScriptError{Pos: st.Pos, Verb: st.Verb, Committed: rep.Committed, Err: err}
		}

		res, err := e.Exec(cmd)
		if err != nil {
			e.logger.Debug("command failed", "verb", st.Verb, "pos", st.Pos.String(), "error", err)
			return rep, &ScriptError{Pos: st.Pos, Verb: st.Verb, Committed: rep.Committed, Err: err}
		}
		rep.Committed++
		rep.Results = append(rep.Results, res)
	}
}

// Check parses and validates a script without executing it. It returns the
// number of valid commands before the first problem.
func Check(filename, src string) (int, error) {
	p := script.NewParser(filename, src)
	n := 0
	for {
		st, err := p.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if _, err := script.Validate(st); err != nil {
			return n, err
		}
		n++
	}
}
