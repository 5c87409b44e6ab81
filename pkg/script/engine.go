// Package script provides the Lisp scripting engine for jade drawings.
// It wraps zygomys in a sandboxed environment; builtins construct cold
// commands through the command builder and push them on an undo stack,
// so scripted edits follow the same reversible path as interactive ones.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/jaallen85/jade-py-sub000/pkg/command"
	"github.com/jaallen85/jade-py-sub000/pkg/scene"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Session is the drawing state a script evaluation produced: the page
// with its items and the undo stack holding every scripted edit.
type Session struct {
	Page  *scene.Page
	Stack *command.Stack
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use;
// each call to Evaluate creates a fresh sandboxed environment for
// determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	pageName string
	grid     float64
}

// NewEngine creates an engine whose evaluations start from an empty page
// with the given name and grid spacing.
func NewEngine(pageName string, grid float64) *Engine {
	return &Engine{pageName: pageName, grid: grid}
}

// Evaluate runs a drawing script and returns the resulting session.
//
// Return semantics:
//   - On success: session + nil errors + nil error
//   - On parse/eval failure: nil session + eval errors + nil error
//   - On fatal failure (timeout, panic): nil + nil + error
func (e *Engine) Evaluate(source string) (*Session, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		s, evalErrs, err := e.evaluate(source)
		ch <- evalResult{session: s, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Session, []EvalError, error) {
	page := scene.NewPage(e.pageName, e.grid)
	s := &Session{Page: page, Stack: command.NewStack()}

	// Empty source is a valid program that produces an empty drawing.
	if strings.TrimSpace(source) == "" {
		return s, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or
	// syscalls; only the registered builtins touch the outside world.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, s)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	return s, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalError values,
// extracting line numbers from the message where possible.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
