// Package diagnostics turns any error the pipeline can produce into
// the single user-facing line format spec.md §7 requires:
// "<path>:<line>:<col>: <message>", or a plain message when no
// location applies (a missing source file). It is the one place in
// the repository allowed to know about every typed error every other
// package exports — matching the teacher's pattern of a single
// collection point translating many package-specific error kinds into
// one user-facing shape (SPEC_FULL.md §7).
package diagnostics

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/anqurvanillapy/lyzh/internal/core"
)

// Located is implemented by every positioned error this tool
// produces: lexer.Error, parser.Error, resolve.UnresolvedVariableError,
// resolve.DuplicateNameError, elaborate.TypeMismatchError,
// elaborate.NotAFunctionError and elaborate.NotAFunctionTypeError all
// satisfy it, so this package never imports any of those packages
// directly.
type Located interface {
	error
	Location() core.Loc
	// Reason returns the error's message with any location prefix
	// already stripped, so Format can prepend its own path-qualified
	// prefix without double-reporting the position.
	Reason() string
}

// Format renders err as the exact line spec.md §6/§7 requires for
// path. A missing source file is special-cased to the plain form
// ("<message>", no path prefix) since the path itself is the thing
// that's wrong; internally-impossible conditions never reach here —
// they panic instead (spec §7).
func Format(path string, err error) string {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return err.Error()
	}
	if loc, ok := err.(Located); ok {
		return fmt.Sprintf("%s:%s: %s", path, loc.Location(), loc.Reason())
	}
	return err.Error()
}

// Colorize wraps a diagnostic line in red, the way
// internal/evaluator/builtins_term.go's detectColorLevel in the
// teacher repo decides whether to emit ANSI escapes at all: only when
// w is a real terminal (isatty.IsTerminal or IsCygwinTerminal) and
// NO_COLOR (https://no-color.org) is unset. It never changes the
// line's text, only whether it is wrapped — the exact message
// produced by Format is unaffected by whether color is applied.
func Colorize(s string, w *os.File) string {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return s
	}
	if !isatty.IsTerminal(w.Fd()) && !isatty.IsCygwinTerminal(w.Fd()) {
		return s
	}
	return "\033[31m" + s + "\033[0m"
}
