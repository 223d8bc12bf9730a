// Command lyzh type-checks a single source file and prints its
// elaborated definitions. See spec.md §6 for the exact CLI contract:
// one positional FILE argument, exit 0 on success (printing the
// elaborated definitions), exit 1 on failure (printing one diagnostic
// line to stderr), and a usage error when the argument is missing.
// Grounded on original_source/lyzh/__main__.py's shape (read file,
// run the pipeline, fatal on the first error) and on the teacher's
// cmd/funxy/main.go for how a CLI entry point in this codebase's
// idiom is structured — a thin main wiring flags/os.Args to the real
// work done by internal packages, not the work itself.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anqurvanillapy/lyzh/internal/config"
	"github.com/anqurvanillapy/lyzh/internal/diagnostics"
	"github.com/anqurvanillapy/lyzh/internal/pipeline"
	"github.com/anqurvanillapy/lyzh/internal/printer"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	prog := filepath.Base(args[0])
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s FILE\n", prog)
		return 1
	}
	if args[1] == "-version" || args[1] == "--version" {
		fmt.Println(config.Version)
		return 0
	}
	path := args[1]
	if !strings.HasSuffix(path, config.SourceFileExt) {
		fmt.Fprintf(os.Stderr, "%s: not a %s source file\n", path, config.SourceFileExt)
		return 1
	}

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, diagnostics.Colorize(diagnostics.Format(path, err), os.Stderr))
		return 1
	}

	defs, err := pipeline.Run(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, diagnostics.Colorize(diagnostics.Format(path, err), os.Stderr))
		return 1
	}

	fmt.Println(printer.Defs(defs))
	return 0
}
