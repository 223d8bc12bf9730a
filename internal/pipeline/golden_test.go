package pipeline_test

import (
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/anqurvanillapy/lyzh/internal/diagnostics"
	"github.com/anqurvanillapy/lyzh/internal/pipeline"
	"github.com/anqurvanillapy/lyzh/internal/printer"
)

// TestGolden runs the end-to-end scenarios from spec.md §8 as txtar
// archives: an "in" file holding the source, and either an "out" file
// (the expected printer.Defs output on success) or an "err" file (the
// expected diagnostics.Format line on failure). Grounded on
// cue-lang-cue's internal/cuetxtar, trimmed to this repo's single
// archive-in/archive-out shape since there is no multi-file build
// graph here to load.
func TestGolden(t *testing.T) {
	matches, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatalf("globbing testdata: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("no txtar fixtures found under testdata/")
	}

	for _, path := range matches {
		path := path
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			a, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatalf("parsing txtar: %v", err)
			}

			src, ok := archiveFile(a, "in")
			if !ok {
				t.Fatal("fixture has no 'in' file")
			}

			defs, runErr := pipeline.Run(src)

			if want, ok := archiveFile(a, "err"); ok {
				if runErr == nil {
					t.Fatalf("expected an error, got success printing:\n%s", printer.Defs(defs))
				}
				got := diagnostics.Format("in", runErr)
				if strings.TrimRight(got, "\n") != strings.TrimRight(want, "\n") {
					t.Fatalf("error = %q, want %q", got, want)
				}
				return
			}

			want, ok := archiveFile(a, "out")
			if !ok {
				t.Fatal("fixture has neither an 'out' nor an 'err' file")
			}
			if runErr != nil {
				t.Fatalf("unexpected error: %v", runErr)
			}
			got := printer.Defs(defs) + "\n"
			if got != want {
				t.Fatalf("output =\n%s\nwant\n%s", got, want)
			}
		})
	}
}

func archiveFile(a *txtar.Archive, name string) (string, bool) {
	for _, f := range a.Files {
		if f.Name == name {
			return string(f.Data), true
		}
	}
	return "", false
}
