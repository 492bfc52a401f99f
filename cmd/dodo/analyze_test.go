package main

import (
	"strings"
	"testing"

	"github.com/dodolang/dodo/dodo"
)

func analyzeSource(t *testing.T, source string) []lintWarning {
	t.Helper()
	program, err := dodo.Parse(source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return analyzeProgram(program)
}

func TestAnalyzeProgramWarnings(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
		line   int
	}{
		{"undeclared assignment", "x = 5\n", "assignment to undeclared variable x is ignored", 1},
		{"invalid target", "scalar x\n1 + 2 = x\n", "invalid assignment target: statement is skipped", 2},
		{"matrix rows", "matrix m[3, 2]\n", "the row count 3 is ignored", 1},
		{"redeclaration", "scalar x\nvector x[2]\n", "redeclaration of x resets its value", 2},
		{"division by zero", "scalar x\nprint x / 0\n", "division by zero", 2},
		{"vector minus", "vector v[2]\nvector w[2]\nprint v - w\n", "vector - vector always evaluates to 0", 3},
		{"negated vector", "vector v[2]\nprint -v\n", "negating a vector always evaluates to 0", 2},
		{"bang", "print !1\n", "!1 always evaluates to 0", 1},
		{"call", "print f(1)\n", "call to f is never evaluated", 1},
		{"empty vector", "vector v[0]\nprint v\n", "variable v holds no elements", 2},
		{"matrix not stored", "vector v[2]\nv = {{1, 2}}\n", "matrix value is not stored in v", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			warnings := analyzeSource(t, tc.source)
			for _, w := range warnings {
				if strings.Contains(w.Message, tc.want) {
					if w.Pos.Line != tc.line {
						t.Fatalf("expected line %d, got %d", tc.line, w.Pos.Line)
					}
					return
				}
			}
			t.Fatalf("expected warning %q, got %#v", tc.want, warnings)
		})
	}
}

func TestAnalyzeProgramTracksAssignedShapes(t *testing.T) {
	// x starts as a scalar but holds a vector after the assignment, so
	// x + x is no longer defined.
	warnings := analyzeSource(t, "scalar x\nprint x + x\nx = {1, 2}\nprint x + x\n")
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %#v", warnings)
	}
	if warnings[0].Pos.Line != 4 {
		t.Fatalf("expected warning on line 4, got %d", warnings[0].Pos.Line)
	}
}

func TestAnalyzeProgramCleanScript(t *testing.T) {
	source := "# totals\nscalar x\nvector y[3]\ny = {1, 2, 3}\nx = y * y\nprint x\nprint 6 / y\n"
	if warnings := analyzeSource(t, source); len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %#v", warnings)
	}
}

func TestAnalyzeProgramSortsByPosition(t *testing.T) {
	warnings := analyzeSource(t, "print b\nprint a\n")
	if len(warnings) != 2 {
		t.Fatalf("expected two warnings, got %#v", warnings)
	}
	if warnings[0].Pos.Line != 1 || warnings[1].Pos.Line != 2 {
		t.Fatalf("warnings out of order: %#v", warnings)
	}
}
