package widgets

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
)

func lines(gl [][]glyph) []string {
	out := make([]string, len(gl))
	for i, line := range gl {
		rs := make([]rune, len(line))
		for j, g := range line {
			rs[j] = g.r
		}
		out[i] = string(rs)
	}
	return out
}

func TestWrapGlyphs(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"fits", "abc", 5, []string{"abc"}},
		{"wraps", "abcdef", 4, []string{"abcd", "ef"}},
		{"newlines", "a\n\nb", 5, []string{"a", "", "b"}},
		{"empty", "", 3, []string{""}},
		{"wide runes never split", "日本語", 3, []string{"日", "本", "語"}},
		{"zero width", "ab", 0, []string{"a", "b"}},
		{"tabs become spaces", "a\tb", 5, []string{"a b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lines(wrapGlyphs(plainGlyphs(tt.in, tcell.StyleDefault), tt.width))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("wrap mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLineMetrics(t *testing.T) {
	if got := lineCount("hello world", 5); got != 3 {
		t.Fatalf("lineCount = %d, want 3", got)
	}
	if got := longestLine("ab\n日本語\nc"); got != 6 {
		t.Fatalf("longestLine = %d, want 6", got)
	}
}

func TestFormatCellHighlightsCode(t *testing.T) {
	base := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	src := "func main() {}"
	out := formatCell(src, "go", codeStyle(""), base)
	if got := lines([][]glyph{out}); got[0] != src {
		t.Fatalf("highlighting must preserve text, got %q", got[0])
	}
	fg, _, _ := out[0].style.Decompose()
	if fg == tcell.ColorWhite {
		t.Fatalf("keyword should be coloured by the code style")
	}
}

func TestFormatCellPlainFallbacks(t *testing.T) {
	base := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	for _, lexer := range []string{"", "no-such-language"} {
		out := formatCell("x := 1", lexer, codeStyle("catppuccin-mocha"), base)
		for _, g := range out {
			if g.style != base {
				t.Fatalf("lexer %q: expected plain styling", lexer)
			}
		}
	}
	src := "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(1)\n}\n"
	if got := lines([][]glyph{formatCell(src, LexerAuto, codeStyle(""), base)}); got[0] != src {
		t.Fatalf("detected highlighting must preserve text")
	}
	if codeStyle("missing-style") == nil {
		t.Fatalf("unknown styles should fall back to a default")
	}
}

func TestDetectLanguage(t *testing.T) {
	if got := detectLanguage("#!/bin/sh\necho hi\n"); got != "Shell" {
		t.Fatalf("shebang detection = %q, want Shell", got)
	}
	if got := detectLanguage("package main\n\nfunc main() {\n}\n"); got == "" {
		t.Fatalf("classifier should pick a candidate language")
	}
}
