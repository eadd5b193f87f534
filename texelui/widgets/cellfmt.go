// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/cellfmt.go
// Summary: Syntax highlighting for code columns.

package widgets

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"
)

const defaultCodeStyle = "catppuccin-mocha"

// LexerAuto asks the formatter to detect the language from the cell text.
const LexerAuto = "auto"

// codeStyle resolves a style name to a Chroma style, falling back to the default.
func codeStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultCodeStyle
	}
	return styles.Get(name)
}

// formatCell returns the styled runes for a cell. Plain columns and text
// no lexer recognises keep the base style.
func formatCell(text, lexerName string, style *chroma.Style, base tcell.Style) []glyph {
	if lexerName == "" || text == "" || style == nil {
		return plainGlyphs(text, base)
	}
	lexer := cellLexer(lexerName, text)
	if lexer == nil {
		return plainGlyphs(text, base)
	}
	tokens, err := chroma.Tokenise(chroma.Coalesce(lexer), nil, text)
	if err != nil {
		return plainGlyphs(text, base)
	}

	baseColour := style.Get(chroma.Text).Colour
	out := make([]glyph, 0, len(text))
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		st := tokenStyle(style.Get(tok.Type), baseColour, base)
		for _, r := range tok.Value {
			out = append(out, glyph{r: r, style: st})
		}
	}
	return out
}

// cellLexer picks a lexer by name, or by language detection for LexerAuto.
func cellLexer(name, text string) chroma.Lexer {
	if name != LexerAuto {
		return lexers.Get(name)
	}
	if lang := detectLanguage(text); lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	return lexers.Analyse(text)
}

// detectCandidates bounds the classifier to languages commonly stored in
// code columns.
var detectCandidates = []string{
	"Go", "Python", "JavaScript", "TypeScript", "Rust", "C", "Java",
	"Shell", "SQL", "JSON", "YAML", "Markdown",
}

// detectLanguage honours modelines and shebangs first, then falls back to
// the content classifier.
func detectLanguage(text string) string {
	content := []byte(text)
	if lang := enry.GetLanguage("", content); lang != "" {
		return lang
	}
	if langs := enry.GetLanguagesByClassifier("", content, detectCandidates); len(langs) > 0 {
		return langs[0]
	}
	return ""
}

// tokenStyle overlays a token's colour and attributes on the base style.
// Tokens coloured like plain text keep the base foreground.
func tokenStyle(entry chroma.StyleEntry, baseColour chroma.Colour, base tcell.Style) tcell.Style {
	st := base
	if entry.Colour.IsSet() && entry.Colour != baseColour {
		st = st.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}
