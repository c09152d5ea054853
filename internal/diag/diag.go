// ============================================================================
// quill - Compiler Front End
// ============================================================================
//
// Package:     diag
// Description: Renders parse failures against their source text
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package diag turns syntax errors into compiler-style diagnostics:
//
//	main.ql:2:5: error: expected ';', found end of file
//	  2 | x := 1
//	    |       ^
package diag

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	mdwerror "github.com/msto63/quill/foundation/core/error"
	"github.com/msto63/quill/foundation/lang/parser"
)

// Diagnostic is a located message ready for rendering
type Diagnostic struct {
	Path    string
	Line    int // 1-based, 0 when unknown
	Column  int // 1-based, 0 when unknown
	Width   int // Number of columns to underline
	Message string
	Code    mdwerror.Code
}

// FromError extracts a diagnostic from err. Syntax errors keep their
// location; any other error only carries the message and, for foundation
// errors, the path and code.
func FromError(err error) Diagnostic {
	if se, ok := parser.AsSyntaxError(err); ok {
		return Diagnostic{
			Path:    se.Path,
			Line:    se.Line,
			Column:  se.Column,
			Width:   se.Token.Length,
			Message: se.Message,
			Code:    se.Code(),
		}
	}

	d := Diagnostic{Message: err.Error(), Code: mdwerror.GetCode(err)}
	if fe, ok := mdwerror.As(err); ok {
		d.Path = fe.Path()
	}
	return d
}

// Location renders path:line:col, omitting the parts that are unknown
func (d Diagnostic) Location() string {
	var parts []string
	if d.Path != "" {
		parts = append(parts, d.Path)
	}
	if d.Line > 0 {
		parts = append(parts, strconv.Itoa(d.Line))
		if d.Column > 0 {
			parts = append(parts, strconv.Itoa(d.Column))
		}
	}
	return strings.Join(parts, ":")
}

// Renderer formats diagnostics
type Renderer struct {
	styles Styles
}

// NewRenderer creates a renderer, coloured or plain
func NewRenderer(color bool) *Renderer {
	if color {
		return &Renderer{styles: ColorStyles()}
	}
	return &Renderer{styles: PlainStyles()}
}

// Render formats err against source. The source excerpt is omitted when
// the error has no line or the line does not exist in source.
func (r *Renderer) Render(err error, source string) string {
	return r.RenderDiagnostic(FromError(err), source)
}

// RenderDiagnostic formats a diagnostic against source
func (r *Renderer) RenderDiagnostic(d Diagnostic, source string) string {
	var b strings.Builder

	if loc := d.Location(); loc != "" {
		b.WriteString(r.styles.Location.Render(loc + ":"))
		b.WriteString(" ")
	}
	b.WriteString(r.styles.Severity.Render("error:"))
	b.WriteString(" ")
	b.WriteString(r.styles.Message.Render(d.Message))
	b.WriteString("\n")

	text, ok := sourceLine(source, d.Line)
	if !ok {
		return b.String()
	}

	number := strconv.Itoa(d.Line)
	blank := strings.Repeat(" ", len(number))
	fmt.Fprintf(&b, "%s %s\n", r.styles.Gutter.Render("  "+number+" |"), text)
	fmt.Fprintf(&b, "%s %s%s\n",
		r.styles.Gutter.Render("  "+blank+" |"),
		caretPadding(text, d.Column),
		r.styles.Caret.Render(strings.Repeat("^", caretWidth(text, d.Column, d.Width))),
	)
	return b.String()
}

// Fprint writes the rendered diagnostic to w
func (r *Renderer) Fprint(w io.Writer, err error, source string) error {
	_, werr := io.WriteString(w, r.Render(err, source))
	return werr
}

// sourceLine returns line n (1-based) without its terminator
func sourceLine(source string, n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if n > len(lines) {
		return "", false
	}
	return strings.TrimSuffix(lines[n-1], "\r"), true
}

// caretPadding returns the whitespace that puts the caret under column.
// Tabs in the line are copied so the caret lines up in any tab width.
func caretPadding(line string, column int) string {
	var pad strings.Builder
	i := 1
	for _, r := range line {
		if i >= column {
			break
		}
		if r == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteRune(' ')
		}
		i++
	}
	for ; i < column; i++ {
		pad.WriteRune(' ')
	}
	return pad.String()
}

// caretWidth clamps the underline to the rest of the line, minimum one
func caretWidth(line string, column, width int) int {
	rest := len([]rune(line)) - column + 1
	if width > rest {
		width = rest
	}
	if width < 1 {
		width = 1
	}
	return width
}
