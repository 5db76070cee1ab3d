package cpp

import (
	"fmt"
	"strings"
)

// codeWriter accumulates indented C++ lines.
type codeWriter struct {
	sb     strings.Builder
	indent int
}

func (w *codeWriter) line(format string, args ...interface{}) {
	if format == "" {
		w.sb.WriteString("\n")
		return
	}
	w.sb.WriteString(strings.Repeat("  ", w.indent))
	if len(args) > 0 {
		w.sb.WriteString(fmt.Sprintf(format, args...))
	} else {
		w.sb.WriteString(format)
	}
	w.sb.WriteString("\n")
}

func (w *codeWriter) blank() { w.line("") }

// open writes a line ending a block opener and indents.
func (w *codeWriter) open(format string, args ...interface{}) {
	w.line(format, args...)
	w.indent++
}

// close dedents and writes the closing line.
func (w *codeWriter) close(format string, args ...interface{}) {
	w.indent--
	w.line(format, args...)
}

func (w *codeWriter) String() string { return w.sb.String() }
