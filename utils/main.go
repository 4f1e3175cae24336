// utils is a package with output related utility functions.

package utils

import (
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"
)

// Verbose makes commands more talkative. It is set by the --verbose flag.
var Verbose bool

// DefaultColumns is used when the output is not a terminal.
const DefaultColumns = 80

// Debugf logs a message only in verbose mode.
func Debugf(format string, v ...any) {
	if Verbose {
		log.Printf(format, v...)
	}
}

// Repr is a function that formats bytes as a bytes literal, e.g. b'OK\x00\xff'.
// Printable ASCII is kept as is, tab, newline and carriage return are escaped by name,
// everything else is written as a \xNN escape.
func Repr(b []byte) string {
	var sb strings.Builder
	quote := byte('\'')

	if strings.IndexByte(string(b), '\'') >= 0 && strings.IndexByte(string(b), '"') < 0 {
		quote = '"'
	}

	sb.WriteString("b")
	sb.WriteByte(quote)

	for _, c := range b {
		switch {
		case c == quote || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteByte(c)
		}
	}

	sb.WriteByte(quote)
	return sb.String()
}

// Columns returns the width of the terminal attached to stdout or DefaultColumns.
func Columns() int {
	fd := int(os.Stdout.Fd())

	if !term.IsTerminal(fd) {
		return DefaultColumns
	}

	width, _, err := term.GetSize(fd)

	if err != nil || width <= 0 {
		return DefaultColumns
	}
	return width
}
