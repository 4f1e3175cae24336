// coder is a package that packs a seven-field matrix command into a single 32-bit message and back.
package coder

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Arity is the number of fields every command carries.
const Arity = 7

var (
	// ErrFieldRange is returned when a command field does not fit into its bit width.
	ErrFieldRange = errors.New("field out of range")
	// ErrLayout is returned for a layout that cannot describe a 32-bit message.
	ErrLayout = errors.New("invalid layout")
)

// Command is an ordered sequence of exactly seven integers as supplied on the command line.
type Command [Arity]int

// Layout holds the bit width of every command field.
// The first field occupies the most significant bits of the message.
type Layout [Arity]uint

// DefaultLayout is used by Encode and Decode.
var DefaultLayout = Layout{4, 4, 4, 5, 5, 5, 5}

// ParseLayout reads a comma separated list of widths, e.g. "4,4,4,5,5,5,5".
func ParseLayout(s string) (Layout, error) {
	var layout Layout
	parts := strings.Split(s, ",")

	if len(parts) != Arity {
		return layout, fmt.Errorf("%w: %d widths; want %d", ErrLayout, len(parts), Arity)
	}

	for i, p := range parts {
		w, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)

		if err != nil {
			return layout, fmt.Errorf("%w: width %d: %s", ErrLayout, i, err)
		}

		layout[i] = uint(w)
	}

	return layout, layout.Validate()
}

// Validate checks that every width is positive and that the message fits into 32 bits.
func (l Layout) Validate() error {
	if l.Bits() > 32 {
		return fmt.Errorf("%w: %d bits; want <= 32", ErrLayout, l.Bits())
	}

	for i, w := range l {
		if w == 0 {
			return fmt.Errorf("%w: width %d is zero", ErrLayout, i)
		}
	}
	return nil
}

// Bits is the total width of the message.
func (l Layout) Bits() uint {
	var n uint

	for _, w := range l {
		n += w
	}
	return n
}

func (l Layout) String() string {
	widths := make([]string, len(l))

	for i, w := range l {
		widths[i] = strconv.FormatUint(uint64(w), 10)
	}
	return strings.Join(widths, ",")
}

// Encode packs cmd into a message.
// Each field must satisfy 0 <= field < 2^width, otherwise ErrFieldRange is returned.
func (l Layout) Encode(cmd Command) (uint32, error) {
	if err := l.Validate(); err != nil {
		return 0, err
	}

	var msg uint32

	for i, field := range cmd {
		w := l[i]

		if field < 0 || uint64(field) >= 1<<w {
			return 0, fmt.Errorf("%w: field %d is %d; want 0..%d", ErrFieldRange, i, field, uint64(1)<<w-1)
		}

		msg = msg<<w | uint32(field)
	}

	return msg, nil
}

// Decode unpacks a message into its command fields.
// Bits above Layout.Bits are ignored.
func (l Layout) Decode(msg uint32) Command {
	var cmd Command

	for i := Arity - 1; i >= 0; i-- {
		w := l[i]
		cmd[i] = int(msg & (1<<w - 1))
		msg >>= w
	}

	return cmd
}

// Encode packs seven fields using DefaultLayout.
func Encode(a, b, c, d, e, f, g int) (uint32, error) {
	return DefaultLayout.Encode(Command{a, b, c, d, e, f, g})
}

// Decode unpacks a message using DefaultLayout.
func Decode(msg uint32) Command {
	return DefaultLayout.Decode(msg)
}

// Message serializes msg as 4 bytes big-endian and duplicates it.
func Message(msg uint32) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint32(b, msg)
	copy(b[4:], b[:4])
	return b
}
