// sockets is a package to talk to the matrix server over a raw TCP connection.
package sockets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/forestvpn/ledctl/coder"
	"github.com/forestvpn/ledctl/config"
	"github.com/forestvpn/ledctl/utils"
)

// Sentinel is the probe payload written to the server.
var Sentinel = bytes.Repeat([]byte{0xff}, 16)

// Runner performs a single probe run and reports every step to Out.
type Runner struct {
	Out      io.Writer
	Layout   coder.Layout
	ReadSize int
	// SendEncoded makes the runner transmit the encoded message instead of Sentinel.
	SendEncoded bool
}

// Result holds what a run computed and received.
type Result struct {
	Encoded  uint32
	Message  []byte
	Response []byte
}

// NewRunner is a factory function to get a Runner with the default layout and read size.
func NewRunner(out io.Writer) Runner {
	return Runner{Out: out, Layout: coder.DefaultLayout, ReadSize: config.DefaultReadSize}
}

// Send encodes cmd, connects to host:port, writes the probe and reads one response.
// A connection closed by the server without data yields an empty response.
func (r Runner) Send(ctx context.Context, host string, port int, cmd coder.Command) (Result, error) {
	var result Result
	fmt.Fprintln(r.Out, cmd[:])
	encoded, err := r.Layout.Encode(cmd)

	if err != nil {
		return result, err
	}

	result.Encoded = encoded
	fmt.Fprintf(r.Out, "Encoded %d; Sending..\n", encoded)
	fmt.Fprintf(r.Out, "Connecting to %s:%d\n", host, port)

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))

	if err != nil {
		return result, fmt.Errorf("connect: %w", err)
	}

	defer conn.Close()
	utils.Debugf("Connected %s -> %s", conn.LocalAddr(), conn.RemoteAddr())

	result.Message = coder.Message(encoded)
	fmt.Fprintln(r.Out, utils.Repr(result.Message))

	payload := Sentinel

	if r.SendEncoded {
		payload = result.Message
	}

	n, err := conn.Write(payload)

	if err != nil {
		return result, fmt.Errorf("write: %w", err)
	}

	utils.Debugf("Wrote %d bytes: %s", n, utils.Repr(payload))
	fmt.Fprintf(r.Out, "Sent %s; Waiting for answer..\n", utils.Repr(result.Message))

	buf := make([]byte, r.ReadSize)
	n, err = conn.Read(buf)

	if err != nil && !errors.Is(err, io.EOF) {
		return result, fmt.Errorf("read: %w", err)
	}

	result.Response = buf[:n]
	fmt.Fprintln(r.Out, utils.Repr(result.Response))
	return result, nil
}
