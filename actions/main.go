// actions is a package containing the functions to use as CLI Actions.
// See https://cli.urfave.org/v2/ for more information.

package actions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"github.com/forestvpn/ledctl/coder"
	"github.com/forestvpn/ledctl/config"
	"github.com/forestvpn/ledctl/sockets"
	"github.com/forestvpn/ledctl/utils"
)

// ErrArity is returned when the command line does not carry exactly seven command fields.
var ErrArity = fmt.Errorf("exactly %d command integers required", coder.Arity)

// sessionKeys is the order the last run is displayed in.
var sessionKeys = []string{"id", "host", "port", "command", "encoded", "response"}

// ParseCommand converts command line arguments into a Command.
func ParseCommand(args []string) (coder.Command, error) {
	var cmd coder.Command

	if len(args) != coder.Arity {
		return cmd, fmt.Errorf("%w, got %d", ErrArity, len(args))
	}

	for i, arg := range args {
		v, err := strconv.Atoi(arg)

		if err != nil {
			return cmd, fmt.Errorf("command integer %d: %q is not an integer", i, arg)
		}

		cmd[i] = v
	}

	return cmd, nil
}

// ParsePort converts a port argument into a TCP port number.
func ParsePort(arg string) (int, error) {
	port, err := strconv.Atoi(arg)

	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("invalid port: %q", arg)
	}
	return port, nil
}

// Send is a function that probes the server at host:port with cmd.
// The run is recorded into config.SessionFile afterwards.
func Send(ctx context.Context, out io.Writer, cfg config.Config, host string, port int, cmd coder.Command, sendEncoded bool) error {
	id := uuid.New()

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("run_id", id.String())
	})

	runner := sockets.Runner{Out: out, Layout: cfg.Layout, ReadSize: cfg.ReadSize, SendEncoded: sendEncoded}
	result, err := runner.Send(ctx, host, port, cmd)

	if err != nil {
		return err
	}

	session := map[string]string{
		"id":       id.String(),
		"host":     host,
		"port":     strconv.Itoa(port),
		"command":  fmt.Sprint(cmd[:]),
		"encoded":  strconv.FormatUint(uint64(result.Encoded), 10),
		"response": fmt.Sprintf("% x", result.Response),
	}
	data, err := json.MarshalIndent(session, "", "    ")

	if err == nil {
		err = config.JsonDump(data, config.SessionFile)
	}

	if err != nil {
		log.Printf("unable to save session: %s", err)
		sentry.CaptureException(err)
	}

	return nil
}

// Encode is a function that prints the message cmd encodes to without connecting anywhere.
func Encode(out io.Writer, layout coder.Layout, cmd coder.Command) error {
	encoded, err := layout.Encode(cmd)

	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Encoded %d (%#08x)\n", encoded, encoded)
	fmt.Fprintln(out, utils.Repr(coder.Message(encoded)))
	return nil
}

// Decode is a function that prints the command fields packed into value as a table.
// value may be decimal, hexadecimal (0x) or binary (0b).
func Decode(out io.Writer, layout coder.Layout, value string) error {
	msg, err := strconv.ParseUint(value, 0, 32)

	if err != nil {
		return fmt.Errorf("invalid message %q: %w", value, err)
	}

	cmd := layout.Decode(uint32(msg))
	var data [][]string

	for i, field := range cmd {
		data = append(data, []string{strconv.Itoa(i), strconv.FormatUint(uint64(layout[i]), 10), strconv.Itoa(field)})
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Field", "Bits", "Value"})
	table.SetBorder(false)
	table.AppendBulk(data)
	table.Render()
	return nil
}

// ShowLast is a function that prints the session saved by the last successful Send.
func ShowLast(out io.Writer, sessionFile string) error {
	session, err := config.JsonLoad(sessionFile)

	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(out, "No runs recorded yet.")
		color.New(color.Faint).Fprintln(out, "Try 'ledctl <ip> <port> <c1> ... <c7>'")
		return nil
	}

	if err != nil {
		return err
	}

	var data [][]string

	for _, key := range sessionKeys {
		data = append(data, []string{key, session[key]})
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Key", "Value"})
	table.SetBorder(false)
	table.SetColWidth(utils.Columns() - 16)
	table.AppendBulk(data)
	table.Render()
	return nil
}

// Listen is a function that runs a probe sink on port until ctx is done.
// Every connection gets one chunk read and reply written back.
func Listen(ctx context.Context, out io.Writer, port int, readSize int, reply string) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))

	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(out, "Listening on %s\n", listener.Addr())
	return sockets.Serve(ctx, listener, sockets.Reply(out, readSize, []byte(reply)))
}
