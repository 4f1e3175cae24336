package sockets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"

	"github.com/forestvpn/ledctl/utils"
	"github.com/getsentry/sentry-go"
)

// Handler serves a single accepted connection. The connection is closed when it returns.
type Handler func(conn net.Conn)

// Serve accepts connections on listener and runs handler for each of them in its own goroutine.
// It returns nil once ctx is cancelled.
func Serve(ctx context.Context, listener net.Listener, handler Handler) error {
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	utils.Debugf("Listening on %s", listener.Addr())

	for {
		conn, err := listener.Accept()

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			if errors.Is(err, net.ErrClosed) {
				return err
			}

			log.Print(err)
			sentry.CaptureException(err)
			continue
		}

		utils.Debugf("Incoming connection from %s", conn.RemoteAddr())

		go func() {
			defer conn.Close()
			handler(conn)
		}()
	}
}

// Reply is a Handler factory. The handler reads one chunk of at most readSize bytes,
// prints it to out and answers with reply.
func Reply(out io.Writer, readSize int, reply []byte) Handler {
	return func(conn net.Conn) {
		remoteAddr := conn.RemoteAddr()
		buf := make([]byte, readSize)
		n, err := conn.Read(buf)

		if err != nil && !errors.Is(err, io.EOF) {
			log.Print(err)
			sentry.CaptureException(err)
			return
		}

		fmt.Fprintf(out, "%s: %s\n", remoteAddr, utils.Repr(buf[:n]))

		if _, err = conn.Write(reply); err != nil {
			log.Print(err)
			sentry.CaptureException(err)
			return
		}

		utils.Debugf("Responded %s to %s", utils.Repr(reply), remoteAddr)
	}
}
