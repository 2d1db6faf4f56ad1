// Package scgi serves an application over the SCGI gateway protocol: a
// persistent byte stream carrying netstring-framed header blocks, each
// followed by an optional body of declared length.
//
// Requests on one connection are strictly sequential. Each response is
// fully written before the next header block is read, as the protocol
// requires on a shared stream. Framing errors are connection-fatal and
// close the stream without a response; request-level errors are answered
// normally and the connection stays open.
package scgi

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gemgate/gemgate/app"
	"github.com/gemgate/gemgate/request"
	"github.com/gemgate/gemgate/response"
)

// DefaultMaxHeaderSize bounds a request's header block when Options leaves
// MaxHeaderSize unset.
const DefaultMaxHeaderSize = 16 * 1024

// Options configures an SCGI server. Limits are passed in explicitly; the
// package keeps no global state.
type Options struct {
	// Network is "tcp" or "unix". Defaults to "tcp".
	Network string
	// Address for the listener: host:port for tcp, a socket path for unix.
	Address string
	// MaxHeaderSize bounds the declared length of a request's header block.
	MaxHeaderSize int
	// Read/write deadlines applied per accepted connection. Zero means none.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server accepts SCGI connections and serves them with a single handler.
type Server struct {
	opts     Options
	handler  app.Handler
	listener net.Listener
	closed   atomic.Bool
}

// Shutdown the server.
func (s *Server) Close() error {
	s.closed.Store(true)
	return s.listener.Close()
}

// Addr returns the listener address, useful when Address was ":0".
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *Server) listen() error {
	listener, err := net.Listen(s.opts.Network, s.opts.Address)
	if err != nil {
		return err
	}
	s.listener = listener

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.closed.Load() {
				log.Println("scgi: unable to accept connection:", err)
				return err
			}
			break
		}

		if conn == nil {
			continue
		}

		if s.opts.ReadTimeout != 0 {
			conn.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout))
		}
		if s.opts.WriteTimeout != 0 {
			conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
		}

		go func() {
			defer conn.Close()
			if err := s.ServeConn(context.Background(), conn); err != nil {
				log.Println("scgi: connection closed:", err)
			}
		}()
	}
	return nil
}

// ServeConn reads request/response cycles from conn until the peer closes
// the stream or framing is lost. A clean close between frames returns nil;
// anything that leaves the stream state unknown returns the error and the
// caller closes the connection.
func (s *Server) ServeConn(ctx context.Context, conn io.ReadWriter) error {
	br := bufio.NewReader(conn)
	max := s.opts.MaxHeaderSize
	if max <= 0 {
		max = DefaultMaxHeaderSize
	}

	for {
		block, err := readNetstring(br, max)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		headers, err := parseHeaderBlock(block)
		if err != nil {
			return err
		}

		// The body always follows the header block, so it must be drained
		// even when the request itself is rejected.
		body, err := readBody(br, headers["CONTENT_LENGTH"])
		if err != nil {
			return err
		}

		var resp *response.Response
		req, err := request.FromEnv(func(key string) string { return headers[key] })
		if err != nil {
			log.Println("scgi: bad request:", err)
			resp = app.ErrorResponse(err)
		} else {
			if len(body) > 0 {
				req.Body = bytes.NewReader(body)
			}
			resp = app.Dispatch(ctx, s.handler, req)
		}

		if err := resp.Write(conn); err != nil {
			return err
		}
	}
}

// readBody consumes exactly the declared request body from the stream,
// waiting out partial reads.
func readBody(r *bufio.Reader, contentLength string) ([]byte, error) {
	if contentLength == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(contentLength, 10, 64)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: bad CONTENT_LENGTH %q", ErrFraming, contentLength)
	}
	if n == 0 {
		return nil, nil
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}

func newServer(opts Options, handler app.Handler) *Server {
	if opts.Network == "" {
		opts.Network = "tcp"
	}
	if opts.Address == "" {
		opts.Address = ":4000"
	}
	if opts.MaxHeaderSize <= 0 {
		opts.MaxHeaderSize = DefaultMaxHeaderSize
	}
	return &Server{
		opts:    opts,
		handler: handler,
	}
}

// Serve starts an SCGI server for handler with the given options.
func Serve(opts Options, handler app.Handler) (*Server, error) {
	s := newServer(opts, handler)

	errCh := make(chan error, 1)
	go func() {
		if err := s.listen(); err != nil {
			errCh <- err
		}
	}()

	// give the server a moment to start and potentially fail
	select {
	case err := <-errCh:
		return nil, err
	case <-time.After(100 * time.Millisecond):
		return s, nil
	}
}
