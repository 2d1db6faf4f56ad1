// Package cgi runs an application under the Gemini CGI gateway protocol:
// one process per request, meta-variables in the environment, the response
// on standard output.
//
// Standard output carries the wire response, so applications must log to
// stderr only.
package cgi

import (
	"context"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/gemgate/gemgate/app"
	"github.com/gemgate/gemgate/request"
)

// Run serves exactly one request from the process environment and standard
// streams, then returns. The process should exit promptly afterwards, since
// the gateway holds the client connection open until it does.
func Run(h app.Handler) {
	if err := RunWith(context.Background(), os.Getenv, os.Stdin, os.Stdout, h); err != nil {
		log.Println("cgi:", err)
		os.Exit(1)
	}
}

// RunWith reads one request from getenv and stdin, dispatches it, and
// writes a single response to stdout. A request that cannot be parsed is
// answered with a failure response rather than an empty stdout, because the
// gateway expects one response per invocation. Only write failures are
// returned.
func RunWith(ctx context.Context, getenv request.Getenv, stdin io.Reader, stdout io.Writer, h app.Handler) error {
	req, err := request.FromEnv(getenv)
	if err != nil {
		log.Println("cgi: bad request:", err)
		return app.ErrorResponse(err).Write(stdout)
	}

	// Gemini requests rarely have a body, but a gateway that forwards one
	// announces it with CONTENT_LENGTH.
	if n, err := strconv.ParseInt(getenv("CONTENT_LENGTH"), 10, 64); err == nil && n > 0 {
		req.Body = io.LimitReader(stdin, n)
	}

	return app.Dispatch(ctx, h, req).Write(stdout)
}
