// Package app defines the contract between transports and applications: a
// Handler that turns a Request into a Response, and the Dispatch function
// transports use to invoke one. Dispatch always yields a well-formed
// response, so a transport never has to improvise a status line of its own.
package app

import (
	"context"
	"errors"
	"log"
	"runtime/debug"

	"github.com/gemgate/gemgate/request"
	"github.com/gemgate/gemgate/response"
)

// Handler answers Gemini requests. The built-in router satisfies it, as
// does any custom single-handler application.
type Handler interface {
	Handle(ctx context.Context, r *request.Request) (*response.Response, error)
}

// HandlerFunc adapts a plain function to a Handler.
type HandlerFunc func(ctx context.Context, r *request.Request) (*response.Response, error)

func (f HandlerFunc) Handle(ctx context.Context, r *request.Request) (*response.Response, error) {
	return f(ctx, r)
}

// Dispatch invokes h and converts every failure mode into a response.
// Handler errors and panics are logged and answered with a 42; the internal
// error is never exposed to the peer.
func Dispatch(ctx context.Context, h Handler, r *request.Request) (resp *response.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Println("recovered from handler panic:", rec)
			debug.PrintStack()
			resp = response.CGIError("internal error")
		}
	}()

	resp, err := h.Handle(ctx, r)
	if err != nil {
		log.Println("handler error:", err)
		return ErrorResponse(err)
	}
	if resp == nil {
		log.Println("handler returned no response")
		return response.CGIError("internal error")
	}
	return resp
}

// ErrorResponse converts an error into the failure response the peer should
// see. Request parsing errors map to their Gemini categories; anything else
// is reported as a generic 42.
func ErrorResponse(err error) *response.Response {
	switch {
	case errors.Is(err, request.ErrBadCertificate):
		return response.CertNotValid("invalid certificate")
	case errors.Is(err, request.ErrMalformedURI), errors.Is(err, request.ErrMalformedRequest):
		return response.BadRequest("malformed request")
	default:
		return response.CGIError("internal error")
	}
}
