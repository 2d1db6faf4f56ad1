package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemgate/gemgate/request"
	"github.com/gemgate/gemgate/response"
)

func silenceLogs(t *testing.T) {
	t.Helper()
	orig := log.Writer()
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(orig) })
}

func TestDispatchSuccess(t *testing.T) {
	h := HandlerFunc(func(ctx context.Context, r *request.Request) (*response.Response, error) {
		return response.Gemtext("# ok\n"), nil
	})

	resp := Dispatch(context.Background(), h, &request.Request{Path: "/"})
	require.NotNil(t, resp)
	assert.Equal(t, response.StatusSuccess, resp.Status)
}

func TestDispatchHandlerError(t *testing.T) {
	silenceLogs(t)

	// Test: an opaque handler error becomes a generic 42
	h := HandlerFunc(func(ctx context.Context, r *request.Request) (*response.Response, error) {
		return nil, errors.New("database exploded")
	})
	resp := Dispatch(context.Background(), h, &request.Request{})
	assert.Equal(t, response.StatusCGIError, resp.Status)
	// the internal error must not leak to the peer
	assert.NotContains(t, resp.Meta, "database")

	// Test: request-level errors keep their Gemini category
	h = HandlerFunc(func(ctx context.Context, r *request.Request) (*response.Response, error) {
		return nil, fmt.Errorf("wrapped: %w", request.ErrMalformedRequest)
	})
	resp = Dispatch(context.Background(), h, &request.Request{})
	assert.Equal(t, response.StatusBadRequest, resp.Status)
}

func TestDispatchHandlerPanic(t *testing.T) {
	silenceLogs(t)

	h := HandlerFunc(func(ctx context.Context, r *request.Request) (*response.Response, error) {
		panic("boom")
	})
	resp := Dispatch(context.Background(), h, &request.Request{})
	require.NotNil(t, resp)
	assert.Equal(t, response.StatusCGIError, resp.Status)
}

func TestDispatchNilResponse(t *testing.T) {
	silenceLogs(t)

	h := HandlerFunc(func(ctx context.Context, r *request.Request) (*response.Response, error) {
		return nil, nil
	})
	resp := Dispatch(context.Background(), h, &request.Request{})
	require.NotNil(t, resp)
	assert.Equal(t, response.StatusCGIError, resp.Status)
}

func TestErrorResponse(t *testing.T) {
	assert.Equal(t, response.StatusBadRequest, ErrorResponse(request.ErrMalformedURI).Status)
	assert.Equal(t, response.StatusBadRequest, ErrorResponse(request.ErrMalformedRequest).Status)
	assert.Equal(t, response.StatusCertNotValid, ErrorResponse(request.ErrBadCertificate).Status)
	assert.Equal(t, response.StatusCGIError, ErrorResponse(errors.New("anything else")).Status)
}
