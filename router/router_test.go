package router

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemgate/gemgate/app"
	"github.com/gemgate/gemgate/request"
	"github.com/gemgate/gemgate/response"
)

func TestTieBreakLiteralOverParam(t *testing.T) {
	// Test: parameter registered first, literal still wins
	rt := New()
	rt.Register("/a/:id", namedHandler("param"))
	rt.Register("/a/b", namedHandler("literal"))
	h, _, ok := rt.Seal().Match("/a/b")
	require.True(t, ok)
	assert.Equal(t, "literal", handlerName(t, h))

	// Test: literal registered first, same outcome
	rt = New()
	rt.Register("/a/b", namedHandler("literal"))
	rt.Register("/a/:id", namedHandler("param"))
	h, _, ok = rt.Seal().Match("/a/b")
	require.True(t, ok)
	assert.Equal(t, "literal", handlerName(t, h))

	// Test: the parameter pattern still serves other values
	h, params, ok := rt.Seal().Match("/a/zzz")
	require.True(t, ok)
	assert.Equal(t, "param", handlerName(t, h))
	assert.Equal(t, map[string]string{"id": "zzz"}, params)
}

func TestParamExtraction(t *testing.T) {
	rt := New()
	rt.Register("/user/:name/post/:id", namedHandler("post"))
	sealed := rt.Seal()

	_, params, ok := sealed.Match("/user/alice/post/42")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"name": "alice", "id": "42"}, params)

	// Test: segment count mismatches never match
	for _, path := range []string{"/user/alice", "/user/alice/post", "/user/alice/post/42/x"} {
		_, _, ok := sealed.Match(path)
		assert.False(t, ok, "path %s", path)
	}
}

func TestTrailingSlashNormalization(t *testing.T) {
	rt := New()
	rt.Register("/files/docs/", namedHandler("docs"))
	sealed := rt.Seal()

	for _, path := range []string{"/files/docs", "/files/docs/", "files//docs"} {
		_, _, ok := sealed.Match(path)
		assert.True(t, ok, "path %s", path)
	}
}

func TestSealIdempotent(t *testing.T) {
	rt := New()
	rt.Register("/a", namedHandler("a"))

	sealed := rt.Seal()
	assert.Same(t, sealed, rt.Seal())
}

func TestRegisterAfterSealPanics(t *testing.T) {
	rt := New()
	rt.Register("/a", namedHandler("a"))
	rt.Seal()

	require.Panics(t, func() { rt.Register("/b", namedHandler("b")) })
	require.Panics(t, func() { rt.NotFound(namedHandler("nf")) })
	require.Panics(t, func() { rt.Use(func(h app.Handler) app.Handler { return h }) })
}

func TestConcurrentLookups(t *testing.T) {
	rt := New()
	rt.Register("/user/:name", namedHandler("user"))
	rt.Register("/user/admin", namedHandler("admin"))
	sealed := rt.Seal()

	// Concurrent lookups over the sealed registry must all see identical
	// results; any mutation during matching would trip the race detector.
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h, params, ok := sealed.Match("/user/alice")
				assert.True(t, ok)
				assert.Equal(t, "user", handlerName(t, h))
				assert.Equal(t, map[string]string{"name": "alice"}, params)

				h, params, ok = sealed.Match("/user/admin")
				assert.True(t, ok)
				assert.Equal(t, "admin", handlerName(t, h))
				assert.Empty(t, params)
			}
		}()
	}
	wg.Wait()
}

func TestHandleRoutesRequest(t *testing.T) {
	rt := New()
	rt.RegisterFunc("/hello/:name", func(ctx context.Context, r *request.Request) (*response.Response, error) {
		return response.Gemtext(r.Params["name"]), nil
	})
	sealed := rt.Seal()

	req := &request.Request{Path: "/hello/alice"}
	resp, err := sealed.Handle(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, response.StatusSuccess, resp.Status)
	assert.Equal(t, map[string]string{"name": "alice"}, req.Params)
}

func TestHandleNotFound(t *testing.T) {
	// Test: default not-found handler answers 51
	rt := New()
	rt.Register("/a", namedHandler("a"))
	resp, err := rt.Seal().Handle(context.Background(), &request.Request{Path: "/missing"})
	require.NoError(t, err)
	assert.Equal(t, response.StatusNotFound, resp.Status)

	// Test: custom not-found handler
	rt = New()
	rt.NotFound(app.HandlerFunc(func(ctx context.Context, r *request.Request) (*response.Response, error) {
		return response.Gone("gone"), nil
	}))
	resp, err = rt.Seal().Handle(context.Background(), &request.Request{Path: "/missing"})
	require.NoError(t, err)
	assert.Equal(t, response.StatusGone, resp.Status)
}

func TestMiddlewareChain(t *testing.T) {
	order := []string{}
	mark := func(name string) Middleware {
		return func(next app.Handler) app.Handler {
			return app.HandlerFunc(func(ctx context.Context, r *request.Request) (*response.Response, error) {
				order = append(order, name)
				return next.Handle(ctx, r)
			})
		}
	}

	rt := New()
	rt.Use(mark("outer"), mark("inner"))
	rt.Register("/a", namedHandler("a"))

	_, err := rt.Seal().Handle(context.Background(), &request.Request{Path: "/a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}
