// Package router provides the built-in routing application. Path patterns
// are made of literal segments and :name parameter segments; a pattern only
// matches a request path with the same segment count.
//
// A Router is mutable while the application is being assembled. Seal
// freezes it into a SealedRouter, which performs no further mutation and is
// therefore safe for concurrent lookups without locking. Sealing happens
// exactly once, before the first request is served.
package router

import (
	"context"

	"github.com/gemgate/gemgate/app"
	"github.com/gemgate/gemgate/request"
	"github.com/gemgate/gemgate/response"
)

var defaultNotFoundHandler app.Handler = app.HandlerFunc(func(ctx context.Context, r *request.Request) (*response.Response, error) {
	return response.NotFound("Path not found"), nil
})

// Middleware wraps a handler with extra behavior.
type Middleware func(app.Handler) app.Handler

// Router collects routes during application setup.
type Router struct {
	root            *trieNode
	notFoundHandler app.Handler
	middlewares     []Middleware
	sealed          *SealedRouter
}

// New creates an empty router.
func New() *Router {
	return &Router{
		root:            newTrieNode(),
		notFoundHandler: defaultNotFoundHandler,
	}
}

// Register adds a route for the given pattern. Registering after Seal is a
// programming error and panics.
func (r *Router) Register(pattern string, handler app.Handler) {
	r.mustBeUnsealed()
	r.root.addRoute(pattern, handler)
}

// RegisterFunc adds a route with a plain handler function.
func (r *Router) RegisterFunc(pattern string, handler app.HandlerFunc) {
	r.Register(pattern, handler)
}

// NotFound sets the handler used when no route matches.
func (r *Router) NotFound(handler app.Handler) {
	r.mustBeUnsealed()
	r.notFoundHandler = handler
}

// Use appends middleware applied around the routing handler.
func (r *Router) Use(m ...Middleware) {
	r.mustBeUnsealed()
	r.middlewares = append(r.middlewares, m...)
}

func (r *Router) mustBeUnsealed() {
	if r.sealed != nil {
		panic("router: mutation after Seal")
	}
}

// Seal freezes the route set and returns the shareable matcher. Sealing is
// idempotent: every call returns the same SealedRouter.
func (r *Router) Seal() *SealedRouter {
	if r.sealed != nil {
		return r.sealed
	}

	sealed := &SealedRouter{
		root:            r.root,
		notFoundHandler: r.notFoundHandler,
	}

	routing := app.Handler(app.HandlerFunc(func(ctx context.Context, req *request.Request) (*response.Response, error) {
		handler, params, ok := sealed.Match(req.Path)
		if !ok {
			return sealed.notFoundHandler.Handle(ctx, req)
		}
		req.Params = params
		return handler.Handle(ctx, req)
	}))
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		routing = r.middlewares[i](routing)
	}
	sealed.handler = routing

	r.sealed = sealed
	return sealed
}

// SealedRouter matches request paths against a frozen route set. It never
// mutates after construction, so concurrent lookups need no locking.
type SealedRouter struct {
	root            *trieNode
	notFoundHandler app.Handler
	handler         app.Handler
}

// Match returns the handler registered for path along with the extracted
// parameter values. ok is false when no pattern matches.
func (s *SealedRouter) Match(path string) (app.Handler, map[string]string, bool) {
	params := make(map[string]string)
	handler, ok := s.root.match(splitPath(path), params)
	if !ok {
		return nil, nil, false
	}
	return handler, params, true
}

// Handle implements app.Handler: the request is routed, its path parameters
// recorded, and the matched handler invoked. An unmatched path is answered
// by the not-found handler.
func (s *SealedRouter) Handle(ctx context.Context, r *request.Request) (*response.Response, error) {
	return s.handler.Handle(ctx, r)
}
