package middleware

import (
	"context"
	"time"

	"github.com/gemgate/gemgate/app"
	"github.com/gemgate/gemgate/request"
	"github.com/gemgate/gemgate/response"
	"github.com/gemgate/gemgate/router"
)

// CertAuth requires a client certificate. Requests without one are answered
// with 60, expired or not-yet-valid certificates with 62, and certificates
// whose hash fails the authorize check with 61. A nil authorize accepts any
// valid certificate.
func CertAuth(authorize func(hash string) bool) router.Middleware {
	return func(next app.Handler) app.Handler {
		return app.HandlerFunc(func(ctx context.Context, r *request.Request) (*response.Response, error) {
			cert := r.Cert
			if cert == nil {
				return response.CertRequired("Client certificate required"), nil
			}

			if !cert.Valid(time.Now()) {
				return response.CertNotValid("Certificate expired or not yet valid"), nil
			}

			if authorize != nil && !authorize(cert.Hash) {
				return response.CertNotAuthorised("Certificate not authorised"), nil
			}

			return next.Handle(ctx, r)
		})
	}
}
