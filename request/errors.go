package request

import "errors"

// ErrMalformedURI is returned when a request URI is empty or exceeds
// MaxURILength.
var ErrMalformedURI = errors.New("malformed request URI")

// ErrMalformedRequest is returned when a required request meta-variable is
// missing or unparseable.
var ErrMalformedRequest = errors.New("malformed request")

// ErrBadCertificate is returned when a forwarded client certificate cannot
// be parsed.
var ErrBadCertificate = errors.New("bad client certificate")
