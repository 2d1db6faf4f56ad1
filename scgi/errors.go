package scgi

import "errors"

// ErrFraming is returned when a connection's netstring framing is invalid.
// Once framing is lost the stream state is unknown, so the connection is
// closed without a response.
var ErrFraming = errors.New("invalid netstring framing")
