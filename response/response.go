// Package response models a Gemini response: a status line in the form
// `<code> <meta>\r\n`, followed by a body only when the status code is in
// the success category. Every transport serializes responses through
// Response.Write, so the wire format is identical for CGI and SCGI.
package response

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Response is a Gemini response. The meta line carries the MIME type for
// success responses, a prompt for input responses, a URL for redirects and
// an explanation for failures.
type Response struct {
	Status StatusCode
	Meta   string

	body io.Reader
}

// New creates a bodyless response with the given status code and meta line.
func New(code StatusCode, meta string) *Response {
	return &Response{Status: code, Meta: meta}
}

// WithBody sets the response body. Attaching a body to a non-success
// response is a programming error and panics immediately, it is never
// deferred to serialization time.
func (r *Response) WithBody(body io.Reader) *Response {
	if body != nil && !r.Status.IsSuccess() {
		panic(fmt.Sprintf("response: status %d cannot carry a body", r.Status))
	}
	r.body = body
	return r
}

// Body returns the response body reader, nil when there is none.
func (r *Response) Body() io.Reader {
	return r.body
}

// Header returns the full status line for this response, including the
// trailing CRLF.
func (r *Response) Header() string {
	return fmt.Sprintf("%d %s\r\n", r.Status, r.Meta)
}

// Write serializes the response to w: the status line first, then the body
// when one is present.
func (r *Response) Write(w io.Writer) error {
	if _, err := io.WriteString(w, r.Header()); err != nil {
		return err
	}
	if r.body != nil {
		if _, err := io.Copy(w, r.body); err != nil {
			return err
		}
	}
	return nil
}

// Success creates a 20 response streaming the given body. The meta line is
// the MIME type of the body; an empty MIME type panics.
func Success(mime string, body io.Reader) *Response {
	if mime == "" {
		panic("response: success response requires a MIME type")
	}
	return New(StatusSuccess, mime).WithBody(body)
}

// SuccessText creates a 20 response with an in-memory body.
func SuccessText(mime, body string) *Response {
	return Success(mime, strings.NewReader(body))
}

// Gemtext creates a 20 text/gemini response.
func Gemtext(body string) *Response {
	return SuccessText("text/gemini", body)
}

// Input creates a 10 response prompting the client for a query input.
func Input(prompt string) *Response {
	return New(StatusInput, prompt)
}

// InputSensitive creates an 11 response prompting for input that should not
// be echoed, such as a password.
func InputSensitive(prompt string) *Response {
	return New(StatusInputSensitive, prompt)
}

// Redirect creates a 30 temporary redirect to the given URL.
func Redirect(url string) *Response {
	return New(StatusRedirect, url)
}

// RedirectPermanent creates a 31 permanent redirect to the given URL.
func RedirectPermanent(url string) *Response {
	return New(StatusRedirectPermanent, url)
}

// TemporaryFailure creates a 40 response. An identical request may succeed
// in the future.
func TemporaryFailure(message string) *Response {
	return New(StatusTemporaryFailure, message)
}

// Unavailable creates a 41 response for overload or maintenance.
func Unavailable(message string) *Response {
	return New(StatusUnavailable, message)
}

// CGIError creates a 42 response for dynamic content that died unexpectedly
// or timed out.
func CGIError(message string) *Response {
	return New(StatusCGIError, message)
}

// ProxyError creates a 43 response for a failed proxy transaction.
func ProxyError(message string) *Response {
	return New(StatusProxyError, message)
}

// SlowDown creates a 44 response. The meta line is the number of seconds
// the client must wait before its next request.
func SlowDown(seconds int) *Response {
	return New(StatusSlowDown, strconv.Itoa(seconds))
}

// PermanentFailure creates a 50 response. Identical future requests will
// reliably fail for the same reason.
func PermanentFailure(message string) *Response {
	return New(StatusPermanentFailure, message)
}

// NotFound creates a 51 response.
func NotFound(message string) *Response {
	return New(StatusNotFound, message)
}

// Gone creates a 52 response for a resource that will not come back.
func Gone(message string) *Response {
	return New(StatusGone, message)
}

// ProxyRefused creates a 53 response for a request outside the domains this
// server is willing to serve.
func ProxyRefused(message string) *Response {
	return New(StatusProxyRefused, message)
}

// BadRequest creates a 59 response for a request the server could not parse.
func BadRequest(message string) *Response {
	return New(StatusBadRequest, message)
}

// CertRequired creates a 60 response asking the client to repeat the
// request with a certificate.
func CertRequired(message string) *Response {
	return New(StatusCertRequired, message)
}

// CertNotAuthorised creates a 61 response: the certificate is fine but not
// allowed for this resource.
func CertNotAuthorised(message string) *Response {
	return New(StatusCertNotAuthorised, message)
}

// CertNotValid creates a 62 response for an invalid certificate.
func CertNotValid(message string) *Response {
	return New(StatusCertNotValid, message)
}
