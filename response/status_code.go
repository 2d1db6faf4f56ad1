package response

// StatusCode defines Gemini status codes as enums
type StatusCode int

const (
	StatusInput          StatusCode = 10
	StatusInputSensitive StatusCode = 11

	StatusSuccess StatusCode = 20

	StatusRedirect          StatusCode = 30
	StatusRedirectPermanent StatusCode = 31

	StatusTemporaryFailure StatusCode = 40
	StatusUnavailable      StatusCode = 41
	StatusCGIError         StatusCode = 42
	StatusProxyError       StatusCode = 43
	StatusSlowDown         StatusCode = 44

	StatusPermanentFailure StatusCode = 50
	StatusNotFound         StatusCode = 51
	StatusGone             StatusCode = 52
	StatusProxyRefused     StatusCode = 53
	StatusBadRequest       StatusCode = 59

	StatusCertRequired      StatusCode = 60
	StatusCertNotAuthorised StatusCode = 61
	StatusCertNotValid      StatusCode = 62
)

var reasonPhrases = map[StatusCode]string{
	StatusInput:          "Input",
	StatusInputSensitive: "Sensitive Input",

	StatusSuccess: "Success",

	StatusRedirect:          "Redirect - Temporary",
	StatusRedirectPermanent: "Redirect - Permanent",

	StatusTemporaryFailure: "Temporary Failure",
	StatusUnavailable:      "Server Unavailable",
	StatusCGIError:         "CGI Error",
	StatusProxyError:       "Proxy Error",
	StatusSlowDown:         "Slow Down",

	StatusPermanentFailure: "Permanent Failure",
	StatusNotFound:         "Not Found",
	StatusGone:             "Gone",
	StatusProxyRefused:     "Proxy Request Refused",
	StatusBadRequest:       "Bad Request",

	StatusCertRequired:      "Client Certificate Required",
	StatusCertNotAuthorised: "Certificate Not Authorised",
	StatusCertNotValid:      "Certificate Not Valid",
}

// GetStatusReason returns the reason phrase for the given status code.
func GetStatusReason(s StatusCode) string {
	return reasonPhrases[s]
}

// IsSuccess reports whether the status code permits a response body.
// Only the 2x category does.
func (s StatusCode) IsSuccess() bool {
	return s >= 20 && s < 30
}
