// Package request models an incoming Gemini request independently of the
// transport that delivered it. Both gateway transports speak in CGI
// meta-variables, either through the process environment or through an SCGI
// header block, so FromEnv accepts a lookup function instead of reading any
// ambient state.
package request

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MaxURILength is the maximum size of a Gemini request URI in bytes.
const MaxURILength = 1024

// Request carries everything a handler needs to answer a single request.
type Request struct {
	// URL is the full request URL.
	URL string
	// Path is the URL path relative to the script.
	Path string
	// Script is the URL path of the script itself.
	Script string
	// Query is the query component of the URL, without the leading '?'.
	Query string
	// ServerName and ServerPort are the host components of the URL.
	ServerName string
	ServerPort uint16
	// RemoteAddr is the client address. RemoteHost is its FQDN when
	// resolvable, otherwise the same as RemoteAddr.
	RemoteAddr string
	RemoteHost string
	// Protocol is the URL scheme, normally "GEMINI".
	Protocol string
	// Cert is the forwarded client certificate, nil when none was supplied.
	Cert *Certificate
	// Params holds named path parameters extracted by the router. Nil until
	// the request has been routed.
	Params map[string]string
	// Body is the request body stream. Nil for bodyless requests.
	Body io.Reader
}

// Parse builds a Request from a raw request URI. The query component, when
// present, is the substring after the first '?'.
func Parse(rawURI string) (*Request, error) {
	if rawURI == "" {
		return nil, fmt.Errorf("%w: empty URI", ErrMalformedURI)
	}
	if len(rawURI) > MaxURILength {
		return nil, fmt.Errorf("%w: URI exceeds %d bytes", ErrMalformedURI, MaxURILength)
	}

	path, query, _ := strings.Cut(rawURI, "?")
	return &Request{
		URL:      rawURI,
		Path:     path,
		Query:    query,
		Protocol: "GEMINI",
	}, nil
}

// Getenv looks up one CGI meta-variable. An empty string means unset.
type Getenv func(key string) string

func lookup(getenv Getenv, key string) (string, error) {
	val := getenv(key)
	if val == "" {
		return "", fmt.Errorf("%w: missing %s", ErrMalformedRequest, key)
	}
	return val, nil
}

// FromEnv builds a Request from CGI meta-variables. GEMINI_URL, PATH_INFO,
// SCRIPT_NAME, SERVER_NAME, SERVER_PORT and REMOTE_ADDR are required.
// QUERY_STRING defaults to empty, REMOTE_HOST falls back to REMOTE_ADDR and
// SERVER_PROTOCOL defaults to GEMINI, since not every gateway sets them.
func FromEnv(getenv Getenv) (*Request, error) {
	url, err := lookup(getenv, "GEMINI_URL")
	if err != nil {
		return nil, err
	}
	if len(url) > MaxURILength {
		return nil, fmt.Errorf("%w: URI exceeds %d bytes", ErrMalformedURI, MaxURILength)
	}
	path, err := lookup(getenv, "PATH_INFO")
	if err != nil {
		return nil, err
	}
	script, err := lookup(getenv, "SCRIPT_NAME")
	if err != nil {
		return nil, err
	}
	serverName, err := lookup(getenv, "SERVER_NAME")
	if err != nil {
		return nil, err
	}
	portRaw, err := lookup(getenv, "SERVER_PORT")
	if err != nil {
		return nil, err
	}
	port, err := strconv.ParseUint(portRaw, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("%w: bad SERVER_PORT %q", ErrMalformedRequest, portRaw)
	}
	remoteAddr, err := lookup(getenv, "REMOTE_ADDR")
	if err != nil {
		return nil, err
	}

	remoteHost := getenv("REMOTE_HOST")
	if remoteHost == "" {
		remoteHost = remoteAddr
	}
	protocol := getenv("SERVER_PROTOCOL")
	if protocol == "" {
		protocol = "GEMINI"
	}

	var cert *Certificate
	if getenv("AUTH_TYPE") == "CERTIFICATE" {
		cert, err = ParseCertificate(getenv)
		if err != nil {
			return nil, err
		}
	}

	return &Request{
		URL:        url,
		Path:       path,
		Script:     script,
		Query:      getenv("QUERY_STRING"),
		ServerName: serverName,
		ServerPort: uint16(port),
		RemoteAddr: remoteAddr,
		RemoteHost: remoteHost,
		Protocol:   protocol,
		Cert:       cert,
	}, nil
}
