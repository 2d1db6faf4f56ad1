package request

import (
	"fmt"
	"strings"
	"time"
)

// Certificate describes the client certificate a gateway forwarded with the
// request. Hash is the primary identifier; the certificate is valid between
// NotBefore and NotAfter.
type Certificate struct {
	Hash      string
	Issuer    map[string]string
	Subject   map[string]string
	NotBefore time.Time
	NotAfter  time.Time
}

// parseName splits an X.509 name like "CN=foo,OU=bar" into a map.
func parseName(name string) (map[string]string, error) {
	mapping := make(map[string]string)
	for _, group := range strings.Split(name, ",") {
		k, v, ok := strings.Cut(group, "=")
		if !ok {
			return nil, fmt.Errorf("%w: invalid X.509 name %q", ErrBadCertificate, name)
		}
		mapping[k] = v
	}
	return mapping, nil
}

// ParseCertificate builds a Certificate from the TLS_CLIENT_* meta-variables
// gateways set when AUTH_TYPE is CERTIFICATE.
func ParseCertificate(getenv Getenv) (*Certificate, error) {
	hash, err := lookup(getenv, "TLS_CLIENT_HASH")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCertificate, err)
	}
	issuerRaw, err := lookup(getenv, "TLS_CLIENT_ISSUER")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCertificate, err)
	}
	subjectRaw, err := lookup(getenv, "TLS_CLIENT_SUBJECT")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCertificate, err)
	}
	notBeforeRaw, err := lookup(getenv, "TLS_CLIENT_NOT_BEFORE")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCertificate, err)
	}
	notAfterRaw, err := lookup(getenv, "TLS_CLIENT_NOT_AFTER")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCertificate, err)
	}

	notBefore, err := time.Parse(time.RFC3339, notBeforeRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: bad TLS_CLIENT_NOT_BEFORE %q", ErrBadCertificate, notBeforeRaw)
	}
	notAfter, err := time.Parse(time.RFC3339, notAfterRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: bad TLS_CLIENT_NOT_AFTER %q", ErrBadCertificate, notAfterRaw)
	}

	issuer, err := parseName(issuerRaw)
	if err != nil {
		return nil, err
	}
	subject, err := parseName(subjectRaw)
	if err != nil {
		return nil, err
	}

	return &Certificate{
		Hash:      hash,
		Issuer:    issuer,
		Subject:   subject,
		NotBefore: notBefore,
		NotAfter:  notAfter,
	}, nil
}

// Valid reports whether the certificate is inside its validity window at t.
func (c *Certificate) Valid(t time.Time) bool {
	return !t.Before(c.NotBefore) && !t.After(c.NotAfter)
}
