package scgi

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// readNetstring reads one netstring ("<decimal length>:<payload>,") from r.
// max bounds the declared length so a broken or hostile peer cannot force
// unbounded buffering. io.EOF before the first length digit means the peer
// closed the stream between frames.
func readNetstring(r *bufio.Reader, max int) ([]byte, error) {
	length := 0
	digits := 0
	for {
		c, err := r.ReadByte()
		if err != nil {
			if digits == 0 && err == io.EOF {
				return nil, io.EOF
			}
			return nil, err
		}
		if c == ':' {
			if digits == 0 {
				return nil, fmt.Errorf("%w: empty length prefix", ErrFraming)
			}
			break
		}
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("%w: non-numeric length prefix", ErrFraming)
		}
		length = length*10 + int(c-'0')
		digits++
		if length > max {
			return nil, fmt.Errorf("%w: declared length exceeds %d bytes", ErrFraming, max)
		}
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}

	c, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if c != ',' {
		return nil, fmt.Errorf("%w: missing terminator", ErrFraming)
	}
	return payload, nil
}

// parseHeaderBlock parses the NUL-separated key/value pairs of an SCGI
// header block. The first value wins when a key repeats.
func parseHeaderBlock(block []byte) (map[string]string, error) {
	headers := make(map[string]string)
	for len(block) > 0 {
		i := bytes.IndexByte(block, 0)
		if i < 0 {
			return nil, fmt.Errorf("%w: unterminated header name", ErrFraming)
		}
		if i == 0 {
			return nil, fmt.Errorf("%w: empty header name", ErrFraming)
		}
		name := string(block[:i])

		rest := block[i+1:]
		j := bytes.IndexByte(rest, 0)
		if j < 0 {
			return nil, fmt.Errorf("%w: unterminated header value", ErrFraming)
		}
		if _, ok := headers[name]; !ok {
			headers[name] = string(rest[:j])
		}
		block = rest[j+1:]
	}
	return headers, nil
}
