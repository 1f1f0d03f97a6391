// Package request assembles outbound request descriptors for one session
// and hands them to an injected transport. Descriptor construction is pure:
// no network I/O happens until a Transport dispatches the descriptor.
package request

import (
	"net/url"
	"strings"
)

// Param is one query parameter. Parameters are kept as an ordered slice so
// the query string preserves exactly the order the caller supplied.
type Param struct {
	Key   string
	Value string
}

// Descriptor is the fully-formed, not-yet-dispatched representation of one
// outbound call. It is the contract the transport/signing layer accepts.
type Descriptor struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    []byte
}

// Query returns the raw query string of the descriptor URL, used as signing
// input.
func (d Descriptor) Query() string {
	if i := strings.IndexByte(d.URL, '?'); i >= 0 {
		return d.URL[i+1:]
	}
	return ""
}

// Response is what a transport resolves a descriptor into. A transport
// either returns a response or an error; it never silently no-ops.
type Response struct {
	StatusCode int
	Body       []byte
}

func encodeQuery(params []Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
