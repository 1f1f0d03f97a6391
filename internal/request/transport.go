package request

import (
	"context"
	"fmt"
	"strings"
)

// Transport dispatches a descriptor and resolves it into a response or a
// failure. The real signing HTTP client lives behind this seam; this
// repository ships only the static one.
type Transport interface {
	Do(ctx context.Context, d Descriptor) (Response, error)
}

// Signer computes the anti-tamper header a real endpoint expects, from the
// query string, body, and user agent. The zero implementation signs nothing.
type Signer interface {
	Sign(query string, body []byte, userAgent string) (header, value string)
}

// NoopSigner attaches no signature. Used in dry runs and tests.
type NoopSigner struct{}

func (NoopSigner) Sign(string, []byte, string) (string, string) { return "", "" }

// StaticTransport resolves every descriptor with a canned response, with
// optional per-URL-substring failures. It backs --dry-run and the executor
// tests.
type StaticTransport struct {
	Status int
	Body   []byte
	// FailWhen maps a URL substring to the error any matching dispatch
	// returns. First match wins, in unspecified order; keep patterns
	// disjoint.
	FailWhen map[string]error

	// Calls records every dispatched descriptor, in order.
	Calls []Descriptor
}

func (t *StaticTransport) Do(_ context.Context, d Descriptor) (Response, error) {
	t.Calls = append(t.Calls, d)
	for pattern, err := range t.FailWhen {
		if pattern != "" && containsURL(d.URL, pattern) {
			return Response{}, fmt.Errorf("transport: %s: %w", pattern, err)
		}
	}
	status := t.Status
	if status == 0 {
		status = 200
	}
	body := t.Body
	if body == nil {
		body = []byte(`{"status_code":0}`)
	}
	return Response{StatusCode: status, Body: body}, nil
}

// CallsTo counts dispatched descriptors whose URL contains the substring.
func (t *StaticTransport) CallsTo(pattern string) int {
	n := 0
	for _, d := range t.Calls {
		if containsURL(d.URL, pattern) {
			n++
		}
	}
	return n
}

func containsURL(u, pattern string) bool {
	return pattern != "" && strings.Contains(u, pattern)
}
