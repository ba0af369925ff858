package llm

import (
	"net/http"
	"time"
)

type headerTransport struct {
	rt      http.RoundTripper
	headers http.Header
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone request to avoid mutating the original
	cl := req.Clone(req.Context())
	for k, vs := range t.headers {
		for _, v := range vs {
			cl.Header.Add(k, v)
		}
	}
	return t.rt.RoundTrip(cl)
}

// newHTTPClient returns a client with the given timeout that adds headers to
// every request.
func newHTTPClient(timeout time.Duration, headers http.Header) *http.Client {
	client := &http.Client{Timeout: timeout}
	if len(headers) > 0 {
		client.Transport = headerTransport{rt: http.DefaultTransport, headers: headers}
	}
	return client
}
