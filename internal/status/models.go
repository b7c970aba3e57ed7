package status

import "net/http"

const contentType = "text/plain; charset=utf-8"

// Request represents an incoming request, reduced to what the
// dispatcher looks at.
type Request struct {
	Method string
	Path   string
}

// Response represents an outgoing response.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// newResponse creates a new plain text response.
func newResponse(status int, body string) Response {
	header := make(http.Header)
	header.Set("Content-Type", contentType)

	return Response{
		StatusCode: status,
		Body:       []byte(body),
		Header:     header,
	}
}
