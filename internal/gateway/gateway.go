package gateway

import "context"

// DefaultEndpoint is the CGI entry point of the inference engine.
const DefaultEndpoint = "http://localhost:3000/cgi-bin/airt.cgi.exe"

// FormField is the form key that carries the request text.
const FormField = "req"

// Submitter sends request text to the inference endpoint and returns the raw
// response body.
type Submitter interface {
	Submit(ctx context.Context, text string) (string, error)
	Endpoint() string
}
