package response

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s0up4200/apictl/descriptor"
	"github.com/s0up4200/apictl/models"
)

// Option configures a Response
type Option func(*Response)

// WithRegistry sets the registry used to resolve model names
func WithRegistry(registry *models.Registry) Option {
	return func(r *Response) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// WithParser shares a descriptor parser, and its cache, across responses
func WithParser(parser *descriptor.Parser) Option {
	return func(r *Response) {
		if parser != nil {
			r.parser = parser
		}
	}
}

// WithTempDir sets the directory File responses are written to. An empty
// dir disables file downloads.
func WithTempDir(dir string) Option {
	return func(r *Response) {
		r.tempDir = dir
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Response) {
		r.logger = logger
	}
}

// Response is a successful HTTP response whose body has been read into
// memory and can be deserialized against a return type.
type Response struct {
	statusCode int
	status     string
	header     http.Header
	body       []byte

	registry *models.Registry
	parser   *descriptor.Parser
	tempDir  string
	logger   zerolog.Logger
}

// New reads and closes raw's body. A non-2xx status yields an *APIError
// and no Response, so callers never deserialize a failed exchange.
func New(raw *http.Response, opts ...Option) (*Response, error) {
	if raw == nil {
		return nil, errors.New("nil HTTP response")
	}

	var body []byte
	if raw.Body != nil {
		defer raw.Body.Close()

		b, err := io.ReadAll(raw.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		body = b
	}

	header := raw.Header
	if header == nil {
		header = http.Header{}
	}

	r := &Response{
		statusCode: raw.StatusCode,
		status:     statusMessage(raw),
		header:     header,
		body:       body,
		tempDir:    os.TempDir(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = models.NewRegistry()
	}
	if r.parser == nil {
		r.parser = descriptor.NewParser()
	}

	if !r.Success() {
		return nil, &APIError{
			StatusCode: r.statusCode,
			Message:    r.status,
			Header:     r.header,
			Body:       string(r.body),
		}
	}

	return r, nil
}

// statusMessage returns the reason phrase, e.g. "Not Found" for "404 Not Found"
func statusMessage(raw *http.Response) string {
	msg := strings.TrimSpace(strings.TrimPrefix(raw.Status, strconv.Itoa(raw.StatusCode)))
	if msg == "" {
		msg = http.StatusText(raw.StatusCode)
	}
	return msg
}

// Success reports whether the status is in [200,299]
func (r *Response) Success() bool {
	return r.statusCode >= 200 && r.statusCode <= 299
}

// StatusCode returns the HTTP status code
func (r *Response) StatusCode() int {
	return r.statusCode
}

// Status returns the status message, e.g. "OK"
func (r *Response) Status() string {
	return r.status
}

// Header returns the raw multi-value header
func (r *Response) Header() http.Header {
	return r.header
}

// Headers flattens the header into single values; the last value wins
// for repeated keys
func (r *Response) Headers() map[string]string {
	flat := make(map[string]string, len(r.header))
	for key, values := range r.header {
		if len(values) == 0 {
			continue
		}
		flat[key] = values[len(values)-1]
	}
	return flat
}

// Body returns the raw body
func (r *Response) Body() []byte {
	return r.body
}

// Format returns the content subtype, e.g. "json" for
// "application/json; charset=utf-8". It is empty without a Content-Type.
func (r *Response) Format() string {
	mediaType, _, _ := strings.Cut(r.header.Get("Content-Type"), ";")
	mediaType = strings.TrimSpace(mediaType)
	if i := strings.LastIndex(mediaType, "/"); i >= 0 {
		mediaType = mediaType[i+1:]
	}
	return strings.ToLower(mediaType)
}

// IsJSON reports whether the body is declared as JSON
func (r *Response) IsJSON() bool {
	return r.Format() == "json"
}

// IsXML reports whether the body is declared as XML
func (r *Response) IsXML() bool {
	return r.Format() == "xml"
}
