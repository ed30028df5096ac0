package response

import (
	"bytes"
	"encoding/json"
	"strings"
)

// LineBreak replaces newlines in pretty-printed output
const LineBreak = "<br/>"

// PrettyBody returns the body as indented JSON with newlines rendered as
// LineBreak. ok is false unless the format is JSON and the body is a
// non-empty valid document.
func (r *Response) PrettyBody() (pretty string, ok bool) {
	if !r.IsJSON() || len(bytes.TrimSpace(r.body)) == 0 {
		return "", false
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(r.body), "", "  "); err != nil {
		return "", false
	}
	return strings.ReplaceAll(buf.String(), "\n", LineBreak), true
}

// PrettyHeaders returns the flattened headers as indented JSON with
// newlines rendered as LineBreak
func (r *Response) PrettyHeaders() string {
	b, err := json.MarshalIndent(r.Headers(), "", "  ")
	if err != nil {
		return "{}"
	}
	return strings.ReplaceAll(string(b), "\n", LineBreak)
}
