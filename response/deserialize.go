package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/s0up4200/apictl/descriptor"
	"github.com/s0up4200/apictl/models"
)

const defaultContentType = "application/json"

// Deserialize parses returnType and resolves the body against it.
//
// A blank body yields nil for every return type. "File" writes the body to
// the temp directory and returns a *File. Everything else requires a JSON
// body; when the JSON is malformed and the return type is "String" the raw
// body text is returned instead of an error.
func (r *Response) Deserialize(returnType string) (any, error) {
	d, err := r.parser.Parse(returnType)
	if err != nil {
		return nil, err
	}
	return r.DeserializeDescriptor(d)
}

// DeserializeDescriptor is Deserialize for an already parsed descriptor
func (r *Response) DeserializeDescriptor(d descriptor.Descriptor) (any, error) {
	if len(bytes.TrimSpace(r.body)) == 0 {
		return nil, nil
	}

	if d.Kind == descriptor.File {
		f, err := r.DownloadFile()
		if err != nil {
			return nil, err
		}
		return f, nil
	}

	if err := r.checkContentType(); err != nil {
		return nil, err
	}

	data, err := decodeJSON(r.body)
	if err != nil {
		if d.Kind == descriptor.String {
			r.logger.Debug().Err(err).Msg("Body is not JSON, returning raw text for String return type")
			return string(r.body), nil
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	return r.build(data, d, "$")
}

func (r *Response) checkContentType() error {
	contentType := r.header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType, _, _ = strings.Cut(contentType, ";")
		mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	}

	if mediaType != defaultContentType {
		return fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
	}
	return nil
}

// decodeJSON parses a complete JSON document; trailing data is an error
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, err
	}

	return normalize(v)
}

// normalize replaces json.Number with int64 for integer literals and float64
// otherwise. Numbers that do not fit are rejected rather than rounded.
func normalize(v any) (any, error) {
	switch val := v.(type) {
	case json.Number:
		if !strings.ContainsAny(val.String(), ".eE") {
			i, err := val.Int64()
			if err != nil {
				return nil, fmt.Errorf("integer %s out of range: %w", val, err)
			}
			return i, nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %s out of range: %w", val, err)
		}
		return f, nil
	case []any:
		for i := range val {
			n, err := normalize(val[i])
			if err != nil {
				return nil, err
			}
			val[i] = n
		}
		return val, nil
	case map[string]any:
		for k := range val {
			n, err := normalize(val[k])
			if err != nil {
				return nil, err
			}
			val[k] = n
		}
		return val, nil
	default:
		return v, nil
	}
}

// build resolves v against d. path locates v within the document for error
// messages, e.g. "$[2].tags".
func (r *Response) build(v any, d descriptor.Descriptor, path string) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch d.Kind {
	case descriptor.String, descriptor.Integer, descriptor.Boolean, descriptor.Object:
		return v, nil

	case descriptor.Float:
		if i, ok := v.(int64); ok {
			return float64(i), nil
		}
		return v, nil

	case descriptor.DateTime:
		s, ok := v.(string)
		if !ok {
			return nil, &MismatchError{Path: path, Expected: "DateTime string", Got: v}
		}
		t, err := models.ParseTime(s)
		if err != nil {
			return nil, fmt.Errorf("%w at %s: %q", ErrMalformedDateTime, path, s)
		}
		return t, nil

	case descriptor.Array:
		items, ok := v.([]any)
		if !ok {
			return nil, &MismatchError{Path: path, Expected: d.String(), Got: v}
		}
		out := make([]any, len(items))
		for i, item := range items {
			built, err := r.build(item, *d.Elem, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = built
		}
		return out, nil

	case descriptor.Map:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, &MismatchError{Path: path, Expected: d.String(), Got: v}
		}
		out := make(map[string]any, len(m))
		for key, value := range m {
			built, err := r.build(value, *d.Elem, path+"."+key)
			if err != nil {
				return nil, err
			}
			out[key] = built
		}
		return out, nil

	case descriptor.Model:
		attrs, ok := v.(map[string]any)
		if !ok {
			return nil, &MismatchError{Path: path, Expected: d.Name + " object", Got: v}
		}
		m, err := r.registry.Build(d.Name, attrs)
		if err != nil {
			return nil, fmt.Errorf("at %s: %w", path, err)
		}
		return m, nil

	default:
		return nil, &MismatchError{Path: path, Expected: d.String(), Got: v}
	}
}

// SliceOf converts a deserialized Array into a typed slice
func SliceOf[T any](v any) ([]T, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, &MismatchError{Path: "$", Expected: "array", Got: v}
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		if item == nil {
			var zero T
			out = append(out, zero)
			continue
		}
		typed, ok := item.(T)
		if !ok {
			return nil, &MismatchError{Path: fmt.Sprintf("$[%d]", i), Expected: fmt.Sprintf("%T", *new(T)), Got: item}
		}
		out = append(out, typed)
	}
	return out, nil
}

// MapOf converts a deserialized Hash into a typed map
func MapOf[T any](v any) (map[string]T, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &MismatchError{Path: "$", Expected: "object", Got: v}
	}
	out := make(map[string]T, len(m))
	for key, value := range m {
		if value == nil {
			var zero T
			out[key] = zero
			continue
		}
		typed, ok := value.(T)
		if !ok {
			return nil, &MismatchError{Path: "$." + key, Expected: fmt.Sprintf("%T", *new(T)), Got: value}
		}
		out[key] = typed
	}
	return out, nil
}
