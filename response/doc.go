// Package response turns HTTP responses from a REST API into typed values.
//
// A Response is only ever built from a successful exchange: New returns an
// *APIError for any status outside 200-299.
//
//	resp, err := response.New(httpResp,
//		response.WithRegistry(reg),
//		response.WithTempDir(cfg.Download.TempFolderPath),
//		response.WithLogger(logger),
//	)
//	if err != nil {
//		if apiErr, ok := response.AsAPIError(err); ok && apiErr.IsNotFound() {
//			// handle missing resource
//		}
//		return err
//	}
//
//	v, err := resp.Deserialize("Array<Pet>")
//
// # Return types
//
// The return type string is parsed by the descriptor package and resolved
// recursively:
//
//   - String, Integer, Float, BOOLEAN, Object: the parsed JSON value
//   - DateTime: time.Time
//   - Array<T>: []any of resolved elements
//   - Hash<String, T>: map[string]any of resolved values
//   - File: *File written to the temp directory
//   - any other name: the registered models.Model, hydrated from the mapping
//
// JSON numbers become int64 when integral and float64 otherwise. SliceOf and
// MapOf convert collections into typed Go values.
//
// # Errors
//
//   - *APIError: non-2xx status, with status code, headers and body
//   - ErrUnsupportedContentType: non-JSON Content-Type
//   - ErrMalformedBody: invalid JSON, except for String return types which
//     fall back to the raw text
//   - ErrMalformedDateTime: DateTime value is not ISO-8601
//   - ErrTypeMismatch: value shape differs from the return type
//   - models.ErrUnknownModel: model name not registered
package response
