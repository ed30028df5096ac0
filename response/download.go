package response

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// filenamePattern matches single-quoted and bare filenames that
// mime.ParseMediaType rejects
var filenamePattern = regexp.MustCompile(`(?i)filename=['"]?([^'"\s;]+)['"]?`)

// File is a response body written to the temp directory. The caller owns
// the file and should move or remove it.
type File struct {
	Path string
	Name string
	Size int64
}

// Open opens the file for reading
func (f *File) Open() (*os.File, error) {
	return os.Open(f.Path)
}

// Remove deletes the file
func (f *File) Remove() error {
	return os.Remove(f.Path)
}

// DownloadFile writes the raw body into the temp directory. The name comes
// from the Content-Disposition filename when present, otherwise a unique
// "download-<uuid>" name is generated. No placeholder file is created.
func (r *Response) DownloadFile() (*File, error) {
	if r.tempDir == "" {
		return nil, ErrNoTempDir
	}
	if err := os.MkdirAll(r.tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	name := dispositionFilename(r.header.Get("Content-Disposition"))
	if name == "" {
		name = "download-" + uuid.NewString()
	}
	path := filepath.Join(r.tempDir, name)

	if err := os.WriteFile(path, r.body, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write downloaded file: %w", err)
	}

	r.logger.Info().
		Str("path", path).
		Int("bytes", len(r.body)).
		Msg("File written to temp folder, move it to a permanent location and delete the temp file afterwards")

	return &File{
		Path: path,
		Name: name,
		Size: int64(len(r.body)),
	}, nil
}

// dispositionFilename extracts the base filename from a Content-Disposition
// header, or "" when there is none usable
func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}

	var name string
	if _, params, err := mime.ParseMediaType(header); err == nil {
		name = strings.Trim(params["filename"], "'")
	}
	if name == "" {
		if m := filenamePattern.FindStringSubmatch(header); m != nil {
			name = m[1]
		}
	}

	// never let the server pick a path outside the temp directory
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	switch name {
	case "", ".", "..", "/":
		return ""
	}
	return name
}
