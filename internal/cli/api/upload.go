package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// File is one upload entry. Name is the filename sent in the form part.
type File struct {
	Name    string
	Content io.Reader
}

// FileFromPath opens a file on disk for upload. The caller owns no cleanup;
// the handle is consumed by UploadFiles.
func FileFromPath(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to open upload file: %w", err)
	}
	return File{Name: filepath.Base(path), Content: f}, nil
}

// UploadFiles sends files as a multipart form. A single file goes under the
// field "file"; multiple files get indexed fields "file0", "file1", and so
// on. The multipart writer supplies its own boundary content type and no
// explicit JSON content type is ever attached. Unlike the generic verbs,
// only the response payload is returned, not the envelope.
func (c *Client) UploadFiles(ctx context.Context, path string, files ...File) ([]byte, error) {
	if len(files) == 0 {
		return nil, &UploadValidationError{Reason: "no files provided"}
	}
	for _, f := range files {
		if f.Content == nil {
			return nil, &UploadValidationError{Reason: fmt.Sprintf("file %q has no content", f.Name)}
		}
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for i, f := range files {
		field := "file"
		if len(files) > 1 {
			field = fmt.Sprintf("file%d", i)
		}
		part, err := writer.CreateFormFile(field, f.Name)
		if err != nil {
			return nil, &SetupError{Err: err}
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, &SetupError{Err: err}
		}
		if closer, ok := f.Content.(io.Closer); ok {
			_ = closer.Close()
		}
	}
	if err := writer.Close(); err != nil {
		return nil, &SetupError{Err: err}
	}

	resp, err := c.send(ctx, http.MethodPost, path, nil, &buf, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
