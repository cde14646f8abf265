package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadFiles_SingleFile(t *testing.T) {
	var gotContentType string
	var gotFields map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotFields = readMultipartFields(t, r)
		w.Write([]byte(`{"imageUrl":"/uploads/a.png"}`))
	}))
	defer srv.Close()

	client, _, _ := newTestClient(srv.URL)

	payload, err := client.UploadFiles(context.Background(), "/api/upload", File{
		Name:    "a.png",
		Content: strings.NewReader("png-bytes"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(gotContentType, "multipart/form-data") {
		t.Errorf("expected multipart content type, got %q", gotContentType)
	}
	if strings.Contains(gotContentType, "application/json") {
		t.Errorf("JSON content type must never reach a file upload, got %q", gotContentType)
	}
	if len(gotFields) != 1 || gotFields["file"] != "png-bytes" {
		t.Errorf("expected single 'file' field, got %+v", gotFields)
	}

	// Payload only, not the envelope.
	if string(payload) != `{"imageUrl":"/uploads/a.png"}` {
		t.Errorf("unexpected payload: %s", payload)
	}
}

func TestUploadFiles_MultipleFilesUseIndexedFields(t *testing.T) {
	var gotFields map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFields = readMultipartFields(t, r)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, _, _ := newTestClient(srv.URL)

	_, err := client.UploadFiles(context.Background(), "/api/upload",
		File{Name: "a.png", Content: strings.NewReader("first")},
		File{Name: "b.png", Content: strings.NewReader("second")},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gotFields) != 2 {
		t.Fatalf("expected two distinct fields, got %+v", gotFields)
	}
	if gotFields["file0"] != "first" || gotFields["file1"] != "second" {
		t.Errorf("expected indexed file fields, got %+v", gotFields)
	}
}

func TestUploadFiles_ValidationBeforeNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	client, _, _ := newTestClient(srv.URL)

	tests := []struct {
		name  string
		files []File
	}{
		{name: "no files"},
		{name: "nil content", files: []File{{Name: "a.png"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.UploadFiles(context.Background(), "/api/upload", tt.files...)

			var validationErr *UploadValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected *UploadValidationError, got %v", err)
			}
		})
	}

	if requests != 0 {
		t.Errorf("expected no network calls, got %d", requests)
	}
}

func readMultipartFields(t *testing.T, r *http.Request) map[string]string {
	t.Helper()
	reader, err := r.MultipartReader()
	if err != nil {
		t.Fatalf("failed to open multipart reader: %v", err)
	}

	fields := map[string]string{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read multipart part: %v", err)
		}
		content, err := io.ReadAll(part)
		if err != nil {
			t.Fatalf("failed to read part content: %v", err)
		}
		fields[part.FormName()] = string(content)
	}
	return fields
}
