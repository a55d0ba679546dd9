package httputil

import (
	"bytes"
	"fmt"
	"mime/multipart"
)

// CreateForm builds a parsed multipart form holding a single file part
// named "file". Handlers under test receive the same structure gin
// produces from a real upload.
func CreateForm(content []byte, fileName string) (*multipart.Form, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form writer: %w", err)
	}

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(int64(buf.Len()) + 1024)
	if err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}

	return form, nil
}
