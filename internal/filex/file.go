// Package filex reads local files for upload.
package filex

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// ErrTooLarge is returned when a file exceeds the caller's limit.
var ErrTooLarge = errors.New("file too large")

// ReadLimited reads the whole file at path, failing with ErrTooLarge when it
// is longer than limit bytes.
func ReadLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", path, ErrTooLarge, limit)
	}
	return data, nil
}

// ReadImage reads an image file and sniffs its content type. Files that do
// not look like images are rejected.
func ReadImage(path string, limit int64) ([]byte, string, error) {
	data, err := ReadLimited(path, limit)
	if err != nil {
		return nil, "", err
	}
	ct := http.DetectContentType(data)
	if len(ct) < 6 || ct[:6] != "image/" {
		return nil, "", fmt.Errorf("%s: not an image (%s)", path, ct)
	}
	return data, ct, nil
}
