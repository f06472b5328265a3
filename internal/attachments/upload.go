package attachments

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNoFile reports a multipart request without a file part.
var ErrNoFile = errors.New("no file in request")

// ReadUpload reads the named file part of a multipart request parsed with
// ParseMultipartForm. It returns ErrNoFile when the part is absent.
func ReadUpload(r *http.Request, field string, maxSize int64) ([]byte, Meta, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, Meta{}, ErrNoFile
	}
	if err != nil {
		return nil, Meta{}, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	defer file.Close()

	if maxSize > 0 && header.Size > maxSize {
		return nil, Meta{}, ErrFileTooLarge
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	return data, Meta{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}
