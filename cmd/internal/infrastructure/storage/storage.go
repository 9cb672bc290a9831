package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrNotFound is returned by Open when no object is stored under the name.
var ErrNotFound = errors.New("stored file not found")

// FileStore keeps uploaded note files under generated names.
type FileStore interface {
	// Save writes the content of r under name.
	Save(ctx context.Context, name string, r io.Reader, contentType string) error

	// Open streams back the content stored under name. Callers must close it.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// NewObjectName builds a storage name from the current time and a random
// component, keeping the extension of the uploaded file.
func NewObjectName(ext string) string {
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), strings.ToLower(ext))
}

// MediaType returns the declared type unless it is missing or generic, in
// which case the content is sniffed. r is rewound before returning.
func MediaType(r io.ReadSeeker, declared string) (string, error) {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared, nil
	}

	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", err
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return mtype.String(), nil
}
