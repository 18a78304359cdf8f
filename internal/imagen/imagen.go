// Package imagen handles producto image uploads and content-type detection.
package imagen

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/LDtito/zend-crud-app/internal/model"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxSize is the largest accepted upload, 2 MiB.
const DefaultMaxSize int64 = 2 * 1024 * 1024

// AllowedTypes lists the declared MIME types accepted on upload.
var AllowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadedFile is a file received from a client.
type UploadedFile struct {
	Filename    string
	ContentType string
	Size        int64
	open        func() (io.ReadCloser, error)
}

// Open returns a reader over the file content.
func (f *UploadedFile) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, fmt.Errorf("uploaded file %q has no content", f.Filename)
	}
	return f.open()
}

// NewUploadedFile wraps in-memory content.
func NewUploadedFile(filename, contentType string, data []byte) *UploadedFile {
	return &UploadedFile{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// FromMultipart wraps a multipart file header.
func FromMultipart(fh *multipart.FileHeader) *UploadedFile {
	return &UploadedFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// Process checks the declared type and size of f and reads its content.
func Process(f *UploadedFile, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	if !AllowedTypes[f.ContentType] {
		return nil, model.NewDomainError(model.ErrCodeInvalidImage,
			fmt.Sprintf("tipo de imagen no permitido: %q", f.ContentType))
	}
	if f.Size > maxSize {
		return nil, model.NewDomainError(model.ErrCodeInvalidImage,
			fmt.Sprintf("la imagen excede el tamaño máximo de %d bytes", maxSize))
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, model.NewDomainError(model.ErrCodeInvalidImage,
			fmt.Sprintf("la imagen excede el tamaño máximo de %d bytes", maxSize))
	}
	if len(data) == 0 {
		return nil, model.NewDomainError(model.ErrCodeInvalidImage, "la imagen está vacía")
	}

	return data, nil
}

// Detect sniffs the MIME type from content.
func Detect(content []byte) string {
	return mimetype.Detect(content).String()
}

// Image is a stored image ready to be served.
type Image struct {
	Data        []byte
	ContentType string
}

// NewImage wraps stored bytes with their sniffed content type.
func NewImage(data []byte) *Image {
	return &Image{Data: data, ContentType: Detect(data)}
}
