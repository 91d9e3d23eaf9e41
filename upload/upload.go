// Package upload checks listing and avatar images before they are
// forwarded to the backend.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"

	"github.com/leonexus/site/api"
	_ "golang.org/x/image/webp"
)

const (
	MaxFiles     = 10
	MaxFileSize  = 5 << 20
	MinDimension = 100
	MaxDimension = 8000
)

var (
	ErrTooManyFiles = fmt.Errorf("You can upload at most %d images", MaxFiles)
	ErrUnsupported  = errors.New("unsupported image format")
)

var allowedFormats = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// ValidateImage checks one image by its decoded header and returns its
// content type.
func ValidateImage(name string, data []byte) (string, error) {
	if len(data) > MaxFileSize {
		return "", fmt.Errorf("%s is larger than 5 MB", name)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, ErrUnsupported)
	}
	contentType, ok := allowedFormats[format]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrUnsupported)
	}
	if cfg.Width < MinDimension || cfg.Height < MinDimension {
		return "", fmt.Errorf("%s must be at least %dx%d pixels", name, MinDimension, MinDimension)
	}
	if cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		return "", fmt.Errorf("%s must be at most %dx%d pixels", name, MaxDimension, MaxDimension)
	}
	return contentType, nil
}

// Prepare validates uploaded files and loads them for forwarding. Empty
// file inputs are skipped.
func Prepare(files []*multipart.FileHeader) ([]api.File, error) {
	var nonEmpty []*multipart.FileHeader
	for _, fh := range files {
		if fh != nil && fh.Size > 0 {
			nonEmpty = append(nonEmpty, fh)
		}
	}
	if len(nonEmpty) > MaxFiles {
		return nil, ErrTooManyFiles
	}

	out := make([]api.File, 0, len(nonEmpty))
	for _, fh := range nonEmpty {
		if fh.Size > MaxFileSize {
			return nil, fmt.Errorf("%s is larger than 5 MB", fh.Filename)
		}
		data, err := readAll(fh)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		contentType, err := ValidateImage(fh.Filename, data)
		if err != nil {
			return nil, err
		}
		out = append(out, api.File{
			Name:        fh.Filename,
			ContentType: contentType,
			Reader:      bytes.NewReader(data),
		})
	}
	return out, nil
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, MaxFileSize+1))
}
