package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"

	"carrental-backend/internal/domain"
)

const DefaultMaxPhotoBytes = 5 << 20

// PhotoFile is one uploaded return photo.
type PhotoFile struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// PhotoEncoder turns uploaded files into storable data URLs.
type PhotoEncoder struct {
	maxBytes int64
}

func NewPhotoEncoder(maxBytes int64) *PhotoEncoder {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxPhotoBytes
	}
	return &PhotoEncoder{maxBytes: maxBytes}
}

// Encode converts up to MaxReturnPhotos files concurrently. The output keeps
// input order, and the first failing file fails the whole batch.
func (e *PhotoEncoder) Encode(ctx context.Context, files []PhotoFile) ([]string, error) {
	if len(files) > domain.MaxReturnPhotos {
		files = files[:domain.MaxReturnPhotos]
	}

	out := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			url, err := e.encodeOne(gctx, f)
			if err != nil {
				return fmt.Errorf("photo %d (%s): %w", i+1, f.Name, err)
			}
			out[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *PhotoEncoder) encodeOne(ctx context.Context, f PhotoFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Open == nil {
		return "", fmt.Errorf("no content")
	}

	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, e.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read: %w", err)
	}
	if int64(len(data)) > e.maxBytes {
		return "", &domain.ValidationError{Field: "photos", Message: fmt.Sprintf("each photo must be at most %d bytes", e.maxBytes)}
	}

	mediaType := strings.ReplaceAll(mimetype.Detect(data).String(), " ", "")
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
