package service_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestPhotoEncoder_Encode(t *testing.T) {
	ctx := context.Background()
	enc := service.NewPhotoEncoder(0)

	t.Run("No files", func(t *testing.T) {
		out, err := enc.Encode(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("Detects media type", func(t *testing.T) {
		out, err := enc.Encode(ctx, []service.PhotoFile{textPhoto("front.png", string(pngHeader))})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngHeader), out[0])
	})

	t.Run("Keeps input order and caps the batch", func(t *testing.T) {
		files := make([]service.PhotoFile, 8)
		for i := range files {
			files[i] = textPhoto(fmt.Sprintf("p%d.txt", i), fmt.Sprintf("photo number %d", i))
		}

		out, err := enc.Encode(ctx, files)
		require.NoError(t, err)
		require.Len(t, out, domain.MaxReturnPhotos)
		for i, url := range out {
			idx := strings.Index(url, ";base64,")
			require.Positive(t, idx)
			raw, err := base64.StdEncoding.DecodeString(url[idx+len(";base64,"):])
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("photo number %d", i), string(raw))
		}
	})

	t.Run("One failure aborts the batch", func(t *testing.T) {
		files := []service.PhotoFile{
			textPhoto("a.txt", "a"),
			failingPhoto("b.txt"),
			textPhoto("c.txt", "c"),
		}
		out, err := enc.Encode(ctx, files)
		assert.Nil(t, out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "b.txt")
	})

	t.Run("Oversize photo rejected", func(t *testing.T) {
		small := service.NewPhotoEncoder(4)
		_, err := small.Encode(ctx, []service.PhotoFile{textPhoto("big.txt", "too large")})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Missing content", func(t *testing.T) {
		_, err := enc.Encode(ctx, []service.PhotoFile{{Name: "empty"}})
		assert.Error(t, err)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := enc.Encode(cctx, []service.PhotoFile{textPhoto("a.txt", "a")})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
