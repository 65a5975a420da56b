package notifier

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-resty/resty/v2"
)

const (
	maxImageDimension = 800
	jpegQuality       = 85
)

// imageFetcher downloads an image and normalizes it for Telegram
type imageFetcher struct {
	client *resty.Client
}

func newImageFetcher() *imageFetcher {
	return &imageFetcher{
		client: resty.New().
			SetTimeout(30 * time.Second).
			SetRetryCount(1),
	}
}

// fetch downloads the image at url and returns it as a bounded JPEG
func (f *imageFetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode())
	}

	return normalizeImage(resp.Body())
}

// normalizeImage re-encodes data as a JPEG bounded to
// maxImageDimension on both sides, preserving aspect ratio.
func normalizeImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return buf.Bytes(), nil
}
