package pulse

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/h2non/filetype"
	"golang.org/x/image/draw"

	// additional formats a host page might hand us
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeRGBA decodes an encoded image from memory and converts it into
// tightly packed rgba8 pixels starting at the origin.
func DecodeRGBA(buf []byte) (*image.RGBA, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("empty buffer: %w", ErrDecodeImage)
	}

	kind, _ := filetype.Match(buf)
	if kind != filetype.Unknown && !filetype.IsImage(buf) {
		return nil, fmt.Errorf("payload is %s, not an image: %w", kind.MIME.Value, ErrDecodeImage)
	}

	src, format, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		if kind != filetype.Unknown {
			return nil, fmt.Errorf("decode %s: %w: %w", kind.Extension, ErrDecodeImage, err)
		}

		return nil, fmt.Errorf("decode image: %w: %w", ErrDecodeImage, err)
	}

	iw, ih := src.Bounds().Dx(), src.Bounds().Dy()
	if iw == 0 || ih == 0 {
		return nil, fmt.Errorf("%s image has no pixels: %w", format, ErrDecodeImage)
	}

	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*iw {
		return rgba, nil
	}

	rgba := image.NewRGBA(image.Rect(0, 0, iw, ih))
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)

	return rgba, nil
}
