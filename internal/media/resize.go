// Package media normalizes images before they are embedded inline in model
// request payloads.
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	_ "image/gif" // register GIF decoder

	_ "golang.org/x/image/webp" // register WebP decoder
)

const jpegQuality = 90

// Normalized is the result of a normalization pass
type Normalized struct {
	Data    []byte
	Format  string // png, jpeg, gif, webp (webp re-encodes as png)
	Width   int
	Height  int
	Resized bool
}

// Normalize caps the long edge of an image at maxDim, preserving aspect
// ratio, and re-encodes in the source format. Images already within the cap
// pass through byte-identical.
func Normalize(data []byte, maxDim int) (*Normalized, error) {
	img, format, err := decode(data)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width <= maxDim && height <= maxDim {
		return &Normalized{Data: data, Format: format, Width: width, Height: height}, nil
	}

	scaled, newWidth, newHeight := scaleToFit(img, width, height, maxDim)
	encoded, outFormat, err := encode(scaled, format)
	if err != nil {
		return nil, err
	}

	return &Normalized{
		Data:    encoded,
		Format:  outFormat,
		Width:   newWidth,
		Height:  newHeight,
		Resized: true,
	}, nil
}

// NormalizePNG caps the long edge at maxDim and always re-encodes as PNG.
// Used where the payload requires one consistent inline format (Titan inputs).
func NormalizePNG(data []byte, maxDim int) (*Normalized, error) {
	img, _, err := decode(data)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	resized := false
	if width > maxDim || height > maxDim {
		img, width, height = scaleToFit(img, width, height, maxDim)
		resized = true
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return &Normalized{
		Data:    buf.Bytes(),
		Format:  "png",
		Width:   width,
		Height:  height,
		Resized: resized,
	}, nil
}

func decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image data")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// scaleToFit scales so the longer edge equals maxDim; the shorter edge is
// truncated to integer pixels.
func scaleToFit(src image.Image, width, height, maxDim int) (image.Image, int, int) {
	var newWidth, newHeight int
	if width > height {
		newWidth = maxDim
		newHeight = height * maxDim / width
	} else {
		newHeight = maxDim
		newWidth = width * maxDim / height
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst, newWidth, newHeight
}

// encode re-encodes in the source format. GIF and WebP fall back to PNG:
// stdlib has no webp encoder and animated GIF frames are not worth preserving
// for a single-frame model input.
func encode(img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer
	switch format {
	case "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, "", fmt.Errorf("encode jpeg: %w", err)
		}
		return buf.Bytes(), "jpeg", nil
	default:
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), "png", nil
	}
}
