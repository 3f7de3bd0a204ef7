package media

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// encodeTestImage renders a width x height image in the given format
func encodeTestImage(t *testing.T, width, height int, format string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestNormalize_Passthrough(t *testing.T) {
	data := encodeTestImage(t, 800, 600, "png")

	out, err := Normalize(data, 1568)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if out.Resized {
		t.Error("image under the cap should not be resized")
	}
	if !bytes.Equal(out.Data, data) {
		t.Error("passthrough should be byte-identical")
	}
	if out.Width != 800 || out.Height != 600 {
		t.Errorf("dimensions = %dx%d, want 800x600", out.Width, out.Height)
	}
}

func TestNormalize_CapsLongEdge(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		maxDim        int
		wantW, wantH  int
	}{
		{"wide", 2000, 1000, 1568, 1568, 784},
		{"tall", 1000, 2000, 1568, 784, 1568},
		{"square", 1600, 1600, 1408, 1408, 1408},
		{"wide titan cap", 2816, 1408, 1408, 1408, 704},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encodeTestImage(t, tt.width, tt.height, "png")

			out, err := Normalize(data, tt.maxDim)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if !out.Resized {
				t.Fatal("expected a resize")
			}
			if out.Width != tt.wantW || out.Height != tt.wantH {
				t.Errorf("dimensions = %dx%d, want %dx%d", out.Width, out.Height, tt.wantW, tt.wantH)
			}

			// Aspect ratio preserved within one pixel of truncation
			wantRatio := float64(tt.width) / float64(tt.height)
			gotRatio := float64(out.Width) / float64(out.Height)
			maxErr := 1.0 / float64(out.Height)
			if diff := wantRatio - gotRatio; diff > maxErr || diff < -maxErr {
				t.Errorf("aspect ratio %f deviates from %f beyond rounding", gotRatio, wantRatio)
			}

			// Output must decode in the source format
			decoded, format, err := image.Decode(bytes.NewReader(out.Data))
			if err != nil {
				t.Fatalf("decode output: %v", err)
			}
			if format != "png" {
				t.Errorf("format = %q, want png", format)
			}
			if decoded.Bounds().Dx() != tt.wantW {
				t.Errorf("decoded width = %d, want %d", decoded.Bounds().Dx(), tt.wantW)
			}
		})
	}
}

func TestNormalize_PreservesJPEG(t *testing.T) {
	data := encodeTestImage(t, 2000, 500, "jpeg")

	out, err := Normalize(data, 1000)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if out.Format != "jpeg" {
		t.Errorf("format = %q, want jpeg", out.Format)
	}
	if out.Width != 1000 || out.Height != 250 {
		t.Errorf("dimensions = %dx%d, want 1000x250", out.Width, out.Height)
	}
}

func TestNormalizePNG_ConvertsFormat(t *testing.T) {
	data := encodeTestImage(t, 400, 300, "jpeg")

	out, err := NormalizePNG(data, 1408)
	if err != nil {
		t.Fatalf("NormalizePNG: %v", err)
	}
	if out.Format != "png" {
		t.Errorf("format = %q, want png", out.Format)
	}
	if out.Resized {
		t.Error("image under the cap should keep its dimensions")
	}
	if _, format, err := image.Decode(bytes.NewReader(out.Data)); err != nil || format != "png" {
		t.Errorf("output decodes as %q (%v), want png", format, err)
	}
}

func TestNormalizePNG_CapsLongEdge(t *testing.T) {
	data := encodeTestImage(t, 2816, 704, "png")

	out, err := NormalizePNG(data, 1408)
	if err != nil {
		t.Fatalf("NormalizePNG: %v", err)
	}
	if out.Width != 1408 || out.Height != 352 {
		t.Errorf("dimensions = %dx%d, want 1408x352", out.Width, out.Height)
	}
}

func TestNormalize_RejectsGarbage(t *testing.T) {
	if _, err := Normalize([]byte("not an image"), 1568); err == nil {
		t.Error("expected error for undecodable input")
	}
	if _, err := Normalize(nil, 1568); err == nil {
		t.Error("expected error for empty input")
	}
}
