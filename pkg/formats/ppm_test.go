package formats

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// buildBinaryPPM assembles a P6 file from a header and raw samples.
func buildBinaryPPM(width, height, maxval int, samples []byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "P6\n%d %d\n%d\n", width, height, maxval)
	buf.Write(samples)
	return buf.Bytes()
}

func TestParsePPM_BinaryFlipAndSwap(t *testing.T) {
	// 2x2, 12 known sample bytes in file order (top row first, RGB).
	samples := []byte{
		10, 11, 12, 20, 21, 22, // top row
		30, 31, 32, 40, 41, 42, // bottom row
	}
	ppm, err := ParsePPM(buildBinaryPPM(2, 2, 255, samples))
	if err != nil {
		t.Fatalf("failed to parse P6: %v", err)
	}

	if ppm.Width != 2 || ppm.Height != 2 {
		t.Errorf("expected 2x2, got %dx%d", ppm.Width, ppm.Height)
	}
	if !ppm.Binary {
		t.Error("expected binary variant")
	}
	if len(ppm.Pixels) != 12 {
		t.Fatalf("expected 12 pixel bytes, got %d", len(ppm.Pixels))
	}

	// First emitted triple = channel-swapped last input triple, and the last
	// emitted triple = channel-swapped first input triple.
	if got, want := ppm.Pixels[0:3], []byte{42, 41, 40}; !bytes.Equal(got, want) {
		t.Errorf("first triple: got %v, want %v", got, want)
	}
	if got, want := ppm.Pixels[9:12], []byte{12, 11, 10}; !bytes.Equal(got, want) {
		t.Errorf("last triple: got %v, want %v", got, want)
	}
}

func TestParsePPM_ASCIIWithComments(t *testing.T) {
	src := `P3
# created by hand
# width and height follow
2 2
# maximum sample value
255
255 0 0   0 255 0
0 0 255   255 255 255
`
	ppm, err := ParsePPM([]byte(src))
	if err != nil {
		t.Fatalf("failed to parse P3: %v", err)
	}

	if ppm.Width != 2 || ppm.Height != 2 {
		t.Errorf("expected 2x2, got %dx%d", ppm.Width, ppm.Height)
	}
	if ppm.Binary {
		t.Error("expected ASCII variant")
	}

	// Last file pixel (white) comes out first; first file pixel (red) comes
	// out last, channel-swapped to BGR.
	if got, want := ppm.Pixels[0:3], []byte{255, 255, 255}; !bytes.Equal(got, want) {
		t.Errorf("first triple: got %v, want %v", got, want)
	}
	if got, want := ppm.Pixels[9:12], []byte{0, 0, 255}; !bytes.Equal(got, want) {
		t.Errorf("last triple: got %v, want %v", got, want)
	}
}

func TestParsePPM_BufferLength(t *testing.T) {
	samples := make([]byte, 3*3*3)
	ppm, err := ParsePPM(buildBinaryPPM(3, 3, 255, samples))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if len(ppm.Pixels) != 3*ppm.Width*ppm.Height {
		t.Errorf("buffer length %d != 3*%d*%d", len(ppm.Pixels), ppm.Width, ppm.Height)
	}
}

func TestParsePPM_UnsupportedFormat(t *testing.T) {
	tests := []struct {
		name  string
		magic string
	}{
		{"P2 grayscale", "P2"},
		{"P5 binary grayscale", "P5"},
		{"not a PPM", "JUNK"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(tt.magic + "\n2 2\n255\n")
			_, err := ParsePPM(data)
			if !errors.Is(err, ErrUnsupportedPPMFormat) {
				t.Errorf("expected ErrUnsupportedPPMFormat, got %v", err)
			}
		})
	}
}

func TestParsePPM_UnsupportedDepth(t *testing.T) {
	_, err := ParsePPM([]byte("P3\n2 2\n65535\n"))
	if !errors.Is(err, ErrUnsupportedPPMDepth) {
		t.Errorf("expected ErrUnsupportedPPMDepth, got %v", err)
	}
}

func TestParsePPM_MalformedHeader(t *testing.T) {
	_, err := ParsePPM([]byte("P6\ntwo 2\n255\n"))
	if !errors.Is(err, ErrMalformedPPMHeader) {
		t.Errorf("expected ErrMalformedPPMHeader, got %v", err)
	}
}

func TestParsePPM_InvalidDimensions(t *testing.T) {
	_, err := ParsePPM([]byte("P6\n0 2\n255\n"))
	if !errors.Is(err, ErrInvalidPPMSize) {
		t.Errorf("expected ErrInvalidPPMSize, got %v", err)
	}
}

func TestParsePPM_TruncatedBinary(t *testing.T) {
	// Declares 2x2 but carries a single sample byte.
	_, err := ParsePPM(buildBinaryPPM(2, 2, 255, []byte{1}))
	if !errors.Is(err, ErrTruncatedPPMData) {
		t.Errorf("expected ErrTruncatedPPMData, got %v", err)
	}
}

func TestParsePPM_TruncatedASCII(t *testing.T) {
	_, err := ParsePPM([]byte("P3\n2 2\n255\n1 2 3 4\n"))
	if !errors.Is(err, ErrTruncatedPPMData) {
		t.Errorf("expected ErrTruncatedPPMData, got %v", err)
	}
}

func TestParsePPM_EmptyData(t *testing.T) {
	_, err := ParsePPM(nil)
	if !errors.Is(err, ErrTruncatedPPMData) {
		t.Errorf("expected ErrTruncatedPPMData, got %v", err)
	}
}

func TestParsePPMFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.ppm")
	data := buildBinaryPPM(1, 1, 255, []byte{9, 8, 7})
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write PPM: %v", err)
	}

	ppm, err := ParsePPMFile(path)
	if err != nil {
		t.Fatalf("failed to parse PPM file: %v", err)
	}
	if got, want := ppm.Pixels, []byte{7, 8, 9}; !bytes.Equal(got, want) {
		t.Errorf("pixels: got %v, want %v", got, want)
	}
}

func TestParsePPMFile_Missing(t *testing.T) {
	_, err := ParsePPMFile(filepath.Join(t.TempDir(), "nope.ppm"))
	if err == nil {
		t.Error("expected error for missing PPM file")
	}
}
