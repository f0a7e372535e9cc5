// Package formats provides decoders for model and texture file formats.
// PPM (portable pixel map) decoder for 8-bit P3/P6 textures.
package formats

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// PPM format errors.
var (
	ErrUnsupportedPPMFormat = errors.New("unsupported PPM format: expected P3 or P6")
	ErrUnsupportedPPMDepth  = errors.New("unsupported PPM depth: only 8-bit samples supported")
	ErrMalformedPPMHeader   = errors.New("malformed PPM header")
	ErrTruncatedPPMData     = errors.New("truncated PPM data")
	ErrInvalidPPMSize       = errors.New("invalid PPM dimensions")
)

// PPM is a decoded image ready for texture upload: row 0 of Pixels is the
// bottom row of the image and each pixel is stored as B, G, R.
type PPM struct {
	Width    int
	Height   int
	MaxValue int
	Binary   bool   // true for P6, false for P3
	Pixels   []byte // len == 3*Width*Height, bottom-to-top, BGR
}

// ppmReader is a byte cursor over raw PPM data.
type ppmReader struct {
	data []byte
	pos  int
}

// ParsePPM decodes PPM data from a byte slice.
func ParsePPM(data []byte) (*PPM, error) {
	r := &ppmReader{data: data}

	magic, err := r.token()
	if err != nil {
		return nil, fmt.Errorf("%w: reading magic", ErrTruncatedPPMData)
	}
	if magic != "P3" && magic != "P6" {
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedPPMFormat, magic)
	}

	ppm := &PPM{Binary: magic == "P6"}

	if ppm.Width, err = r.headerInt("width"); err != nil {
		return nil, err
	}
	if ppm.Height, err = r.headerInt("height"); err != nil {
		return nil, err
	}
	if ppm.Width <= 0 || ppm.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidPPMSize, ppm.Width, ppm.Height)
	}
	if ppm.MaxValue, err = r.headerInt("max value"); err != nil {
		return nil, err
	}
	if ppm.MaxValue > 255 {
		return nil, fmt.Errorf("%w: max value %d", ErrUnsupportedPPMDepth, ppm.MaxValue)
	}
	if ppm.MaxValue <= 0 {
		return nil, fmt.Errorf("%w: max value %d", ErrMalformedPPMHeader, ppm.MaxValue)
	}

	total := ppm.Width * ppm.Height * 3
	samples := make([]byte, total)

	if ppm.Binary {
		// Exactly one whitespace byte separates the max value from the samples.
		if err := r.skipOne(); err != nil {
			return nil, fmt.Errorf("%w: after max value", ErrTruncatedPPMData)
		}
		if len(r.data)-r.pos < total {
			return nil, fmt.Errorf("%w: want %d sample bytes, have %d",
				ErrTruncatedPPMData, total, len(r.data)-r.pos)
		}
		copy(samples, r.data[r.pos:r.pos+total])
	} else {
		for i := 0; i < total; i++ {
			tok, err := r.token()
			if err != nil {
				return nil, fmt.Errorf("%w: sample %d of %d", ErrTruncatedPPMData, i, total)
			}
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("%w: sample %d: %v", ErrMalformedPPMHeader, i, err)
			}
			samples[i] = byte(v)
		}
	}

	// Single pass: reverse the buffer at triple granularity (vertical flip for
	// a bottom-left origin) while swapping each triple from RGB to BGR.
	ppm.Pixels = make([]byte, total)
	for i := 0; i < total; i += 3 {
		out := total - 3 - i
		ppm.Pixels[out] = samples[i+2]
		ppm.Pixels[out+1] = samples[i+1]
		ppm.Pixels[out+2] = samples[i]
	}

	return ppm, nil
}

// ParsePPMFile decodes a PPM file from disk.
func ParsePPMFile(path string) (*PPM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading PPM file: %w", err)
	}
	return ParsePPM(data)
}

// skipSpaceAndComments advances past whitespace and '#' comment lines,
// however they are interleaved.
func (r *ppmReader) skipSpaceAndComments() {
	for r.pos < len(r.data) {
		c := r.data[r.pos]
		switch {
		case isPPMSpace(c):
			r.pos++
		case c == '#':
			for r.pos < len(r.data) && r.data[r.pos] != '\n' {
				r.pos++
			}
		default:
			return
		}
	}
}

// token returns the next whitespace-delimited token, skipping comments.
func (r *ppmReader) token() (string, error) {
	r.skipSpaceAndComments()
	if r.pos >= len(r.data) {
		return "", errors.New("unexpected end of data")
	}
	start := r.pos
	for r.pos < len(r.data) && !isPPMSpace(r.data[r.pos]) && r.data[r.pos] != '#' {
		r.pos++
	}
	return string(r.data[start:r.pos]), nil
}

// headerInt reads one whitespace-delimited header integer.
func (r *ppmReader) headerInt(name string) (int, error) {
	tok, err := r.token()
	if err != nil {
		return 0, fmt.Errorf("%w: missing %s", ErrTruncatedPPMData, name)
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedPPMHeader, name, tok)
	}
	return v, nil
}

// skipOne consumes the single whitespace byte after the max value token.
func (r *ppmReader) skipOne() error {
	if r.pos >= len(r.data) {
		return errors.New("unexpected end of data")
	}
	r.pos++
	return nil
}

func isPPMSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
