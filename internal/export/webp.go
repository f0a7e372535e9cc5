// Package export converts decoded textures into standard image formats.
package export

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/meshtools/objkit/pkg/formats"
)

// ToImage converts a decoded PPM back into a top-to-bottom RGBA image for
// the standard image pipeline. The pixel buffer is the render-ready layout
// (linear reversal at triple granularity, BGR), so the conversion walks it
// backwards and swaps the channels back.
func ToImage(ppm *formats.PPM) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, ppm.Width, ppm.Height))

	total := len(ppm.Pixels)
	for j := 0; j < total; j += 3 {
		p := (total - 3 - j) / 3 // original file pixel index, top row first
		x := p % ppm.Width
		y := p / ppm.Width
		img.SetNRGBA(x, y, color.NRGBA{
			R: ppm.Pixels[j+2],
			G: ppm.Pixels[j+1],
			B: ppm.Pixels[j],
			A: 255,
		})
	}
	return img
}

// WriteWebP encodes the decoded texture as a WebP file. When maxSize > 0 and
// either dimension exceeds it, the image is downscaled so its longest edge
// equals maxSize, preserving aspect ratio.
func WriteWebP(ppm *formats.PPM, path string, maxSize int) error {
	var img image.Image = ToImage(ppm)

	if maxSize > 0 && (ppm.Width > maxSize || ppm.Height > maxSize) {
		img = scaleDown(img, maxSize)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// scaleDown resizes img so its longest edge equals maxSize.
func scaleDown(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if w >= h {
		h = h * maxSize / w
		w = maxSize
	} else {
		w = w * maxSize / h
		h = maxSize
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
