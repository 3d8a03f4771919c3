// Package watermark stamps the signature asset onto generated rasters.
package watermark

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"
)

const (
	defaultScale   = 0.15 // signature width relative to the image width
	defaultMargin  = 0.02 // distance from the bottom-right corner
	defaultOpacity = 0.85
)

type Options struct {
	Scale   float64
	Margin  float64
	Opacity float64
}

// overlays a signature image in the bottom-right corner
type Watermarker struct {
	path string
	opts Options

	once      sync.Once
	signature image.Image
	loadErr   error
}

// the signature file is read on first use
func New(path string, opts Options) *Watermarker {
	if opts.Scale <= 0 || opts.Scale > 1 {
		opts.Scale = defaultScale
	}

	if opts.Margin < 0 || opts.Margin > 0.5 {
		opts.Margin = defaultMargin
	}

	if opts.Opacity <= 0 || opts.Opacity > 1 {
		opts.Opacity = defaultOpacity
	}

	return &Watermarker{path: path, opts: opts}
}

// creates a watermarker from an already decoded signature
func NewFromImage(signature image.Image, opts Options) *Watermarker {
	w := New("", opts)
	w.once.Do(func() { w.signature = signature })

	return w
}

func (w *Watermarker) load() (image.Image, error) {
	w.once.Do(func() {
		w.signature, w.loadErr = imaging.Open(w.path)
	})

	if w.loadErr != nil {
		return nil, fmt.Errorf("failed to load signature %q: %w", w.path, w.loadErr)
	}

	return w.signature, nil
}

// decodes data, overlays the signature and re-encodes as PNG
func (w *Watermarker) Apply(data []byte) ([]byte, error) {
	signature, err := w.load()
	if err != nil {
		return nil, err
	}

	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	width := int(float64(bounds.Dx()) * w.opts.Scale)
	if width < 1 {
		return nil, fmt.Errorf("image too small to watermark: %dx%d", bounds.Dx(), bounds.Dy())
	}

	mark := imaging.Resize(signature, width, 0, imaging.Lanczos)
	margin := int(float64(bounds.Dx()) * w.opts.Margin)

	pos := image.Pt(
		bounds.Max.X-mark.Bounds().Dx()-margin,
		bounds.Max.Y-mark.Bounds().Dy()-margin,
	)

	out := imaging.Overlay(src, mark, pos, w.opts.Opacity)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), nil
}
