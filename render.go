package iconview

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/esimov/iconview/imop"
	"github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// initialColor stands in for currentColor tokens still present at render
// time; it is the SVG initial value of the color property.
const initialColor = "#000000"

// Renderer turns transformed markup or bitmaps into square NRGBA images.
// It is a plain value without shared state, so copies may be used from
// several goroutines at once.
type Renderer struct {
	// Background pre-fills vector renders and is composited under bitmaps
	// when it is not fully transparent.
	Background color.NRGBA
	// Grayscale desaturates bitmaps.
	Grayscale bool
}

// RendererFor returns the renderer matching the render parameters.
func RendererFor(p RenderParams) Renderer {
	return Renderer{
		Background: p.Background,
		Grayscale:  p.Grayscale,
	}
}

// RenderMarkup parses the markup and rasterizes it, anti-aliased, into a
// size x size image pre-filled with the background. The drawing is fitted
// to the view box, keeping its aspect ratio, and centred.
func (r Renderer) RenderMarkup(markup string, size int) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "size %d", size)
	}
	if rootTagIndex(markup) < 0 {
		return nil, errors.Wrap(ErrInvalidMarkup, "no svg root element")
	}
	markup = strings.ReplaceAll(markup, currentColorToken, initialColor)

	icon, err := oksvg.ReadIconStream(strings.NewReader(markup), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidMarkup, "%v", err)
	}

	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		w, h = float64(size), float64(size)
	}
	scale := float64(size) / math.Max(w, h)
	ow, oh := w*scale, h*scale
	icon.SetTarget((float64(size)-ow)/2, (float64(size)-oh)/2, ow, oh)

	img := newCanvas(size, r.Background)
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// RenderBitmap scales the bitmap to size x size, preserving its aspect ratio,
// optionally desaturates it, and composites it over the background when the
// background is not fully transparent.
func (r Renderer) RenderBitmap(bmp image.Image, size int) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "size %d", size)
	}
	if bmp == nil || bmp.Bounds().Empty() {
		return nil, errors.New("empty bitmap")
	}

	img := imgToNRGBA(bmp)
	if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
		img = fitSquare(img, size)
	}
	if r.Grayscale {
		img = Grayscale(img)
	}
	if r.Background.A > 0 {
		img = imop.Composite(imop.SrcOver, img, newCanvas(size, r.Background))
	}
	return img, nil
}
