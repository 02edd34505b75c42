package iconview

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/esimov/iconview/utils"
)

// newCanvas returns a size x size image filled with bg.
func newCanvas(size int, bg color.NRGBA) *image.NRGBA {
	return imaging.New(size, size, bg)
}

// fitSquare scales src to fit a size x size box preserving its aspect ratio
// and centres it on a transparent canvas of exactly that size.
func fitSquare(src *image.NRGBA, size int) *image.NRGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	nw, nh := size, size
	if w > h {
		nh = utils.Max(1, int(math.Round(float64(h)*float64(size)/float64(w))))
	} else if h > w {
		nw = utils.Max(1, int(math.Round(float64(w)*float64(size)/float64(h))))
	}
	scaled := imaging.Resize(src, nw, nh, imaging.Lanczos)
	if nw == size && nh == size {
		return scaled
	}
	return imaging.PasteCenter(imaging.New(size, size, color.NRGBA{}), scaled)
}

// imgToNRGBA copies any image type into a new *image.NRGBA with min-point at (0, 0).
// The result never aliases src, so it can be modified and cached freely.
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := dstW * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}
	return dst
}
