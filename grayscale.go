package iconview

import (
	"image"

	"github.com/disintegration/imaging"
)

// Grayscale converts the image to grayscale using the Rec. 601 luma weights.
// The alpha channel is kept so that transparent icon backgrounds survive.
func Grayscale(src *image.NRGBA) *image.NRGBA {
	return imaging.Grayscale(src)
}
