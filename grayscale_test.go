package iconview

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

const ImgWidth = 10
const ImgHeight = 10

func TestGrayscale(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, ImgWidth, ImgHeight))
	for i := 0; i < img.Bounds().Dx(); i++ {
		for j := 0; j < img.Bounds().Dy(); j++ {
			img.SetNRGBA(i, j, color.NRGBA{uint8(i * 20), uint8(j * 20), 177, uint8(100 + i)})
		}
	}

	gray := Grayscale(img)
	for i := 0; i < gray.Bounds().Dx(); i++ {
		for j := 0; j < gray.Bounds().Dy(); j++ {
			c := gray.NRGBAAt(i, j)
			if c.R != c.G || c.R != c.B {
				t.Errorf("R, G, B value expected to be equal. Got %v, %v, %v", c.R, c.G, c.B)
			}
			assert.Equal(t, uint8(100+i), c.A, "alpha must be kept")
		}
	}
}

func TestGrayscale_Luma(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{B: 255, A: 255})

	gray := Grayscale(img)
	assert.Equal(t, uint8(76), gray.NRGBAAt(0, 0).R)
	assert.Equal(t, uint8(150), gray.NRGBAAt(1, 0).R)
	assert.Equal(t, uint8(29), gray.NRGBAAt(2, 0).R)
}
