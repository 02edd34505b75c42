package imop

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComp_OpNames(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("src_over", SrcOver.String())
	assert.Equal("xor", Xor.String())
	assert.Equal("unknown", Op(42).String())
}

func TestComp_Ops(t *testing.T) {
	transparent := color.NRGBA{}
	cyan := color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	magenta := color.NRGBA{R: 233, G: 30, B: 99, A: 255}

	rect := image.Rect(0, 0, 10, 10)
	source := image.NewNRGBA(rect)
	backdrop := image.NewNRGBA(rect)

	// The source covers the bottom left, the backdrop the top right corner;
	// they overlap around the center.
	draw.Draw(source, image.Rect(0, 4, 6, 10), &image.Uniform{cyan}, image.Point{}, draw.Src)
	draw.Draw(backdrop, image.Rect(4, 0, 10, 6), &image.Uniform{magenta}, image.Point{}, draw.Src)

	testCases := []struct {
		op         Op
		topRight   color.NRGBA
		bottomLeft color.NRGBA
		center     color.NRGBA
	}{
		{Clear, transparent, transparent, transparent},
		{Copy, transparent, cyan, cyan},
		{Dst, magenta, transparent, magenta},
		{SrcOver, magenta, cyan, cyan},
		{DstOver, magenta, cyan, magenta},
		{SrcIn, transparent, transparent, cyan},
		{DstIn, transparent, transparent, magenta},
		{SrcOut, transparent, cyan, transparent},
		{DstOut, magenta, transparent, transparent},
		{SrcAtop, magenta, transparent, cyan},
		{DstAtop, transparent, cyan, magenta},
		{Xor, magenta, cyan, transparent},
	}

	for _, tc := range testCases {
		t.Run(tc.op.String(), func(t *testing.T) {
			out := Composite(tc.op, source, backdrop)
			assert.Equal(t, rect, out.Bounds())
			assert.Equal(t, tc.topRight, out.NRGBAAt(9, 0))
			assert.Equal(t, tc.bottomLeft, out.NRGBAAt(0, 9))
			assert.Equal(t, tc.center, out.NRGBAAt(5, 5))
		})
	}
}

func TestComp_SemiTransparentOver(t *testing.T) {
	rect := image.Rect(0, 0, 1, 1)
	src := image.NewNRGBA(rect)
	bg := image.NewNRGBA(rect)
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 128})
	bg.SetNRGBA(0, 0, color.NRGBA{B: 255, A: 255})

	px := Composite(SrcOver, src, bg).NRGBAAt(0, 0)
	assert.Equal(t, uint8(255), px.A)
	assert.InDelta(t, 128, int(px.R), 1)
	assert.InDelta(t, 127, int(px.B), 1)
}
