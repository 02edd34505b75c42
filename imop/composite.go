// Package imop implements the Porter-Duff composition operations used for
// mixing a rendered icon with its backdrop. The image/draw package only
// offers source-over and source; this package covers the remaining ones.
package imop

import (
	"image"
	"image/color"
)

// Op is a Porter-Duff composition operator.
type Op int

// The supported composition operators.
const (
	Clear Op = iota
	Copy
	Dst
	SrcOver
	DstOver
	SrcIn
	DstIn
	SrcOut
	DstOut
	SrcAtop
	DstAtop
	Xor
)

var opNames = [...]string{
	Clear:   "clear",
	Copy:    "copy",
	Dst:     "dst",
	SrcOver: "src_over",
	DstOver: "dst_over",
	SrcIn:   "src_in",
	DstIn:   "dst_in",
	SrcOut:  "src_out",
	DstOut:  "dst_out",
	SrcAtop: "src_atop",
	DstAtop: "dst_atop",
	Xor:     "xor",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "unknown"
	}
	return opNames[op]
}

// factors returns the Porter-Duff weights (Fa, Fb) of the source and the
// backdrop for source alpha as and backdrop alpha ab.
func (op Op) factors(as, ab float64) (fa, fb float64) {
	switch op {
	case Copy:
		return 1, 0
	case Dst:
		return 0, 1
	case SrcOver:
		return 1, 1 - as
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	}
	return 0, 0
}

// Composite composes src over backdrop with op and returns a new image with
// the bounds of backdrop. Both images are addressed from their minimum point,
// so src pixels outside backdrop are ignored and missing src pixels count as
// transparent.
func Composite(op Op, src, backdrop *image.NRGBA) *image.NRGBA {
	b := backdrop.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	sb := src.Bounds()

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			var s color.NRGBA
			if x < sb.Dx() && y < sb.Dy() {
				s = src.NRGBAAt(sb.Min.X+x, sb.Min.Y+y)
			}
			d := backdrop.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			out.SetNRGBA(x, y, compose(op, s, d))
		}
	}
	return out
}

// compose mixes one source pixel with one backdrop pixel.
func compose(op Op, s, d color.NRGBA) color.NRGBA {
	as := float64(s.A) / 255
	ab := float64(d.A) / 255
	fa, fb := op.factors(as, ab)

	ao := as*fa + ab*fb
	if ao <= 0 {
		return color.NRGBA{}
	}
	// Blend premultiplied channels, then divide the alpha back out.
	channel := func(cs, cb uint8) uint8 {
		v := (as*fa*float64(cs) + ab*fb*float64(cb)) / ao
		if v > 255 {
			v = 255
		}
		return uint8(v + 0.5)
	}
	a := ao * 255
	if a > 255 {
		a = 255
	}
	return color.NRGBA{
		R: channel(s.R, d.R),
		G: channel(s.G, d.G),
		B: channel(s.B, d.B),
		A: uint8(a + 0.5),
	}
}
