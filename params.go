package iconview

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/pkg/errors"
)

// StrokeMode selects how stroke-width attributes are rewritten.
type StrokeMode int

const (
	// FillBased replaces every stroke width with a fixed magnitude.
	FillBased StrokeMode = iota
	// ScaleBased multiplies every stroke width by a factor.
	ScaleBased
)

// DefaultIconSize is the render size used until SetSize is called.
const DefaultIconSize = 32

// String returns the flag spelling of the stroke mode.
func (m StrokeMode) String() string {
	switch m {
	case FillBased:
		return "fill"
	case ScaleBased:
		return "scale"
	}
	return fmt.Sprintf("StrokeMode(%d)", int(m))
}

// MaxLevel is the highest meaningful stroke level of the mode.
func (m StrokeMode) MaxLevel() int {
	if m == FillBased {
		return len(fillStrokeWidths) - 1
	}
	return len(scaleStrokeFactors) - 1
}

// ParseStrokeMode is the inverse of StrokeMode.String.
func ParseStrokeMode(s string) (StrokeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fill", "fillbased", "fill-based":
		return FillBased, nil
	case "scale", "scalebased", "scale-based":
		return ScaleBased, nil
	}
	return ScaleBased, errors.Errorf("unknown stroke mode %q", s)
}

// RenderParams is the tuple of presentation settings governing every render
// of a Model. Only one tuple is active at a time.
type RenderParams struct {
	// Size is the edge length of the square output image in pixels.
	Size int
	// Primary replaces currentColor tokens; ignored while fully transparent.
	Primary color.NRGBA
	// Tone is the secondary colour of two-tone composites.
	Tone color.NRGBA
	// Background pre-fills every rendered image; may be transparent.
	Background  color.NRGBA
	StrokeMode  StrokeMode
	StrokeLevel int
	// Grayscale desaturates raster icons.
	Grayscale bool
}

// DefaultRenderParams returns the parameters a new Model starts with. The
// default stroke setting (ScaleBased, level 2) leaves stroke widths untouched.
func DefaultRenderParams() RenderParams {
	return RenderParams{
		Size:        DefaultIconSize,
		Tone:        color.NRGBA{R: 200, G: 200, B: 200, A: 0xff},
		StrokeMode:  ScaleBased,
		StrokeLevel: 2,
	}
}
