package iconview

import (
	"image"
	"image/color"
)

// Kind tells the two families of icon sources apart.
type Kind int

const (
	// Vector sources provide SVG markup.
	Vector Kind = iota
	// Raster sources provide bitmaps.
	Raster
)

func (k Kind) String() string {
	if k == Raster {
		return "raster"
	}
	return "vector"
}

// IconSource is a read-only provider of one collection's entries. Indices run
// from 0 to Count()-1 and are stable for the lifetime of the source. Every
// accessor returns the zero value for an index outside that range.
type IconSource interface {
	Kind() Kind
	Count() int
	Name(i int) string
	BaseSize() int
	LibraryName() string
	PrimaryColor() color.NRGBA
	// SetPrimaryColor affects markup produced afterwards. Images rendered
	// before the change are the caller's to invalidate.
	SetPrimaryColor(c color.NRGBA)
}

// VectorSource is an IconSource backed by SVG markup.
type VectorSource interface {
	IconSource
	// Markup returns the complete markup of entry i with the source's
	// primary colour applied. It is never empty for a valid index.
	Markup(i int) string
	// Body returns the markup between the root element tags.
	Body(i int) string
	// Envelope returns the root element opening (including any prolog) and closing.
	Envelope(i int) (open, close string)
	Tags(i int) []string
	Category(i int) string
	// Entities returns the entity defaults declared by the markup.
	Entities(i int) EntityMap
}

// RasterSource is an IconSource backed by bitmaps.
type RasterSource interface {
	IconSource
	// Bitmap returns the entry image at its native resolution.
	Bitmap(i int) image.Image
	Aliases(i int) []string
}

// ToneSetter is implemented by sources that carry a secondary colour.
type ToneSetter interface {
	ToneColor() color.NRGBA
	SetToneColor(c color.NRGBA)
}

// AsVector returns src as a VectorSource when it is one.
func AsVector(src IconSource) (VectorSource, bool) {
	if src == nil || src.Kind() != Vector {
		return nil, false
	}
	v, ok := src.(VectorSource)
	return v, ok
}

// AsRaster returns src as a RasterSource when it is one.
func AsRaster(src IconSource) (RasterSource, bool) {
	if src == nil || src.Kind() != Raster {
		return nil, false
	}
	r, ok := src.(RasterSource)
	return r, ok
}

// VectorIcon is one entry of a VectorList.
type VectorIcon struct {
	Name     string
	Markup   string
	Tags     []string
	Category string
}

// VectorList is an in-memory VectorSource.
type VectorList struct {
	library  string
	baseSize int
	icons    []VectorIcon
	primary  color.NRGBA
}

var _ VectorSource = (*VectorList)(nil)

// NewVectorList creates a vector source over icons. The slice is owned by the list afterwards.
func NewVectorList(library string, baseSize int, icons []VectorIcon) *VectorList {
	return &VectorList{
		library:  library,
		baseSize: baseSize,
		icons:    icons,
	}
}

func (l *VectorList) valid(i int) bool { return i >= 0 && i < len(l.icons) }

// Kind implements IconSource.
func (l *VectorList) Kind() Kind { return Vector }

// Count implements IconSource.
func (l *VectorList) Count() int { return len(l.icons) }

// BaseSize implements IconSource.
func (l *VectorList) BaseSize() int { return l.baseSize }

// LibraryName implements IconSource.
func (l *VectorList) LibraryName() string { return l.library }

// PrimaryColor implements IconSource.
func (l *VectorList) PrimaryColor() color.NRGBA { return l.primary }

// SetPrimaryColor implements IconSource.
func (l *VectorList) SetPrimaryColor(c color.NRGBA) { l.primary = c }

// Name implements IconSource.
func (l *VectorList) Name(i int) string {
	if !l.valid(i) {
		return ""
	}
	return l.icons[i].Name
}

// Markup implements VectorSource.
func (l *VectorList) Markup(i int) string {
	if !l.valid(i) {
		return ""
	}
	return ApplyPrimaryColor(l.icons[i].Markup, l.primary)
}

// Body implements VectorSource.
func (l *VectorList) Body(i int) string {
	if !l.valid(i) {
		return ""
	}
	_, body, _ := SplitMarkup(l.icons[i].Markup)
	return ApplyPrimaryColor(body, l.primary)
}

// Envelope implements VectorSource.
func (l *VectorList) Envelope(i int) (open, close string) {
	if !l.valid(i) {
		return "", ""
	}
	open, _, close = SplitMarkup(l.icons[i].Markup)
	return ApplyPrimaryColor(open, l.primary), close
}

// Tags implements VectorSource.
func (l *VectorList) Tags(i int) []string {
	if !l.valid(i) {
		return nil
	}
	return l.icons[i].Tags
}

// Category implements VectorSource.
func (l *VectorList) Category(i int) string {
	if !l.valid(i) {
		return ""
	}
	return l.icons[i].Category
}

// Entities implements VectorSource.
func (l *VectorList) Entities(i int) EntityMap {
	if !l.valid(i) {
		return nil
	}
	return DeclaredEntities(l.icons[i].Markup)
}

// RasterIcon is one entry of a RasterList.
type RasterIcon struct {
	Name    string
	Bitmap  image.Image
	Aliases []string
}

// RasterList is an in-memory RasterSource holding bitmaps of one native size.
type RasterList struct {
	library string
	size    int
	icons   []RasterIcon
	primary color.NRGBA
}

var _ RasterSource = (*RasterList)(nil)

// NewRasterList creates a raster source over icons rendered at size pixels.
func NewRasterList(library string, size int, icons []RasterIcon) *RasterList {
	return &RasterList{
		library: library,
		size:    size,
		icons:   icons,
	}
}

func (l *RasterList) valid(i int) bool { return i >= 0 && i < len(l.icons) }

// Kind implements IconSource.
func (l *RasterList) Kind() Kind { return Raster }

// Count implements IconSource.
func (l *RasterList) Count() int { return len(l.icons) }

// BaseSize implements IconSource.
func (l *RasterList) BaseSize() int { return l.size }

// LibraryName implements IconSource.
func (l *RasterList) LibraryName() string { return l.library }

// PrimaryColor implements IconSource. Bitmaps are not recoloured.
func (l *RasterList) PrimaryColor() color.NRGBA { return l.primary }

// SetPrimaryColor implements IconSource.
func (l *RasterList) SetPrimaryColor(c color.NRGBA) { l.primary = c }

// Name implements IconSource.
func (l *RasterList) Name(i int) string {
	if !l.valid(i) {
		return ""
	}
	return l.icons[i].Name
}

// Bitmap implements RasterSource.
func (l *RasterList) Bitmap(i int) image.Image {
	if !l.valid(i) {
		return nil
	}
	return l.icons[i].Bitmap
}

// Aliases implements RasterSource.
func (l *RasterList) Aliases(i int) []string {
	if !l.valid(i) {
		return nil
	}
	return l.icons[i].Aliases
}
