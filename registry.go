package iconview

import (
	"fmt"
	"strings"

	"github.com/esimov/iconview/utils"
	"github.com/pkg/errors"
)

// Style selects a rendering variant of a vector collection.
type Style int

const (
	Outline Style = iota
	Filled
	TwoTone
)

var styleNames = map[Style]string{
	Outline: "outline",
	Filled:  "filled",
	TwoTone: "twotone",
}

func (s Style) String() string {
	if n, ok := styleNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle parses a style name as printed by Style.String.
func ParseStyle(s string) (Style, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "two-tone" {
		name = "twotone"
	}
	for st, n := range styleNames {
		if n == name {
			return st, nil
		}
	}
	return Outline, errors.Errorf("unknown style %q", s)
}

// VectorCollection describes a registered vector icon library. Each style
// maps to a factory creating a fresh source; TwoTone is never registered
// directly, it is composed from the Filled and Outline factories.
type VectorCollection struct {
	ID          string
	DisplayName string
	BaseSize    int
	Sizes       []int
	Styles      map[Style]func() VectorSource
}

// RasterCollection describes a registered bitmap icon library.
type RasterCollection struct {
	ID          string
	DisplayName string
	Sizes       []int
	Factory     func(size int) RasterSource
}

// DefaultSize returns the size used when a requested size is not offered.
func (c RasterCollection) DefaultSize() int {
	if len(c.Sizes) > 0 {
		return c.Sizes[0]
	}
	return DefaultIconSize
}

// Registry is an append-only catalogue of collections. Registration must
// complete before the registry is shared between goroutines.
type Registry struct {
	vector []VectorCollection
	raster []RasterCollection
	ids    map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]struct{})}
}

func (r *Registry) claim(id string) error {
	if id == "" {
		return errors.Wrap(ErrUnknownCollection, "empty collection id")
	}
	if _, ok := r.ids[id]; ok {
		return errors.Wrapf(ErrDuplicateCollection, "collection %q", id)
	}
	r.ids[id] = struct{}{}
	return nil
}

// RegisterVectorCollection adds a vector collection.
func (r *Registry) RegisterVectorCollection(c VectorCollection) error {
	if err := r.claim(c.ID); err != nil {
		return err
	}
	r.vector = append(r.vector, c)
	return nil
}

// RegisterRasterCollection adds a raster collection.
func (r *Registry) RegisterRasterCollection(c RasterCollection) error {
	if err := r.claim(c.ID); err != nil {
		return err
	}
	r.raster = append(r.raster, c)
	return nil
}

// Collections returns the vector collections in registration order.
func (r *Registry) Collections() []VectorCollection {
	return append([]VectorCollection(nil), r.vector...)
}

// RasterCollections returns the raster collections in registration order.
func (r *Registry) RasterCollections() []RasterCollection {
	return append([]RasterCollection(nil), r.raster...)
}

// FindCollection looks up a vector collection by id.
func (r *Registry) FindCollection(id string) (VectorCollection, bool) {
	for _, c := range r.vector {
		if c.ID == id {
			return c, true
		}
	}
	return VectorCollection{}, false
}

// FindRasterCollection looks up a raster collection by id.
func (r *Registry) FindRasterCollection(id string) (RasterCollection, bool) {
	for _, c := range r.raster {
		if c.ID == id {
			return c, true
		}
	}
	return RasterCollection{}, false
}

// AvailableStyles lists the styles CreateIconList can honour for id.
func (r *Registry) AvailableStyles(id string) []Style {
	c, ok := r.FindCollection(id)
	if !ok {
		return nil
	}
	var styles []Style
	for _, s := range []Style{Outline, Filled} {
		if c.Styles[s] != nil {
			styles = append(styles, s)
		}
	}
	if c.Styles[Outline] != nil && c.Styles[Filled] != nil {
		styles = append(styles, TwoTone)
	}
	return styles
}

// CreateIconList creates a fresh source for the collection in the given
// style. TwoTone composes the Filled and Outline sources. A style the
// collection lacks falls back to Outline, then Filled. It returns nil for an
// unknown id or when no factory yields a source.
func (r *Registry) CreateIconList(id string, style Style) VectorSource {
	c, ok := r.FindCollection(id)
	if !ok {
		return nil
	}
	create := func(s Style) VectorSource {
		if f := c.Styles[s]; f != nil {
			if src := f(); src != nil {
				return src
			}
		}
		return nil
	}

	if style == TwoTone {
		filled, outline := create(Filled), create(Outline)
		if filled != nil && outline != nil {
			return NewTwoTone(filled, outline)
		}
		if outline != nil {
			return outline
		}
		return filled
	}
	if src := create(style); src != nil {
		return src
	}
	if src := create(Outline); src != nil {
		return src
	}
	return create(Filled)
}

// CreateBitmapList creates a fresh raster source at size, or at the
// collection default when size is not offered.
func (r *Registry) CreateBitmapList(id string, size int) RasterSource {
	c, ok := r.FindRasterCollection(id)
	if !ok || c.Factory == nil {
		return nil
	}
	if !utils.Contains(c.Sizes, size) {
		size = c.DefaultSize()
	}
	return c.Factory(size)
}

// AllCollectionNames returns the display names of every collection, vector
// collections first.
func (r *Registry) AllCollectionNames() []string {
	names := make([]string, 0, len(r.vector)+len(r.raster))
	for _, c := range r.vector {
		names = append(names, c.DisplayName)
	}
	for _, c := range r.raster {
		names = append(names, c.DisplayName)
	}
	return names
}

// IsRasterCollection reports whether displayName names a raster collection.
func (r *Registry) IsRasterCollection(displayName string) bool {
	for _, c := range r.raster {
		if c.DisplayName == displayName {
			return true
		}
	}
	return false
}
