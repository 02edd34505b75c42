package iconview

import (
	"fmt"
	"image"
	"image/color"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// ChangeKind tells observers what kind of mutation happened.
type ChangeKind int

const (
	// SourceChanged follows SetIconSource; every entry may differ.
	SourceChanged ChangeKind = iota
	// FilterChanged follows a filter change; the visible rows differ.
	FilterChanged
	// ParamsChanged follows a render parameter change or a refresh; every image may differ.
	ParamsChanged
	// EntryChanged follows an entity override change of a single entry.
	EntryChanged
)

func (k ChangeKind) String() string {
	switch k {
	case SourceChanged:
		return "source"
	case FilterChanged:
		return "filter"
	case ParamsChanged:
		return "params"
	case EntryChanged:
		return "entry"
	}
	return fmt.Sprintf("ChangeKind(%d)", int(k))
}

// Change describes a completed mutation. Index is the affected entry for
// EntryChanged and -1 otherwise.
type Change struct {
	Kind  ChangeKind
	Index int
}

// Entry is the display projection of one source index.
type Entry struct {
	Name    string
	Index   int
	Library string
}

type subscriber struct {
	id int
	fn func(Change)
}

// Option configures a Model.
type Option func(*Model)

// WithCacheSize sets the number of rendered images kept in memory.
func WithCacheSize(n int) Option {
	return func(m *Model) { m.cacheSize = n }
}

// WithLogger sets the logger receiving absorbed failures.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithRenderParams sets the initial render parameters.
func WithRenderParams(p RenderParams) Option {
	return func(m *Model) { m.params = p }
}

// Model is the single surface over an icon source: it projects entries
// through the name filter, transforms and renders them with the active
// render parameters and caches the results.
//
// A Model is not safe for concurrent use. All methods run synchronously on
// the calling goroutine; observers are notified after a mutation completes.
// Failures never escape: invalid indices yield zero values and unrenderable
// entries yield nil images.
type Model struct {
	src       IconSource
	entries   []Entry
	names     []string
	view      FilteredView
	params    RenderParams
	cache     *RenderCache
	cacheSize int
	overrides map[int]EntityMap

	observers    []subscriber
	nextObserver int

	logger *zap.Logger
}

// NewModel creates an empty model with the default render parameters.
func NewModel(opts ...Option) *Model {
	m := &Model{
		params:    DefaultRenderParams(),
		cacheSize: DefaultCacheSize,
		overrides: make(map[int]EntityMap),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.cache = NewRenderCache(m.cacheSize)
	m.view.Rebuild(nil, "")
	return m
}

// Subscribe registers fn to be called after every mutation. The returned
// function removes the subscription.
func (m *Model) Subscribe(fn func(Change)) (cancel func()) {
	id := m.nextObserver
	m.nextObserver++
	m.observers = append(m.observers, subscriber{id: id, fn: fn})
	return func() {
		for k, o := range m.observers {
			if o.id == id {
				m.observers = append(m.observers[:k:k], m.observers[k+1:]...)
				return
			}
		}
	}
}

func (m *Model) notify(c Change) {
	// Observers may subscribe or cancel while being notified.
	for _, o := range append([]subscriber(nil), m.observers...) {
		o.fn(c)
	}
}

// SetIconSource replaces the active source. The cache, the entity overrides
// and the filtered view are rebuilt from scratch, and the active colours are
// forwarded to the new source. A nil source empties the model.
func (m *Model) SetIconSource(src IconSource) {
	m.src = src
	m.entries = nil
	m.names = nil
	m.overrides = make(map[int]EntityMap)
	m.cache.InvalidateAll()

	if src != nil {
		src.SetPrimaryColor(m.params.Primary)
		if ts, ok := src.(ToneSetter); ok {
			ts.SetToneColor(m.params.Tone)
		}

		n := src.Count()
		lib := src.LibraryName()
		m.entries = make([]Entry, n)
		m.names = make([]string, n)
		for i := 0; i < n; i++ {
			name := src.Name(i)
			m.entries[i] = Entry{Name: name, Index: i, Library: lib}
			m.names[i] = name
		}
		m.logger.Debug("icon source set",
			zap.String("library", lib),
			zap.Stringer("kind", src.Kind()),
			zap.Int("count", n),
		)
	}

	m.view.Rebuild(m.names, m.view.Filter())
	m.notify(Change{Kind: SourceChanged, Index: -1})
}

// IconSource returns the active source, or nil.
func (m *Model) IconSource() IconSource { return m.src }

// IsRaster reports whether the active source is a raster source.
func (m *Model) IsRaster() bool {
	_, ok := AsRaster(m.src)
	return ok
}

// RenderParams returns the active render parameters.
func (m *Model) RenderParams() RenderParams { return m.params }

// SetRenderParams replaces the active render parameters. Any difference
// drops every cached image; colour changes are forwarded to the source.
func (m *Model) SetRenderParams(p RenderParams) {
	if p == m.params {
		return
	}
	old := m.params
	m.params = p

	if m.src != nil {
		if p.Primary != old.Primary {
			m.src.SetPrimaryColor(p.Primary)
		}
		if ts, ok := m.src.(ToneSetter); ok && p.Tone != old.Tone {
			ts.SetToneColor(p.Tone)
		}
	}
	m.cache.InvalidateAll()
	m.notify(Change{Kind: ParamsChanged, Index: -1})
}

// SetSize sets the edge length of rendered images.
func (m *Model) SetSize(size int) {
	p := m.params
	p.Size = size
	m.SetRenderParams(p)
}

// SetPrimaryColor sets the colour substituted for currentColor.
func (m *Model) SetPrimaryColor(c color.NRGBA) {
	p := m.params
	p.Primary = c
	m.SetRenderParams(p)
}

// SetToneColor sets the secondary colour of two-tone sources.
func (m *Model) SetToneColor(c color.NRGBA) {
	p := m.params
	p.Tone = c
	m.SetRenderParams(p)
}

// SetBackgroundColor sets the colour images are rendered onto.
func (m *Model) SetBackgroundColor(c color.NRGBA) {
	p := m.params
	p.Background = c
	m.SetRenderParams(p)
}

// SetStrokeMode selects how stroke widths are rewritten.
func (m *Model) SetStrokeMode(mode StrokeMode) {
	p := m.params
	p.StrokeMode = mode
	m.SetRenderParams(p)
}

// SetStrokeLevel selects the stroke magnitude or factor of the stroke mode.
func (m *Model) SetStrokeLevel(level int) {
	p := m.params
	p.StrokeLevel = level
	m.SetRenderParams(p)
}

// SetGrayscale toggles desaturation of raster icons.
func (m *Model) SetGrayscale(enabled bool) {
	p := m.params
	p.Grayscale = enabled
	m.SetRenderParams(p)
}

// Refresh drops every cached image and notifies observers.
func (m *Model) Refresh() {
	m.cache.InvalidateAll()
	m.notify(Change{Kind: ParamsChanged, Index: -1})
}

// ClearCache drops every cached image without notifying anyone.
func (m *Model) ClearCache() {
	m.cache.InvalidateAll()
}

// Filter returns the active name filter.
func (m *Model) Filter() string { return m.view.Filter() }

// SetFilter shows only entries whose name contains text, ignoring case.
// Setting the active filter again does nothing.
func (m *Model) SetFilter(text string) {
	if !m.view.Set(m.names, text) {
		return
	}
	m.notify(Change{Kind: FilterChanged, Index: -1})
}

// RowCount returns the number of entries passing the filter.
func (m *Model) RowCount() int { return m.view.Len() }

// Rows returns the entry indices passing the filter, in source order.
func (m *Model) Rows() []int { return m.view.Rows() }

// Get returns the entry shown at the filtered row.
func (m *Model) Get(row int) (Entry, bool) {
	i, ok := m.view.Row(row)
	if !ok {
		return Entry{}, false
	}
	return m.entries[i], true
}

// Count returns the number of entries of the source, ignoring the filter.
func (m *Model) Count() int { return len(m.entries) }

// Summary describes the number of visible entries.
func (m *Model) Summary() string {
	if m.view.Filter() == "" {
		return fmt.Sprintf("%d icons", m.Count())
	}
	return fmt.Sprintf("%d of %d icons", m.RowCount(), m.Count())
}

// IndexOf returns the entry index of the named icon, preferring an exact
// match over a case-insensitive one, or -1.
func (m *Model) IndexOf(name string) int {
	for i, n := range m.names {
		if n == name {
			return i
		}
	}
	fold := cases.Fold()
	want := fold.String(name)
	for i, n := range m.names {
		if fold.String(n) == want {
			return i
		}
	}
	return -1
}

func (m *Model) valid(i int) bool {
	return m.src != nil && i >= 0 && i < len(m.entries)
}

// Name returns the name of entry i.
func (m *Model) Name(i int) string {
	if !m.valid(i) {
		return ""
	}
	return m.entries[i].Name
}

// Aliases returns the alternative names of a raster entry.
func (m *Model) Aliases(i int) []string {
	rs, ok := AsRaster(m.src)
	if !ok || !m.valid(i) {
		return nil
	}
	return rs.Aliases(i)
}

// Tags returns the search tags of a vector entry.
func (m *Model) Tags(i int) []string {
	vs, ok := AsVector(m.src)
	if !ok || !m.valid(i) {
		return nil
	}
	return vs.Tags(i)
}

// Category returns the category of a vector entry.
func (m *Model) Category(i int) string {
	vs, ok := AsVector(m.src)
	if !ok || !m.valid(i) {
		return ""
	}
	return vs.Category(i)
}

// Entities returns the entity defaults declared by the markup of entry i.
func (m *Model) Entities(i int) EntityMap {
	vs, ok := AsVector(m.src)
	if !ok || !m.valid(i) {
		return nil
	}
	return vs.Entities(i).Clone()
}

// HasEntities reports whether the markup of entry i declares entities.
func (m *Model) HasEntities(i int) bool {
	return len(m.Entities(i)) > 0
}

// CurrentEntities returns the overrides of entry i if any were set,
// otherwise its declared defaults.
func (m *Model) CurrentEntities(i int) EntityMap {
	if o, ok := m.overrides[i]; ok && m.valid(i) {
		return o.Clone()
	}
	return m.Entities(i)
}

// SetEntityOverrides sets the entity values used for entry i instead of the
// declared defaults. Only the image of entry i is invalidated.
func (m *Model) SetEntityOverrides(i int, entities EntityMap) {
	if !m.valid(i) {
		return
	}
	m.overrides[i] = entities.Clone()
	m.cache.Invalidate(i)
	m.notify(Change{Kind: EntryChanged, Index: i})
}

// ClearEntityOverrides reverts entry i to its declared entity defaults.
func (m *Model) ClearEntityOverrides(i int) {
	if _, ok := m.overrides[i]; !ok || !m.valid(i) {
		return
	}
	delete(m.overrides, i)
	m.cache.Invalidate(i)
	m.notify(Change{Kind: EntryChanged, Index: i})
}

// Markup returns the fully transformed markup of entry i, as it is
// rendered, or "" for raster sources and invalid indices. It is available
// even when the markup cannot be rendered.
func (m *Model) Markup(i int) string {
	vs, ok := AsVector(m.src)
	if !ok || !m.valid(i) {
		return ""
	}
	raw := vs.Markup(i)
	if raw == "" {
		return ""
	}
	return Transform(raw, vs.Entities(i), m.overrides[i], m.params)
}

// RenderedImage returns entry i rendered at the active size, from the cache
// when possible. The image must not be modified. It returns nil when the
// entry cannot be rendered.
func (m *Model) RenderedImage(i int) *image.NRGBA {
	return m.RenderedImageAt(i, m.params.Size)
}

// RenderedImageAt renders entry i at an explicit size. Only renders at the
// active size go through the cache.
func (m *Model) RenderedImageAt(i, size int) *image.NRGBA {
	if !m.valid(i) || size <= 0 {
		return nil
	}
	cacheable := size == m.params.Size
	if cacheable {
		if img, ok := m.cache.Get(i); ok {
			return img
		}
	}

	img, err := m.render(i, size)
	if err != nil {
		m.logger.Debug("icon not rendered",
			zap.Int("index", i),
			zap.String("name", m.entries[i].Name),
			zap.Int("size", size),
			zap.Error(err),
		)
		return nil
	}
	if cacheable {
		m.cache.Put(i, img)
	}
	return img
}

func (m *Model) render(i, size int) (*image.NRGBA, error) {
	r := RendererFor(m.params)
	if rs, ok := AsRaster(m.src); ok {
		return r.RenderBitmap(rs.Bitmap(i), size)
	}
	return r.RenderMarkup(m.Markup(i), size)
}
