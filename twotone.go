package iconview

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// filledSuffix marks filled variants named after their outline counterpart.
const filledSuffix = "-fill"

// pair links an outline entry with its filled counterpart.
type pair struct {
	outline, filled int
}

// TwoToneList is a synthetic vector source compositing name-matched entries
// of a filled and an outline source: the filled shape painted in the tone
// colour underneath the outline drawn in the primary colour. Entries without
// a counterpart on the other side are left out.
//
// The list owns both sub-sources and keeps no colour state of its own: the
// primary colour lives on the outline source, the tone colour on the filled one.
type TwoToneList struct {
	filled  VectorSource
	outline VectorSource
	pairs   []pair
}

var (
	_ VectorSource = (*TwoToneList)(nil)
	_ ToneSetter   = (*TwoToneList)(nil)
)

// NewTwoTone pairs the entries of filled and outline by name, ignoring case.
// A filled name ending in "-fill" also matches the outline name without it.
func NewTwoTone(filled, outline VectorSource) *TwoToneList {
	fold := cases.Fold()

	byName := make(map[string]int, filled.Count())
	add := func(name string, i int) {
		if _, ok := byName[name]; !ok {
			byName[name] = i
		}
	}
	for i := 0; i < filled.Count(); i++ {
		name := fold.String(filled.Name(i))
		add(name, i)
		if strings.HasSuffix(name, filledSuffix) {
			add(strings.TrimSuffix(name, filledSuffix), i)
		}
	}

	var pairs []pair
	for i := 0; i < outline.Count(); i++ {
		if f, ok := byName[fold.String(outline.Name(i))]; ok {
			pairs = append(pairs, pair{outline: i, filled: f})
		}
	}

	return &TwoToneList{
		filled:  filled,
		outline: outline,
		pairs:   pairs,
	}
}

func (t *TwoToneList) at(i int) (pair, bool) {
	if i < 0 || i >= len(t.pairs) {
		return pair{}, false
	}
	return t.pairs[i], true
}

// Filled returns the sub-source painted in the tone colour.
func (t *TwoToneList) Filled() VectorSource { return t.filled }

// Outline returns the sub-source painted in the primary colour.
func (t *TwoToneList) Outline() VectorSource { return t.outline }

// Kind implements IconSource.
func (t *TwoToneList) Kind() Kind { return Vector }

// Count implements IconSource.
func (t *TwoToneList) Count() int { return len(t.pairs) }

// BaseSize implements IconSource.
func (t *TwoToneList) BaseSize() int { return t.outline.BaseSize() }

// LibraryName implements IconSource.
func (t *TwoToneList) LibraryName() string { return t.outline.LibraryName() + " TwoTone" }

// PrimaryColor implements IconSource.
func (t *TwoToneList) PrimaryColor() color.NRGBA { return t.outline.PrimaryColor() }

// SetPrimaryColor forwards to the outline source only.
func (t *TwoToneList) SetPrimaryColor(c color.NRGBA) { t.outline.SetPrimaryColor(c) }

// ToneColor implements ToneSetter.
func (t *TwoToneList) ToneColor() color.NRGBA { return t.filled.PrimaryColor() }

// SetToneColor forwards to the filled source only.
func (t *TwoToneList) SetToneColor(c color.NRGBA) { t.filled.SetPrimaryColor(c) }

// Name implements IconSource.
func (t *TwoToneList) Name(i int) string {
	p, ok := t.at(i)
	if !ok {
		return ""
	}
	return t.outline.Name(p.outline)
}

// Markup implements VectorSource.
func (t *TwoToneList) Markup(i int) string {
	p, ok := t.at(i)
	if !ok {
		return ""
	}
	open, close := t.outline.Envelope(p.outline)
	return open + t.body(p) + close
}

// Body implements VectorSource.
func (t *TwoToneList) Body(i int) string {
	p, ok := t.at(i)
	if !ok {
		return ""
	}
	return t.body(p)
}

// body wraps the filled body in a group painted with the tone colour and no
// stroke, so it never picks up the outline's stroke styling.
func (t *TwoToneList) body(p pair) string {
	var b strings.Builder
	b.WriteString(`<g fill="`)
	tone := t.ToneColor()
	if tone.A == 0 {
		b.WriteString("none")
	} else {
		b.WriteString(HexColor(tone))
	}
	b.WriteString(`"`)
	if tone.A > 0 && tone.A < 0xff {
		b.WriteString(` fill-opacity="`)
		b.WriteString(strconv.FormatFloat(float64(tone.A)/0xff, 'f', 3, 64))
		b.WriteString(`"`)
	}
	b.WriteString(` stroke="none">`)
	b.WriteString(t.filled.Body(p.filled))
	b.WriteString(`</g>`)
	b.WriteString(t.outline.Body(p.outline))
	return b.String()
}

// Envelope implements VectorSource.
func (t *TwoToneList) Envelope(i int) (open, close string) {
	p, ok := t.at(i)
	if !ok {
		return "", ""
	}
	return t.outline.Envelope(p.outline)
}

// Tags implements VectorSource.
func (t *TwoToneList) Tags(i int) []string {
	p, ok := t.at(i)
	if !ok {
		return nil
	}
	return t.outline.Tags(p.outline)
}

// Category implements VectorSource.
func (t *TwoToneList) Category(i int) string {
	p, ok := t.at(i)
	if !ok {
		return ""
	}
	return t.outline.Category(p.outline)
}

// Entities merges the declarations of both halves, the outline winning.
func (t *TwoToneList) Entities(i int) EntityMap {
	p, ok := t.at(i)
	if !ok {
		return nil
	}
	filled, outline := t.filled.Entities(p.filled), t.outline.Entities(p.outline)
	if len(filled) == 0 {
		return outline
	}
	merged := filled.Clone()
	for k, v := range outline {
		merged[k] = v
	}
	return merged
}
