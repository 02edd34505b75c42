package iconview

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var red = color.NRGBA{R: 0xff, A: 0xff}

func TestMarkup_Transform(t *testing.T) {
	in := `<svg><path stroke-width="2" fill="currentColor"/></svg>`
	p := RenderParams{
		Size:        24,
		Primary:     red,
		StrokeMode:  ScaleBased,
		StrokeLevel: 0,
	}

	assert.Equal(t, `<svg><path stroke-width="1" fill="#ff0000"/></svg>`, Transform(in, nil, nil, p))
}

func TestMarkup_FillBasedStroke(t *testing.T) {
	in := `<svg stroke-width="2.5"><path stroke-width="0.1"/><path stroke-width="abc"/></svg>`

	testCases := []struct {
		level int
		want  string
	}{
		{-1, "0"},
		{0, "0"},
		{1, "0.25"},
		{2, "0.5"},
		{3, "1"},
		{4, "1.25"},
		{5, "1.5"},
		{42, "1.5"},
	}
	for _, tc := range testCases {
		w := tc.want
		want := `<svg stroke-width="` + w + `"><path stroke-width="` + w + `"/><path stroke-width="` + w + `"/></svg>`
		assert.Equal(t, want, AdjustStrokeWidth(in, FillBased, tc.level), "level %d", tc.level)
	}
}

func TestMarkup_ScaleBasedStroke(t *testing.T) {
	assert := assert.New(t)

	in := `<svg><path stroke-width="2"/><path stroke-width="1.5px"/><path stroke-width="inherit"/></svg>`

	// Level 2 is the identity.
	assert.Equal(in, AdjustStrokeWidth(in, ScaleBased, 2))

	assert.Equal(
		`<svg><path stroke-width="3"/><path stroke-width="2.25px"/><path stroke-width="inherit"/></svg>`,
		AdjustStrokeWidth(in, ScaleBased, 4),
	)
	assert.Equal(
		`<svg><path stroke-width="2.5"/><path stroke-width="1.875px"/><path stroke-width="inherit"/></svg>`,
		AdjustStrokeWidth(in, ScaleBased, 3),
	)
	// Out of range levels are clamped.
	assert.Equal(AdjustStrokeWidth(in, ScaleBased, 4), AdjustStrokeWidth(in, ScaleBased, 10))
	assert.Equal(AdjustStrokeWidth(in, ScaleBased, 0), AdjustStrokeWidth(in, ScaleBased, -3))

	// Scaled widths never drop below the floor.
	assert.Equal(`<path stroke-width="0.25"/>`, AdjustStrokeWidth(`<path stroke-width="0.3"/>`, ScaleBased, 0))

	// Hairlines thinner than the floor are never thickened.
	hairline := `<path stroke-width="0.1"/><path stroke-width="0.2px"/>`
	assert.Equal(hairline, AdjustStrokeWidth(hairline, ScaleBased, 2))
	assert.Equal(hairline, AdjustStrokeWidth(hairline, ScaleBased, 0))
	assert.Equal(`<path stroke-width="0.125"/><path stroke-width="0.25px"/>`, AdjustStrokeWidth(hairline, ScaleBased, 3))

	// Only plain decimal numbers are scaled.
	for _, v := range []string{"NaN", "Inf", "-Inf", "1_0", "0x10", "1e", "."} {
		in := `<path stroke-width="` + v + `"/>`
		assert.Equal(in, AdjustStrokeWidth(in, ScaleBased, 4), v)
	}
	assert.Equal(`<path stroke-width="3"/>`, AdjustStrokeWidth(`<path stroke-width="2e0"/>`, ScaleBased, 4))
	assert.Equal(`<path stroke-width="0.75"/>`, AdjustStrokeWidth(`<path stroke-width=".5"/>`, ScaleBased, 4))

	assert.Equal("<svg/>", AdjustStrokeWidth("<svg/>", ScaleBased, 0))
}

func TestMarkup_DeclaredEntities(t *testing.T) {
	in := `<?xml version="1.0"?>
<!DOCTYPE svg [
	<!ENTITY sw "2">
	<!ENTITY fg 'currentColor'>
	<!ENTITY sw "7">
]>
<svg><path stroke-width="&sw;" fill="&fg;"/></svg>`

	want := EntityMap{"sw": "2", "fg": "currentColor"}
	if diff := cmp.Diff(want, DeclaredEntities(in)); diff != "" {
		t.Errorf("DeclaredEntities mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, DeclaredEntities(`<svg/>`))
}

func TestMarkup_ResolveEntities(t *testing.T) {
	assert := assert.New(t)

	in := `<!DOCTYPE svg [<!ENTITY sw "2"><!ENTITY fg "red">]><svg><path stroke-width="&sw;" fill="&fg;" stroke="&unknown;"/></svg>`

	assert.Equal(
		`<!DOCTYPE svg [<!ENTITY sw "2"><!ENTITY fg "red">]><svg><path stroke-width="2" fill="red" stroke="&unknown;"/></svg>`,
		ResolveEntities(in, nil, nil),
	)
	assert.Equal(
		`<!DOCTYPE svg [<!ENTITY sw "2"><!ENTITY fg "red">]><svg><path stroke-width="3" fill="blue" stroke="&unknown;"/></svg>`,
		ResolveEntities(in, EntityMap{"fg": "green"}, EntityMap{"sw": "3", "fg": "blue"}),
	)
	assert.Equal(
		`<!DOCTYPE svg [<!ENTITY sw "2"><!ENTITY fg "red">]><svg><path stroke-width="2" fill="green" stroke="&unknown;"/></svg>`,
		ResolveEntities(in, EntityMap{"fg": "green"}, nil),
	)
}

func TestMarkup_ResolveEntitiesIdempotent(t *testing.T) {
	in := `<!DOCTYPE svg [<!ENTITY sw "2">]><svg><path stroke-width="&sw;" fill="&fg;"/></svg>`
	overrides := EntityMap{"sw": "4", "fg": "#00ff00"}

	once := ResolveEntities(in, nil, overrides)
	twice := ResolveEntities(once, nil, overrides)
	assert.Equal(t, once, twice)
}

func TestMarkup_ResolveNestedEntities(t *testing.T) {
	assert := assert.New(t)

	in := `<!DOCTYPE svg [<!ENTITY a "2"><!ENTITY b "&a;"><!ENTITY c "&b;px">]><svg><path stroke-width="&c;" d="&b;"/></svg>`
	out := ResolveEntities(in, nil, nil)
	assert.Contains(out, `<path stroke-width="2px" d="2"/>`)
	assert.NotContains(out, "&a;")

	// Nested declarations follow an overridden entity.
	out = ResolveEntities(in, nil, EntityMap{"a": "5"})
	assert.Contains(out, `<path stroke-width="5px" d="5"/>`)

	// Override values are inserted as given.
	out = ResolveEntities(in, nil, EntityMap{"c": "&a;"})
	assert.Contains(out, `<path stroke-width="&a;" d="2"/>`)

	// Cycles terminate and leave a reference behind.
	cyclic := `<!DOCTYPE svg [<!ENTITY x "&y;"><!ENTITY y "&x;">]><svg width="&x;"/>`
	out = ResolveEntities(cyclic, nil, nil)
	assert.Contains(out, `<svg width="&`)
}

func TestMarkup_ApplyPrimaryColor(t *testing.T) {
	assert := assert.New(t)

	in := `<svg fill="currentColor"><path stroke="currentColor"/></svg>`
	assert.Equal(`<svg fill="#ff0000"><path stroke="#ff0000"/></svg>`, ApplyPrimaryColor(in, red))
	assert.Equal(`<svg fill="#0a0b0c"><path stroke="#0a0b0c"/></svg>`,
		ApplyPrimaryColor(in, color.NRGBA{R: 10, G: 11, B: 12, A: 1}))
	assert.Equal(in, ApplyPrimaryColor(in, Transparent))
}

func TestMarkup_SplitMarkup(t *testing.T) {
	testCases := []struct {
		name              string
		in                string
		open, body, close string
	}{
		{
			name:  "prolog and quoted bracket",
			in:    `<?xml version="1.0"?><svg viewBox="0 0 24 24" data-x="a>b"><path d="M0 0"/></svg>` + "\n",
			open:  `<?xml version="1.0"?><svg viewBox="0 0 24 24" data-x="a>b">`,
			body:  `<path d="M0 0"/>`,
			close: "</svg>\n",
		},
		{
			name:  "self closing root",
			in:    `<svg viewBox="0 0 1 1" />`,
			open:  `<svg viewBox="0 0 1 1">`,
			close: "</svg>",
		},
		{
			name:  "nested svg",
			in:    `<svg><svg x="1"><g/></svg></svg>`,
			open:  `<svg>`,
			body:  `<svg x="1"><g/></svg>`,
			close: "</svg>",
		},
		{
			name:  "leading comment mentioning svg",
			in:    `<!-- see <svg > docs --><svg viewBox="0 0 24 24"><g/></svg>`,
			open:  `<!-- see <svg > docs --><svg viewBox="0 0 24 24">`,
			body:  `<g/>`,
			close: "</svg>",
		},
		{
			name:  "doctype subset mentioning svg",
			in:    `<!DOCTYPE svg [<!ENTITY e "<svg x='1'/>">]><svg><g/></svg>`,
			open:  `<!DOCTYPE svg [<!ENTITY e "<svg x='1'/>">]><svg>`,
			body:  `<g/>`,
			close: "</svg>",
		},
		{
			name: "svg only inside a comment",
			in:   `<!-- <svg > -->`,
			body: `<!-- <svg > -->`,
		},
		{
			name: "no root element",
			in:   `<svgx><g/></svgx>`,
			body: `<svgx><g/></svgx>`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			open, body, close := SplitMarkup(tc.in)
			assert.Equal(t, tc.open, open)
			assert.Equal(t, tc.body, body)
			assert.Equal(t, tc.close, close)
		})
	}
}
