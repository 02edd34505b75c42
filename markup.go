package iconview

import (
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/esimov/iconview/utils"
)

// EntityMap maps an entity name to its replacement text.
type EntityMap map[string]string

// Clone returns an independent copy of the map. A nil map stays nil.
func (m EntityMap) Clone() EntityMap {
	if m == nil {
		return nil
	}
	out := make(EntityMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

const currentColorToken = "currentColor"

// minStrokeWidth is the floor applied to scaled stroke widths.
const minStrokeWidth = 0.25

var (
	fillStrokeWidths   = [...]float64{0, 0.25, 0.5, 1, 1.25, 1.5}
	scaleStrokeFactors = [...]float64{0.5, 0.75, 1.0, 1.25, 1.5}
)

var (
	entityRefRe   = regexp.MustCompile(`&([A-Za-z_][A-Za-z0-9_.\-]*);`)
	entityDeclRe  = regexp.MustCompile(`<!ENTITY\s+([A-Za-z_][A-Za-z0-9_.\-]*)\s+(?:"([^"]*)"|'([^']*)')\s*>`)
	strokeWidthRe = regexp.MustCompile(`stroke-width="([^"]*)"`)
	numberRe      = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)
)

// Transform applies the markup pipeline in its fixed order: entity
// resolution, stroke-width adjustment, primary colour substitution.
func Transform(markup string, defaults, overrides EntityMap, p RenderParams) string {
	s := ResolveEntities(markup, defaults, overrides)
	s = AdjustStrokeWidth(s, p.StrokeMode, p.StrokeLevel)
	return ApplyPrimaryColor(s, p.Primary)
}

// DeclaredEntities returns the entities declared in the internal DOCTYPE
// subset of the markup. The first declaration of a name wins, as in XML.
func DeclaredEntities(markup string) EntityMap {
	if !strings.Contains(markup, "<!ENTITY") {
		return nil
	}
	decls := entityDeclRe.FindAllStringSubmatchIndex(markup, -1)
	entities := make(EntityMap, len(decls))
	for _, d := range decls {
		name := markup[d[2]:d[3]]
		if _, ok := entities[name]; ok {
			continue
		}
		if d[4] >= 0 {
			entities[name] = markup[d[4]:d[5]]
		} else {
			entities[name] = markup[d[6]:d[7]]
		}
	}
	return entities
}

// ResolveEntities substitutes every &name; reference. An override value wins
// over a default; defaults extend the declarations found in the markup.
// Declared and default values may refer to other entities and are expanded
// first; override values are inserted as given. References to unknown names
// are left as they are.
func ResolveEntities(markup string, defaults, overrides EntityMap) string {
	if !strings.Contains(markup, "&") {
		return markup
	}
	values := DeclaredEntities(markup)
	if values == nil {
		values = make(EntityMap, len(defaults)+len(overrides))
	}
	for k, v := range defaults {
		values[k] = v
	}
	for k, v := range overrides {
		values[k] = v
	}
	if len(values) == 0 {
		return markup
	}
	expandEntities(values, overrides)
	return substituteEntities(markup, values)
}

// expandEntities resolves references nested in the non-override values until
// nothing changes. Cyclic definitions stop after len(values) rounds.
func expandEntities(values, overrides EntityMap) {
	for round := 0; round < len(values); round++ {
		changed := false
		for k, v := range values {
			if _, ok := overrides[k]; ok || !strings.Contains(v, "&") {
				continue
			}
			if nv := substituteEntities(v, values); nv != v {
				values[k] = nv
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

func substituteEntities(s string, values EntityMap) string {
	return entityRefRe.ReplaceAllStringFunc(s, func(ref string) string {
		if v, ok := values[ref[1:len(ref)-1]]; ok {
			return v
		}
		return ref
	})
}

// AdjustStrokeWidth rewrites every stroke-width="..." attribute.
//
// FillBased replaces the value with one of 0, 0.25, 0.5, 1, 1.25, 1.5 picked
// by level (clamped to [0,5]). ScaleBased multiplies numeric values by one of
// 0.5, 0.75, 1, 1.25, 1.5 (level clamped to [0,4]). Scaling down never goes
// below 0.25, or below the original value when that is already thinner.
// Values that are not plain decimal numbers are left untouched.
func AdjustStrokeWidth(markup string, mode StrokeMode, level int) string {
	matches := strokeWidthRe.FindAllStringSubmatchIndex(markup, -1)
	if len(matches) == 0 {
		return markup
	}

	var rewrite func(string) (string, bool)
	switch mode {
	case FillBased:
		width := formatWidth(fillStrokeWidths[utils.Clamp(level, 0, len(fillStrokeWidths)-1)])
		rewrite = func(old string) (string, bool) {
			return width, old != width
		}
	default:
		factor := scaleStrokeFactors[utils.Clamp(level, 0, len(scaleStrokeFactors)-1)]
		rewrite = func(old string) (string, bool) {
			num, unit := splitUnit(old)
			if !numberRe.MatchString(num) {
				return old, false
			}
			v, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return old, false
			}
			nv := v * factor
			if factor < 1 {
				nv = utils.Max(nv, utils.Min(v, minStrokeWidth))
			}
			if nv == v {
				return old, false
			}
			return formatWidth(nv) + unit, true
		}
	}

	// Splice from the last match backwards so earlier offsets stay valid.
	out := markup
	for i := len(matches) - 1; i >= 0; i-- {
		start, end := matches[i][2], matches[i][3]
		repl, ok := rewrite(out[start:end])
		if !ok {
			continue
		}
		out = out[:start] + repl + out[end:]
	}
	return out
}

// ApplyPrimaryColor replaces the currentColor token with c as #rrggbb,
// unless c is fully transparent.
func ApplyPrimaryColor(markup string, c color.NRGBA) string {
	if c.A == 0 {
		return markup
	}
	return strings.ReplaceAll(markup, currentColorToken, HexColor(c))
}

// SplitMarkup splits SVG markup into the envelope opening (everything up to
// and including the root <svg ...> start tag), the body and the envelope
// closing (the last </svg> and what follows). Markup without a root svg
// element is returned whole as body.
func SplitMarkup(markup string) (open, body, close string) {
	start := rootTagIndex(markup)
	if start < 0 {
		return "", markup, ""
	}
	end := tagEnd(markup, start)
	if end < 0 {
		return "", markup, ""
	}
	if markup[end-1] == '/' {
		return strings.TrimRightFunc(markup[:end-1], unicode.IsSpace) + ">", "", "</svg>" + markup[end+1:]
	}
	closeAt := strings.LastIndex(markup, "</svg>")
	if closeAt < end {
		return markup[:end+1], markup[end+1:], ""
	}
	return markup[:end+1], markup[end+1 : closeAt], markup[closeAt:]
}

// rootTagIndex finds the first "<svg" that starts an element, skipping
// comments, processing instructions and the DOCTYPE with its internal subset.
func rootTagIndex(s string) int {
	for off := 0; ; {
		i := strings.IndexByte(s[off:], '<')
		if i < 0 {
			return -1
		}
		i += off
		rest := s[i:]
		switch {
		case strings.HasPrefix(rest, "<!--"):
			off = skipPast(s, i+len("<!--"), "-->")
		case strings.HasPrefix(rest, "<?"):
			off = skipPast(s, i+len("<?"), "?>")
		case strings.HasPrefix(rest, "<!DOCTYPE"):
			off = doctypeEnd(s, i)
		case strings.HasPrefix(rest, "<svg"):
			if j := i + len("<svg"); j < len(s) {
				if c := s[j]; c == '>' || c == '/' || unicode.IsSpace(rune(c)) {
					return i
				}
			}
			off = i + 1
		default:
			off = i + 1
		}
		if off < 0 {
			return -1
		}
	}
}

// skipPast returns the offset just after the first term at or after i, or -1.
func skipPast(s string, i int, term string) int {
	j := strings.Index(s[i:], term)
	if j < 0 {
		return -1
	}
	return i + j + len(term)
}

// doctypeEnd returns the offset after the DOCTYPE declaration starting at i,
// or -1 when it is not terminated.
func doctypeEnd(s string, i int) int {
	end := strings.IndexByte(s[i:], '>')
	if end < 0 {
		return -1
	}
	if sub := strings.IndexByte(s[i:], '['); sub >= 0 && sub < end {
		j := skipPast(s, i+sub+1, "]")
		if j < 0 {
			return -1
		}
		return skipPast(s, j, ">")
	}
	return i + end + 1
}

// tagEnd returns the index of the '>' closing the tag that starts at i,
// skipping quoted attribute values.
func tagEnd(s string, i int) int {
	var quote byte
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i
		}
	}
	return -1
}

func splitUnit(v string) (num, unit string) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "px") {
		return strings.TrimSpace(v[:len(v)-2]), "px"
	}
	return v, ""
}

func formatWidth(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}
