package iconview

import (
	"strings"

	"golang.org/x/text/cases"
)

// FilteredView is the ordered list of entry indices whose name contains the
// active filter. Matching ignores case and treats the filter literally.
// The order of the underlying entries is kept; the view is never re-sorted.
type FilteredView struct {
	filter string
	rows   []int
	built  bool
}

// Set recomputes the view for names and filter. It reports false, doing
// nothing, when the filter is unchanged since the last rebuild.
func (v *FilteredView) Set(names []string, filter string) bool {
	if v.built && filter == v.filter {
		return false
	}
	v.Rebuild(names, filter)
	return true
}

// Rebuild unconditionally recomputes the whole view.
func (v *FilteredView) Rebuild(names []string, filter string) {
	v.filter = filter
	v.built = true
	v.rows = make([]int, 0, len(names))

	if filter == "" {
		for i := range names {
			v.rows = append(v.rows, i)
		}
		return
	}

	fold := cases.Fold()
	needle := fold.String(filter)
	for i, name := range names {
		if strings.Contains(fold.String(name), needle) {
			v.rows = append(v.rows, i)
		}
	}
}

// Filter returns the active filter text.
func (v *FilteredView) Filter() string { return v.filter }

// Len returns the number of visible rows.
func (v *FilteredView) Len() int { return len(v.rows) }

// Row maps a visible row to its entry index.
func (v *FilteredView) Row(r int) (int, bool) {
	if r < 0 || r >= len(v.rows) {
		return -1, false
	}
	return v.rows[r], true
}

// Rows returns a copy of the visible entry indices.
func (v *FilteredView) Rows() []int {
	out := make([]int, len(v.rows))
	copy(out, v.rows)
	return out
}
