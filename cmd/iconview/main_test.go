package main

import (
	"testing"

	"github.com/esimov/iconview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dotIcon = `<!DOCTYPE svg [<!ENTITY r "6"><!ENTITY fg "currentColor">]>` +
	`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><circle cx="12" cy="12" r="&r;" fill="&fg;"/></svg>`

func newTestModel() *iconview.Model {
	m := iconview.NewModel()
	m.SetIconSource(iconview.NewVectorList("Demo", 24, []iconview.VectorIcon{
		{Name: "square", Markup: `<svg viewBox="0 0 24 24"><rect width="24" height="24"/></svg>`},
		{Name: "dot", Markup: dotIcon},
	}))
	return m
}

func TestLookup(t *testing.T) {
	assert := assert.New(t)
	m := newTestModel()

	i, err := lookup(m, &options{name: "DOT", entities: map[string]string{"r": "3"}})
	require.NoError(t, err)
	assert.Equal(1, i)
	assert.Equal(iconview.EntityMap{"r": "3", "fg": "currentColor"}, m.CurrentEntities(1))

	_, err = lookup(m, &options{name: "missing"})
	require.Error(t, err)
	assert.EqualError(err, `no icon named "missing"`)
	assert.NotErrorIs(err, iconview.ErrIndexOutOfRange)

	_, err = lookup(m, &options{})
	assert.Error(err)
}

func TestApplyEntities(t *testing.T) {
	m := newTestModel()

	// Icons without declared entities are left alone.
	applyEntities(m, 0, map[string]string{"r": "3"})
	assert.Nil(t, m.CurrentEntities(0))

	applyEntities(m, 1, map[string]string{"fg": "#ff0000"})
	assert.Contains(t, m.Markup(1), `r="6" fill="#ff0000"`)
}
