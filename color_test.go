package iconview

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColor_Parse(t *testing.T) {
	testCases := []struct {
		in   string
		want color.NRGBA
	}{
		{"", Transparent},
		{"none", Transparent},
		{" Transparent ", Transparent},
		{"#FF0000", color.NRGBA{R: 0xff, A: 0xff}},
		{"#0f0", color.NRGBA{G: 0xff, A: 0xff}},
		{"#11223380", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}},
		{"white", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"RoyalBlue", color.NRGBA{R: 0x41, G: 0x69, B: 0xe1, A: 0xff}},
	}
	for _, tc := range testCases {
		got, err := ParseColor(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, in := range []string{"#12", "#12345", "#1234567", "#zzzzzz", "#112233zz", "notacolor"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestColor_Format(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("#ff0000", HexColor(color.NRGBA{R: 0xff, A: 0x10}))
	assert.Equal("none", FormatColor(Transparent))
	assert.Equal("#0a0b0c", FormatColor(color.NRGBA{R: 10, G: 11, B: 12, A: 0xff}))
	assert.Equal("#0a0b0c80", FormatColor(color.NRGBA{R: 10, G: 11, B: 12, A: 0x80}))

	for _, c := range []color.NRGBA{Transparent, red, {R: 1, G: 2, B: 3, A: 4}} {
		got, err := ParseColor(FormatColor(c))
		assert.NoError(err)
		assert.Equal(c, got)
	}
}
