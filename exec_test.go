package iconview

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, results <-chan Result) []Result {
	t.Helper()

	var out []Result
	for res := range results {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func TestExec_Jobs(t *testing.T) {
	assert := assert.New(t)

	m := NewModel()
	m.SetIconSource(newTestSource())
	m.SetPrimaryColor(red)
	m.SetFilter("square")

	jobs := m.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(0, jobs[0].Index)
	assert.Equal("Square-Outline", jobs[1].Name)
	assert.Equal(m.Markup(0), jobs[0].Markup)
	assert.Contains(jobs[0].Markup, "#ff0000")
	assert.Nil(jobs[0].Bitmap)
}

func TestExec_ExportPNG(t *testing.T) {
	assert := assert.New(t)

	m := NewModel()
	m.SetIconSource(newTestSource())
	dir := filepath.Join(t.TempDir(), "out")

	exp := Exporter{Dir: dir, Format: FormatPNG, Size: 20, Workers: 3}
	results, err := exp.Run(context.Background(), m.Jobs())
	require.NoError(t, err)

	got := collect(t, results)
	require.Len(t, got, 4)
	for _, res := range got {
		if res.Name == "broken" {
			assert.ErrorIs(res.Err, ErrInvalidMarkup)
			assert.NoFileExists(res.Path)
			continue
		}
		require.NoError(t, res.Err, res.Name)
		assert.Equal(filepath.Join(dir, res.Name+".png"), res.Path)

		data, err := os.ReadFile(res.Path)
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(image.Rect(0, 0, 20, 20), img.Bounds())
	}
}

func TestExec_ExportSVG(t *testing.T) {
	m := NewModel()
	m.SetIconSource(newTestSource())
	m.SetFilter("dot")
	dir := t.TempDir()

	results, err := Exporter{Dir: dir, Format: FormatSVG}.Run(context.Background(), m.Jobs())
	require.NoError(t, err)

	got := collect(t, results)
	require.Len(t, got, 1)
	require.NoError(t, got[0].Err)

	data, err := os.ReadFile(filepath.Join(dir, "dot.svg"))
	require.NoError(t, err)
	assert.Equal(t, m.Markup(1), string(data))
}

func TestExec_ExportRaster(t *testing.T) {
	bmp := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src := NewRasterList("Bitmaps", 4, []RasterIcon{{Name: "a/b", Bitmap: bmp}})

	m := NewModel()
	m.SetIconSource(src)
	dir := t.TempDir()

	results, err := Exporter{Dir: dir, Format: FormatJPEG, Size: 8}.Run(context.Background(), m.Jobs())
	require.NoError(t, err)
	got := collect(t, results)
	require.Len(t, got, 1)
	require.NoError(t, got[0].Err)
	assert.FileExists(t, filepath.Join(dir, "a_b.jpg"))

	// Raster icons carry no markup.
	results, err = Exporter{Dir: dir, Format: FormatSVG}.Run(context.Background(), m.Jobs())
	require.NoError(t, err)
	got = collect(t, results)
	require.Len(t, got, 1)
	assert.Error(t, got[0].Err)
}

func TestExec_Cancel(t *testing.T) {
	m := NewModel()
	m.SetIconSource(newTestSource())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Exporter{Dir: t.TempDir(), Size: 8, Workers: 1}.Run(ctx, m.Jobs())
	require.NoError(t, err)
	// The channel is closed whatever number of jobs made it through.
	assert.LessOrEqual(t, len(collect(t, results)), 4)
}

func TestExec_Validate(t *testing.T) {
	_, err := Exporter{Dir: t.TempDir(), Size: 0}.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidSize)

	f, err := ParseExportFormat(".JPEG")
	assert.NoError(t, err)
	assert.Equal(t, FormatJPEG, f)
	assert.Equal(t, "jpg", f.Ext())
	_, err = ParseExportFormat("tiff")
	assert.Error(t, err)

	var buf bytes.Buffer
	assert.Error(t, Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 1, 1)), FormatSVG))
	assert.NoError(t, Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 1, 1)), FormatBMP))
}

func TestExec_FileName(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("home", fileName(Job{Name: " home "}))
	assert.Equal("a_b_c", fileName(Job{Name: `a/b\c`}))
	assert.Equal("icon-7", fileName(Job{Index: 7, Name: ".."}))
	assert.Equal("icon-3", fileName(Job{Index: 3}))
}
