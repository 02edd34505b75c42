package collection

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/esimov/iconview"
	"github.com/esimov/iconview/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadVector loads the icons of one style of a vector collection. Files are
// read in lexical order and named after their stem.
func LoadVector(fsys fs.FS, m *Manifest, style iconview.Style) (*iconview.VectorList, error) {
	dirs, err := m.StyleDirs()
	if err != nil {
		return nil, err
	}
	sub, ok := dirs[style]
	if !ok {
		return nil, errors.Wrapf(iconview.ErrUnknownCollection, "collection %s has no %s style", m.ID, style)
	}

	dir := path.Join(m.dir, sub)
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to list %s", dir)
	}

	var icons []iconview.VectorIcon
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(path.Ext(e.Name()), ".svg") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read %s", e.Name())
		}
		name := stem(e.Name())
		meta := m.meta(name)
		icons = append(icons, iconview.VectorIcon{
			Name:     name,
			Markup:   string(data),
			Tags:     meta.Tags,
			Category: meta.Category,
		})
	}
	return iconview.NewVectorList(m.Name, m.BaseSize, icons), nil
}

// LoadRaster loads the bitmaps of a raster collection at one size. Files
// which are not images are skipped.
func LoadRaster(fsys fs.FS, m *Manifest, size int, logger *zap.Logger) (*iconview.RasterList, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dir := path.Join(m.dir, strconv.Itoa(size))
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to list %s", dir)
	}

	var icons []iconview.RasterIcon
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := path.Join(dir, e.Name())
		if !utils.IsImage(fsys, name) {
			logger.Debug("skipping non image file", zap.String("path", name))
			continue
		}
		img, err := decode(fsys, name)
		if err != nil {
			return nil, err
		}
		meta := m.meta(stem(e.Name()))
		icons = append(icons, iconview.RasterIcon{
			Name:    stem(e.Name()),
			Bitmap:  img,
			Aliases: meta.Aliases,
		})
	}
	return iconview.NewRasterList(m.Name, size, icons), nil
}

func decode(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", name)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode %s", name)
	}
	return img, nil
}

func (m *Manifest) meta(name string) IconMeta {
	return m.Icons[name]
}

func stem(file string) string {
	return strings.TrimSuffix(file, path.Ext(file))
}
