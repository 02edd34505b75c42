package collection

import (
	"io/fs"
	"path"

	"github.com/esimov/iconview"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Register walks root, registering every collection directory it finds.
// Icons are not read until a source is created from the registry; load
// failures at that point are logged and yield no source. It returns the
// number of registered collections.
func Register(reg *iconview.Registry, fsys fs.FS, root string, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var count int
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if _, err := fs.Stat(fsys, path.Join(p, ManifestName)); err != nil {
			return nil
		}

		m, err := ReadManifest(fsys, p)
		if err != nil {
			return err
		}
		if err := register(reg, fsys, m, logger); err != nil {
			return err
		}
		logger.Debug("collection registered",
			zap.String("id", m.ID),
			zap.String("kind", m.Kind),
			zap.String("dir", p),
		)
		count++

		// Collections do not nest.
		return fs.SkipDir
	})
	if err != nil {
		return count, errors.Wrapf(err, "unable to register the collections under %s", root)
	}
	return count, nil
}

func register(reg *iconview.Registry, fsys fs.FS, m *Manifest, logger *zap.Logger) error {
	if m.Kind == KindRaster {
		return reg.RegisterRasterCollection(iconview.RasterCollection{
			ID:          m.ID,
			DisplayName: m.Name,
			Sizes:       m.Sizes,
			Factory: func(size int) iconview.RasterSource {
				list, err := LoadRaster(fsys, m, size, logger)
				if err != nil {
					logger.Warn("unable to load collection",
						zap.String("id", m.ID),
						zap.Int("size", size),
						zap.Error(err),
					)
					return nil
				}
				return list
			},
		})
	}

	dirs, err := m.StyleDirs()
	if err != nil {
		return err
	}
	styles := make(map[iconview.Style]func() iconview.VectorSource, len(dirs))
	for style := range dirs {
		style := style
		styles[style] = func() iconview.VectorSource {
			list, err := LoadVector(fsys, m, style)
			if err != nil {
				logger.Warn("unable to load collection",
					zap.String("id", m.ID),
					zap.Stringer("style", style),
					zap.Error(err),
				)
				return nil
			}
			return list
		}
	}
	return reg.RegisterVectorCollection(iconview.VectorCollection{
		ID:          m.ID,
		DisplayName: m.Name,
		BaseSize:    m.BaseSize,
		Sizes:       m.Sizes,
		Styles:      styles,
	})
}
