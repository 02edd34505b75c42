// Package collection loads icon collections laid out on a file system and
// registers them with an iconview.Registry.
//
// Every collection lives in its own directory holding a collection.yaml
// manifest. Vector collections keep one subdirectory of *.svg files per
// style; raster collections keep one subdirectory per pixel size.
package collection

import (
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/esimov/iconview"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ManifestName is the file name marking a collection directory.
const ManifestName = "collection.yaml"

// Kind values of a manifest.
const (
	KindVector = "vector"
	KindRaster = "raster"
)

// IconMeta holds the optional per-icon metadata of a manifest.
type IconMeta struct {
	Tags     []string `yaml:"tags"`
	Category string   `yaml:"category"`
	Aliases  []string `yaml:"aliases"`
}

// Manifest describes one collection.
type Manifest struct {
	ID       string              `yaml:"id"`
	Name     string              `yaml:"name"`
	Kind     string              `yaml:"kind"`
	BaseSize int                 `yaml:"baseSize"`
	Sizes    []int               `yaml:"sizes"`
	Styles   map[string]string   `yaml:"styles"`
	Icons    map[string]IconMeta `yaml:"icons"`

	// dir is the collection directory the manifest was read from.
	dir string
}

// Dir returns the directory holding the manifest.
func (m *Manifest) Dir() string { return m.dir }

// ReadManifest reads and normalizes the manifest of the collection in dir.
// Missing identifiers default to the directory name.
func ReadManifest(fsys fs.FS, dir string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, path.Join(dir, ManifestName))
	if err != nil {
		return nil, errors.Wrap(err, "unable to read the manifest")
	}

	m := new(Manifest)
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, errors.Wrapf(err, "malformed manifest in %s", dir)
	}
	m.dir = dir

	if m.ID == "" {
		m.ID = path.Base(dir)
	}
	if m.Name == "" {
		m.Name = m.ID
	}
	m.Kind = strings.ToLower(strings.TrimSpace(m.Kind))
	switch m.Kind {
	case "":
		m.Kind = KindVector
	case KindVector, KindRaster:
	default:
		return nil, errors.Errorf("%s: unknown collection kind %q", dir, m.Kind)
	}
	if m.BaseSize <= 0 {
		m.BaseSize = iconview.DefaultIconSize
	}
	if m.Kind == KindVector && len(m.Styles) == 0 {
		m.Styles = map[string]string{iconview.Outline.String(): "."}
	}
	if m.Kind == KindRaster && len(m.Sizes) == 0 {
		m.Sizes = []int{m.BaseSize}
	}
	return m, nil
}

// StyleDirs maps the styles of a vector manifest to their directories,
// relative to the manifest directory.
func (m *Manifest) StyleDirs() (map[iconview.Style]string, error) {
	dirs := make(map[iconview.Style]string, len(m.Styles))

	// Sorted so that errors are reported deterministically.
	keys := make([]string, 0, len(m.Styles))
	for k := range m.Styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		style, err := iconview.ParseStyle(k)
		if err != nil {
			return nil, errors.Wrapf(err, "collection %s", m.ID)
		}
		if style == iconview.TwoTone {
			return nil, errors.Errorf("collection %s: the two-tone style is composed, not loaded", m.ID)
		}
		dirs[style] = m.Styles[k]
	}
	return dirs, nil
}
