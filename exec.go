package iconview

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/esimov/iconview/imop"
	"github.com/esimov/iconview/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// ExportFormat is the file format written by an Exporter.
type ExportFormat int

const (
	FormatPNG ExportFormat = iota
	FormatBMP
	FormatJPEG
	// FormatSVG writes the transformed markup verbatim.
	FormatSVG
)

// Ext returns the file extension of the format, without the dot.
func (f ExportFormat) Ext() string {
	switch f {
	case FormatBMP:
		return "bmp"
	case FormatJPEG:
		return "jpg"
	case FormatSVG:
		return "svg"
	}
	return "png"
}

func (f ExportFormat) String() string { return f.Ext() }

// ParseExportFormat parses a format name or file extension.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "svg":
		return FormatSVG, nil
	}
	return FormatPNG, errors.Errorf("unsupported export format %q", s)
}

// Job is a self-contained snapshot of one entry, safe to hand to another
// goroutine. Exactly one of Markup and Bitmap is set.
type Job struct {
	Index  int
	Name   string
	Markup string
	Bitmap image.Image
}

// Result reports the outcome of exporting one job.
type Result struct {
	Name string
	Path string
	Err  error
}

// Jobs snapshots the entries passing the filter, with their markup fully
// transformed under the active render parameters.
func (m *Model) Jobs() []Job {
	rows := m.view.Rows()
	jobs := make([]Job, 0, len(rows))
	rs, raster := AsRaster(m.src)
	for _, i := range rows {
		j := Job{Index: i, Name: m.entries[i].Name}
		if raster {
			j.Bitmap = rs.Bitmap(i)
		} else {
			j.Markup = m.Markup(i)
		}
		jobs = append(jobs, j)
	}
	return jobs
}

// Exporter renders jobs into files of a directory using a pool of workers.
type Exporter struct {
	Dir      string
	Format   ExportFormat
	Size     int
	Workers  int
	Renderer Renderer
	Logger   *zap.Logger
}

// Run validates the exporter and starts exporting jobs concurrently. One
// Result is sent per job on the returned channel, which is closed once all
// workers are done. Cancelling ctx stops the export early; the caller must
// either drain the channel or cancel ctx.
func (e Exporter) Run(ctx context.Context, jobs []Job) (<-chan Result, error) {
	if e.Format != FormatSVG && e.Size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "size %d", e.Size)
	}
	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return nil, errors.Wrap(err, "unable to create the destination directory")
	}

	workers := e.Workers
	// Limit the concurrently running workers to maxWorkers.
	if workers <= 0 || workers > maxWorkers {
		workers = utils.Min(runtime.NumCPU(), maxWorkers)
	}
	if e.Logger == nil {
		e.Logger = zap.NewNop()
	}

	pending := produce(ctx, jobs)
	res := make(chan Result)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			e.consumer(ctx, pending, res)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(res)
		wg.Wait()
	}()

	return res, nil
}

// produce starts a new goroutine sending the jobs one by one. It finishes
// when every job was handed out or the context gets cancelled.
func produce(ctx context.Context, jobs []Job) <-chan Job {
	out := make(chan Job)
	go func() {
		defer close(out)
		for _, j := range jobs {
			select {
			case <-ctx.Done():
				return
			case out <- j:
			}
		}
	}()
	return out
}

// consumer exports the jobs received on the pending channel with its own
// copy of the renderer.
func (e Exporter) consumer(ctx context.Context, pending <-chan Job, res chan<- Result) {
	r := e.Renderer
	for j := range pending {
		path, err := e.export(r, j)
		if err != nil {
			e.Logger.Debug("export failed", zap.String("name", j.Name), zap.Error(err))
		} else {
			e.Logger.Debug("exported", zap.String("name", j.Name), zap.String("path", path))
		}

		select {
		case <-ctx.Done():
			return
		case res <- Result{Name: j.Name, Path: path, Err: err}:
		}
	}
}

// export writes a single job and returns the path of the generated file.
func (e Exporter) export(r Renderer, j Job) (string, error) {
	path := filepath.Join(e.Dir, fileName(j)+"."+e.Format.Ext())

	if e.Format == FormatSVG {
		if j.Markup == "" {
			return path, errors.Errorf("%s: no markup to write", j.Name)
		}
		if err := os.WriteFile(path, []byte(j.Markup), 0644); err != nil {
			return path, errors.Wrap(err, "unable to write the markup")
		}
		return path, nil
	}

	var (
		img *image.NRGBA
		err error
	)
	if j.Bitmap != nil {
		img, err = r.RenderBitmap(j.Bitmap, e.Size)
	} else {
		img, err = r.RenderMarkup(j.Markup, e.Size)
	}
	if err != nil {
		return path, errors.Wrapf(err, "%s", j.Name)
	}

	f, err := os.Create(path)
	if err != nil {
		return path, errors.Wrap(err, "unable to create the destination file")
	}
	if err := Encode(f, img, e.Format); err != nil {
		f.Close()
		// remove the generated file in case of an error
		os.Remove(path)
		return path, err
	}
	return path, errors.Wrap(f.Close(), "could not close the destination file")
}

// Encode writes img to w in the given bitmap format. JPEG output is
// flattened onto white since the format carries no alpha channel.
func Encode(w io.Writer, img *image.NRGBA, f ExportFormat) error {
	var (
		format imaging.Format
		opts   []imaging.EncodeOption
	)
	switch f {
	case FormatPNG:
		format = imaging.PNG
	case FormatBMP:
		format = imaging.BMP
	case FormatJPEG:
		white := newCanvas(img.Bounds().Dx(), color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
		img = imop.Composite(imop.SrcOver, img, white)
		format = imaging.JPEG
		opts = append(opts, imaging.JPEGQuality(95))
	default:
		return errors.Errorf("%s is not a bitmap format", f)
	}
	return errors.Wrap(imaging.Encode(w, img, format, opts...), "unable to encode the image")
}

// fileName turns the entry name into a safe base file name.
func fileName(j Job) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, strings.TrimSpace(j.Name))
	if name == "" || name == "." || name == ".." {
		return fmt.Sprintf("icon-%d", j.Index)
	}
	return name
}
