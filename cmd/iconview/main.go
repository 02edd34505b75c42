package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/esimov/iconview"
	"github.com/esimov/iconview/collection"
	"github.com/esimov/iconview/config"
	"github.com/esimov/iconview/utils"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const HelpBanner = `
┬┌─┐┌─┐┌┐┌┬  ┬┬┌─┐┬ ┬
││  │ ││││└┐┌┘│├┤ │││
┴└─┘└─┘┘└┘ └┘ ┴└─┘└┴┘

Icon catalogue browser and exporter.
    Version: %s

Usage: iconview [flags] <collections|list|markup|render|export>

`

// pipeName is the file name that indicates stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

// options holds the command line flags.
type options struct {
	configPath  string
	root        string
	collection  string
	style       string
	bitmapSize  int
	size        int
	primary     string
	tone        string
	background  string
	strokeMode  string
	strokeLevel int
	grayscale   bool
	filter      string
	entities    map[string]string
	name        string
	out         string
	format      string
	workers     int
	logLevel    string
}

func main() {
	log.SetFlags(0)

	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}
}

func run(args []string) error {
	var opts options

	flags := pflag.NewFlagSet("iconview", pflag.ContinueOnError)
	flags.StringVar(&opts.configPath, "config", "", "Configuration file (TOML)")
	flags.StringVar(&opts.root, "root", "", "Directory holding the icon collections")
	flags.StringVarP(&opts.collection, "collection", "c", "", "Collection id")
	flags.StringVar(&opts.style, "style", "outline", "Vector style: outline, filled or twotone")
	flags.IntVar(&opts.bitmapSize, "bitmap-size", 0, "Native size of a raster collection")
	flags.IntVarP(&opts.size, "size", "s", 0, "Render size in pixels")
	flags.StringVar(&opts.primary, "primary", "", "Primary colour replacing currentColor")
	flags.StringVar(&opts.tone, "tone", "", "Tone colour of two-tone icons")
	flags.StringVar(&opts.background, "bg", "", "Background colour")
	flags.StringVar(&opts.strokeMode, "stroke-mode", "", "Stroke mode: fill or scale")
	flags.IntVar(&opts.strokeLevel, "stroke-level", 0, "Stroke level")
	flags.BoolVar(&opts.grayscale, "grayscale", false, "Desaturate raster icons")
	flags.StringVarP(&opts.filter, "filter", "f", "", "Show only icons whose name contains the text")
	flags.StringToStringVar(&opts.entities, "entity", nil, "Entity override as name=value")
	flags.StringVarP(&opts.name, "name", "n", "", "Icon name")
	flags.StringVarP(&opts.out, "out", "o", "", "Destination file, directory or - for stdout")
	flags.StringVar(&opts.format, "format", "", "Output format: png, bmp, jpg or svg")
	flags.IntVar(&opts.workers, "conc", 0, "Number of icons to export concurrently")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return errors.New("please provide a command")
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(flags, &opts, &cfg)

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	reg := iconview.NewRegistry()
	if _, err := collection.Register(reg, os.DirFS(cfg.Root), ".", logger); err != nil {
		return err
	}

	cmd := flags.Arg(0)
	if cmd == "collections" {
		printCollections(reg)
		return nil
	}

	params, err := cfg.RenderParams()
	if err != nil {
		return err
	}
	model, err := newModel(reg, &opts, &cfg, params, logger)
	if err != nil {
		return err
	}

	switch cmd {
	case "list":
		return list(model)
	case "markup":
		return markup(model, &opts)
	case "render":
		return render(model, &opts)
	case "export":
		return export(model, &opts, &cfg, logger)
	}
	flags.Usage()
	return fmt.Errorf("unknown command %q", cmd)
}

// applyFlags overrides the configuration with the flags set explicitly.
func applyFlags(flags *pflag.FlagSet, opts *options, cfg *config.Config) {
	if flags.Changed("root") {
		cfg.Root = opts.root
	}
	if flags.Changed("size") {
		cfg.Size = opts.size
	}
	if flags.Changed("primary") {
		cfg.Primary = opts.primary
	}
	if flags.Changed("tone") {
		cfg.Tone = opts.tone
	}
	if flags.Changed("bg") {
		cfg.Background = opts.background
	}
	if flags.Changed("stroke-mode") {
		cfg.StrokeMode = opts.strokeMode
	}
	if flags.Changed("stroke-level") {
		cfg.StrokeLevel = opts.strokeLevel
	}
	if flags.Changed("grayscale") {
		cfg.Grayscale = opts.grayscale
	}
	if flags.Changed("conc") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if lvl.Level() == zap.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = lvl
	return zc.Build()
}

func newModel(
	reg *iconview.Registry,
	opts *options,
	cfg *config.Config,
	params iconview.RenderParams,
	logger *zap.Logger,
) (*iconview.Model, error) {
	if opts.collection == "" {
		return nil, errors.New("please provide a collection with --collection")
	}

	var src iconview.IconSource
	if _, ok := reg.FindRasterCollection(opts.collection); ok {
		if bs := reg.CreateBitmapList(opts.collection, opts.bitmapSize); bs != nil {
			src = bs
		}
	} else {
		style, err := iconview.ParseStyle(opts.style)
		if err != nil {
			return nil, err
		}
		if vs := reg.CreateIconList(opts.collection, style); vs != nil {
			src = vs
		}
	}
	if src == nil {
		return nil, fmt.Errorf("%s: %w", opts.collection, iconview.ErrUnknownCollection)
	}

	model := iconview.NewModel(
		iconview.WithCacheSize(cfg.CacheSize),
		iconview.WithLogger(logger),
		iconview.WithRenderParams(params),
	)
	model.SetIconSource(src)
	model.SetFilter(opts.filter)
	return model, nil
}

func printCollections(reg *iconview.Registry) {
	for _, c := range reg.Collections() {
		styles := make([]string, 0, 3)
		for _, s := range reg.AvailableStyles(c.ID) {
			styles = append(styles, s.String())
		}
		fmt.Printf("%s\t%s\tvector\t%s\n", c.ID, c.DisplayName, strings.Join(styles, ","))
	}
	for _, c := range reg.RasterCollections() {
		sizes := make([]string, 0, len(c.Sizes))
		for _, s := range c.Sizes {
			sizes = append(sizes, fmt.Sprint(s))
		}
		fmt.Printf("%s\t%s\traster\t%s\n", c.ID, c.DisplayName, strings.Join(sizes, ","))
	}
}

func list(model *iconview.Model) error {
	for r := 0; r < model.RowCount(); r++ {
		e, ok := model.Get(r)
		if !ok {
			continue
		}
		extra := model.Tags(e.Index)
		if model.IsRaster() {
			extra = model.Aliases(e.Index)
		}
		if len(extra) > 0 {
			fmt.Printf("%s\t%s\n", e.Name, strings.Join(extra, ","))
		} else {
			fmt.Println(e.Name)
		}
	}
	fmt.Fprintln(os.Stderr, utils.DecorateText(model.Summary(), utils.StatusMessage))
	return nil
}

// lookup resolves the --name flag to an entry index and applies the entity overrides.
func lookup(model *iconview.Model, opts *options) (int, error) {
	if opts.name == "" {
		return -1, errors.New("please provide an icon with --name")
	}
	i := model.IndexOf(opts.name)
	if i < 0 {
		return -1, fmt.Errorf("no icon named %q", opts.name)
	}
	applyEntities(model, i, opts.entities)
	return i, nil
}

// applyEntities overrides the given entities of entry i, keeping the others.
func applyEntities(model *iconview.Model, i int, entities map[string]string) {
	if len(entities) == 0 || !model.HasEntities(i) {
		return
	}
	current := model.CurrentEntities(i)
	if current == nil {
		current = make(iconview.EntityMap, len(entities))
	}
	for k, v := range entities {
		current[k] = v
	}
	model.SetEntityOverrides(i, current)
}

func markup(model *iconview.Model, opts *options) error {
	i, err := lookup(model, opts)
	if err != nil {
		return err
	}
	text := model.Markup(i)
	if text == "" {
		return fmt.Errorf("%s has no markup", opts.name)
	}
	fmt.Println(text)
	return nil
}

func render(model *iconview.Model, opts *options) error {
	i, err := lookup(model, opts)
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = pipeName
	}
	format := opts.format
	if format == "" && out != pipeName {
		format = filepath.Ext(out)
	}
	f, err := iconview.ParseExportFormat(format)
	if err != nil {
		return err
	}

	dst, err := utils.OpenOutput(out, pipeName)
	if err != nil {
		return err
	}
	defer dst.Close()

	if f == iconview.FormatSVG {
		text := model.Markup(i)
		if text == "" {
			return fmt.Errorf("%s has no markup", opts.name)
		}
		_, err = fmt.Fprint(dst, text)
		return err
	}

	img := model.RenderedImage(i)
	if img == nil {
		return fmt.Errorf("%s: %w", opts.name, iconview.ErrInvalidMarkup)
	}
	if err := iconview.Encode(dst, img, f); err != nil {
		return err
	}
	if out != pipeName {
		fmt.Fprintf(os.Stderr, "The icon has been saved as: %s\n",
			utils.DecorateText(filepath.Base(out), utils.SuccessMessage),
		)
	}
	return nil
}

func export(model *iconview.Model, opts *options, cfg *config.Config, logger *zap.Logger) error {
	if len(opts.entities) > 0 {
		for _, i := range model.Rows() {
			applyEntities(model, i, opts.entities)
		}
	}

	f, err := iconview.ParseExportFormat(opts.format)
	if err != nil {
		return err
	}
	dir := opts.out
	if dir == "" || dir == pipeName {
		dir = "icons"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobs := model.Jobs()
	exp := iconview.Exporter{
		Dir:      dir,
		Format:   f,
		Size:     model.RenderParams().Size,
		Workers:  cfg.Workers,
		Renderer: iconview.RendererFor(model.RenderParams()),
		Logger:   logger,
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ ICONVIEW", utils.StatusMessage),
		utils.DecorateText("is exporting the icons...", utils.DefaultMessage))
	spinner := utils.NewSpinner(spinnerText, time.Millisecond*100, true)

	now := time.Now()
	results, err := exp.Run(ctx, jobs)
	if err != nil {
		return err
	}
	spinner.Start()

	var (
		done   int
		failed []string
	)
	for res := range results {
		done++
		if res.Err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", res.Name, res.Err))
		}
		spinner.Suffix(fmt.Sprintf("%d/%d", done, len(jobs)))
	}

	spinner.StopMsg = fmt.Sprintf("%s %s\n",
		utils.DecorateText("⚡ ICONVIEW", utils.StatusMessage),
		utils.DecorateText(fmt.Sprintf("exported %d of %d icons ✔", done-len(failed), len(jobs)), utils.DefaultMessage))
	spinner.Stop()

	sort.Strings(failed)
	for _, msg := range failed {
		fmt.Fprintln(os.Stderr, utils.DecorateText(msg, utils.ErrorMessage))
	}
	if ctx.Err() != nil {
		return errors.New("export cancelled")
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	if len(failed) > 0 {
		return fmt.Errorf("%d icons could not be exported", len(failed))
	}
	return nil
}
