package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/shelfmount/pkg/errors"
	"github.com/matzehuels/shelfmount/pkg/pipeline"
	"github.com/matzehuels/shelfmount/pkg/render"
)

// renderFlags are the output flags shared by render, template and
// calibrate.
type renderFlags struct {
	view    string
	formats string
	output  string
	width   float64
	height  float64
	padding float64
	scale   float64
	opacity float64
	refresh bool
}

func (f *renderFlags) register(cmd *cobra.Command, withView bool) {
	fl := cmd.Flags()
	if withView {
		fl.StringVar(&f.view, "view", pipeline.DefaultView, "view: top, front, template or calibration")
		_ = cmd.RegisterFlagCompletionFunc("view", fixedCompletion(pipeline.ViewTop, pipeline.ViewFront, pipeline.ViewTemplate, pipeline.ViewCalibration))
	}
	fl.StringVarP(&f.formats, "format", "f", f.formats, "output format(s), comma-separated: "+strings.Join(pipeline.Formats, ", "))
	fl.StringVarP(&f.output, "output", "o", "", `output file, or base path for several formats ("-" for stdout)`)
	fl.Float64Var(&f.width, "width", 0, "drawing width in output units (default from config)")
	fl.Float64Var(&f.height, "height", 0, "drawing height in output units (default from config)")
	fl.Float64Var(&f.padding, "padding", 0, "drawing padding (default from config)")
	fl.Float64Var(&f.scale, "scale", 0, "pixel scale for png, canvas and webp")
	fl.Float64Var(&f.opacity, "shelf-opacity", 0, "shelf fill opacity, 0 to 1 (default from config)")
	fl.BoolVar(&f.refresh, "refresh", false, "ignore cached artifacts")
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(pipeline.Formats...))
}

// apply copies the flags over opts.
func (f *renderFlags) apply(opts *pipeline.Options) error {
	formats, err := parseFormats(f.formats)
	if err != nil {
		return err
	}
	opts.Formats = formats
	if f.view != "" {
		opts.View = f.view
	}
	if f.width > 0 {
		opts.Width = f.width
	}
	if f.height > 0 {
		opts.Height = f.height
	}
	if f.padding > 0 {
		opts.Padding = f.padding
	}
	if f.opacity > 0 {
		opts.ShelfOpacity = f.opacity
	}
	opts.Scale = f.scale
	opts.Refresh = f.refresh
	return nil
}

func (c *CLI) renderCommand() *cobra.Command {
	var (
		in  inputFlags
		out renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a view of the solved placement",
		Example: `  shelfmount render --view top -f svg,webp
  shelfmount render --view front --spacing "29 1/8" -o front.pdf -f pdf
  shelfmount render -f dxf -o bracket.dxf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := in.resolve(cmd.Context(), c)
			if err != nil {
				return err
			}
			if err := out.apply(&opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, out.output)
		},
	}

	in.register(cmd)
	out.register(cmd, true)
	return cmd
}

func (c *CLI) templateCommand() *cobra.Command {
	var (
		in  inputFlags
		out renderFlags
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Render the 1:1 drilling template",
		Long: `Render a letter-size drilling template with both bracket corners at true
scale. Print it at 100% (no "fit to page") and check the scale squares with a
ruler before drilling.

PDF output needs rsvg-convert; without it the template is written as SVG.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := in.resolve(cmd.Context(), c)
			if err != nil {
				return err
			}
			out.formats = printFormat(cmd, out.formats)
			if err := out.apply(&opts); err != nil {
				return err
			}
			opts.View = pipeline.ViewTemplate
			return c.runRender(cmd.Context(), opts, out.output)
		},
	}

	out.formats = pipeline.FormatPDF
	in.register(cmd)
	out.register(cmd, false)
	return cmd
}

func (c *CLI) calibrateCommand() *cobra.Command {
	var out renderFlags

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Render the printer calibration page",
		Long: `Render a page of bracket outlines offset in 1/2 mm steps. Print it, lay a
bracket on the outlines and pick the one that matches to find your printer's
scale error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			sp, err := c.settings().Spacing()
			if err != nil {
				return err
			}
			opts.Spacing = sp
			out.formats = printFormat(cmd, out.formats)
			if err := out.apply(&opts); err != nil {
				return err
			}
			opts.View = pipeline.ViewCalibration
			return c.runRender(cmd.Context(), opts, out.output)
		},
	}

	out.formats = pipeline.FormatPDF
	out.register(cmd, false)
	return cmd
}

// printFormat falls back from the default PDF to SVG when rsvg-convert is
// missing and the user did not ask for a format.
func printFormat(cmd *cobra.Command, formats string) string {
	if cmd.Flags().Changed("format") || formats != pipeline.FormatPDF || render.Available() {
		return formats
	}
	loggerFromContext(cmd.Context()).Warn("rsvg-convert not found, writing SVG instead of PDF")
	return pipeline.FormatSVG
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if output == "-" && len(opts.Formats) > 1 {
		return errs.New(errs.ErrCodeInvalidInput, "cannot write %d formats to stdout", len(opts.Formats))
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s view...", opts.View))
	if output != "-" {
		spinner.Start()
	}
	result, err := runner.Execute(ctx, c.geometry(), opts)
	if output != "-" {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s view", opts.View))

	if output == "-" {
		_, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	var written []string
	for _, format := range opts.Formats {
		path := outputPath(output, opts.View, format, len(opts.Formats) > 1)
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		written = append(written, path)
	}

	printSuccess("Rendered %s view", StyleHighlight.Render(opts.View))
	for _, path := range written {
		printFile(path)
	}
	printCacheStatus(result.CacheInfo.Hits, len(opts.Formats))
	for _, w := range result.Warnings {
		printWarning("%s", w.Message)
	}
	if opts.View == pipeline.ViewTemplate || opts.View == pipeline.ViewCalibration {
		printDetail("Print at 100%% scale and check the scale squares with a ruler")
	}
	return nil
}

// outputPath picks the file name for one artifact. Without -o files are
// named after the view; with several formats a known extension on -o is
// replaced per format.
func outputPath(output, view, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	suffix := ""
	if format == pipeline.FormatCanvas {
		suffix = "-canvas"
	}
	ext := pipeline.Extension(format)
	if output == "" {
		if format == pipeline.FormatDXF {
			view = "bracket"
		}
		return fmt.Sprintf("%s-%s%s.%s", appName, view, suffix, ext)
	}
	base := output
	if e := filepath.Ext(output); slices.Contains(pipeline.Formats, strings.TrimPrefix(e, ".")) {
		base = strings.TrimSuffix(output, e)
	}
	return base + suffix + "." + ext
}

// writeFile writes data atomically, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
