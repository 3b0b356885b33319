package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-consensus-timeline/internal/presentation/canvas"
	"github.com/penwyp/go-consensus-timeline/internal/presentation/graph"
	"github.com/penwyp/go-consensus-timeline/internal/util"
	"github.com/spf13/cobra"
)

// Render output formats
const (
	renderPNG  = "png"
	renderOps  = "ops"
	renderANSI = "ansi"
)

type renderOptions struct {
	sel    selectionFlags
	out    string
	format string
	width  int
	height int
	dpr    string
	hover  string
	brush  string
}

func newRenderCmd(opts *globalOptions) *cobra.Command {
	ro := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Paint the timeline of a time window to an image",
		Long: `Renders the same canvas as the interactive viewer without a terminal.

Formats:
  png   raster image at the given device pixel ratio
  ops   the recorded drawing operations as JSON
  ansi  truecolor half-block cells sized to the terminal

--hover x,y and --brush a,b simulate the pointer in canvas pixels, so the
highlighted element with its tooltip or the brush overlay appear in the output.`,
		Example: `  go-consensus-timeline render --file events.jsonl --out timeline.png
  go-consensus-timeline render --file events.jsonl --out timeline.png --dpr auto --range 5s
  go-consensus-timeline render --file events.jsonl --format ops --hover 400,120
  go-consensus-timeline render --file events.jsonl --format ansi`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogging(opts.debug, opts.logFormat, opts.logFile, opts.debug); err != nil {
				return err
			}
			defer util.CloseLogger()

			return runRender(cmd, ro)
		},
	}

	ro.sel.register(cmd)
	cmd.Flags().StringVarP(&ro.out, "out", "o", "-", "Output file (- for stdout)")
	cmd.Flags().StringVar(&ro.format, "format", renderPNG, "Output format (png, ops, ansi)")
	cmd.Flags().IntVar(&ro.width, "width", 1200, "Canvas width in logical pixels")
	cmd.Flags().IntVar(&ro.height, "height", 600, "Canvas height in logical pixels")
	cmd.Flags().StringVar(&ro.dpr, "dpr", "1", "Device pixel ratio, or auto to read it from the terminal")
	cmd.Flags().StringVar(&ro.hover, "hover", "", "Pointer position x,y to hover")
	cmd.Flags().StringVar(&ro.brush, "brush", "", "Drag from x=a to x=b, as a,b")
	return cmd
}

func runRender(cmd *cobra.Command, ro *renderOptions) error {
	factory, err := ro.factory(cmd)
	if err != nil {
		return err
	}
	ratio, err := parseRatio(ro.dpr)
	if err != nil {
		return err
	}

	state, err := ro.sel.load()
	if err != nil {
		return err
	}

	ctrl := graph.NewController(factory)
	ctrl.SetData(state.Filtered())
	ctrl.Resize(ro.width, ro.height, ratio)
	if ctrl.Scales() == nil {
		return errors.New("no events in the selected window")
	}
	if ctrl.Surface() == nil {
		return fmt.Errorf("could not create a %dx%d canvas", ro.width, ro.height)
	}

	if ro.brush != "" {
		a, b, err := parsePair(ro.brush)
		if err != nil {
			return fmt.Errorf("invalid --brush: %w", err)
		}
		mid := ctrl.Margins().Top + ctrl.Scales().InnerHeight/2
		ctrl.PointerDown(a, mid)
		ctrl.PointerMove(b, mid)

		left := ctrl.Margins().Left
		util.LogInfo("brush",
			util.Field{Key: "from", Value: int64(ctrl.Scales().Time.Invert(min(a, b) - left))},
			util.Field{Key: "to", Value: int64(ctrl.Scales().Time.Invert(max(a, b) - left))})
	}
	if ro.hover != "" {
		x, y, err := parsePair(ro.hover)
		if err != nil {
			return fmt.Errorf("invalid --hover: %w", err)
		}
		ctrl.PointerMove(x, y)
	}

	surface := ctrl.Surface()
	if rec, ok := surface.(*canvas.Recorder); ok {
		rec.Reset()
	}
	ctrl.Redraw()
	if cell, ok := surface.(*canvas.CellSurface); !ok {
		graph.DrawTooltip(surface, ctrl.Tooltip(), ratio)
	} else if tip := ctrl.Tooltip(); tip.Visible {
		col, row := int(tip.X/canvas.CellWidth), int(tip.Y/canvas.CellHeight)
		cell.Overlay(col, row, tip.Text(), graph.TooltipForeground, graph.TooltipBackground)
	}

	w, closeOut, err := openOutput(cmd, ro.out)
	if err != nil {
		return err
	}
	if err := writeSurface(w, surface); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

// factory picks the surface backend; ansi defaults its size to the terminal
func (ro *renderOptions) factory(cmd *cobra.Command) (canvas.Factory, error) {
	switch ro.format {
	case renderPNG:
		return canvas.RasterFactory(), nil
	case renderOps:
		return canvas.RecorderFactory(), nil
	case renderANSI:
		cols, rows := util.TerminalSize(os.Stdout)
		if !cmd.Flags().Changed("width") {
			ro.width = int(float64(cols) * canvas.CellWidth)
		}
		if !cmd.Flags().Changed("height") {
			ro.height = int(float64(rows-1) * canvas.CellHeight)
		}
		return canvas.CellFactory(), nil
	default:
		return nil, fmt.Errorf("unknown render format %q (want png, ops or ansi)", ro.format)
	}
}

func writeSurface(w io.Writer, surface canvas.Surface) error {
	switch s := surface.(type) {
	case *canvas.CellSurface:
		_, err := io.WriteString(w, s.String()+"\n")
		return err
	case *canvas.RasterSurface:
		return s.EncodePNG(w)
	case *canvas.Recorder:
		data, err := sonic.ConfigStd.MarshalIndent(s.Ops, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	default:
		return fmt.Errorf("cannot write a %T surface", surface)
	}
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, f.Close, nil
}

// parseRatio accepts a positive number or auto
func parseRatio(s string) (float64, error) {
	if strings.EqualFold(s, "auto") {
		return util.PixelRatio(os.Stdout), nil
	}
	ratio, err := strconv.ParseFloat(s, 64)
	if err != nil || ratio <= 0 {
		return 0, fmt.Errorf("invalid --dpr %q (want a positive number or auto)", s)
	}
	return ratio, nil
}

// parsePair reads "a,b" as two floats
func parsePair(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want two comma separated numbers, got %q", s)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
