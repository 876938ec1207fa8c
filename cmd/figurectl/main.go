package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"figuremaker/internal/figure/document"
	"figuremaker/internal/figure/element"
	"figuremaker/internal/figure/geom"
	"figuremaker/internal/figure/render"
	"figuremaker/internal/figure/svgimport"

	"github.com/tdewolff/argp"
)

// ============================================================
// Commands
// ============================================================

type Info struct {
	Input string `index:"0" desc:"Document file"`
}

type Import struct {
	Output string `short:"o" default:"figure.json" desc:"Output document"`
	Append bool   `short:"a" desc:"Append to an existing output document"`
	Input  string `index:"0" desc:"Input SVG file"`
}

type Export struct {
	Output string `short:"o" desc:"Output file (.svg or .png)"`
	Width  int    `short:"W" desc:"Canvas width, 0 fits content"`
	Height int    `short:"H" desc:"Canvas height, 0 fits content"`
	Minify bool   `short:"m" desc:"Minify SVG output"`
	Input  string `index:"0" desc:"Document file"`
}

func main() {
	root := argp.NewCmd(&Info{}, "Figure document toolkit: import SVG, export SVG/PNG, inspect documents")
	root.AddCmd(&Import{}, "import", "Import an SVG file into a document")
	root.AddCmd(&Export{}, "export", "Export a document to SVG or PNG")
	root.AddCmd(&Info{}, "info", "Print document summary")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Info) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	doc := document.New()
	if err := doc.LoadFile(cmd.Input); err != nil {
		return err
	}
	printInfo(os.Stdout, filepath.Base(cmd.Input), doc.Elements())
	return nil
}

func (cmd *Import) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	im := svgimport.NewImporter()
	elems, err := im.ParseFile(cmd.Input)
	if err != nil {
		return err
	}
	for _, w := range im.Warnings() {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	doc := document.New()
	if cmd.Append {
		if err := doc.LoadFile(cmd.Output); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	for _, e := range elems {
		doc.Add(e)
	}
	if err := doc.SaveFile(cmd.Output); err != nil {
		return err
	}
	fmt.Printf("%s: %d elements imported, %d total\n", cmd.Output, len(elems), doc.Len())
	return nil
}

func (cmd *Export) Run() error {
	if cmd.Input == "" || cmd.Output == "" {
		return argp.ShowUsage
	}
	doc := document.New()
	if err := doc.LoadFile(cmd.Input); err != nil {
		return err
	}
	data, err := export(doc.Elements(), cmd.Output, cmd.Width, cmd.Height, cmd.Minify)
	if err != nil {
		return err
	}
	return os.WriteFile(cmd.Output, data, 0o644)
}

// ============================================================
// Helpers
// ============================================================

// export выбирает формат по расширению выходного файла.
func export(elems []element.Element, output string, width, height int, minify bool) ([]byte, error) {
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".svg":
		out, err := render.ExportSVG(elems, render.SVGOptions{Width: width, Height: height, Minify: minify})
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	case ".png":
		return render.RasterPNG(elems, render.RasterOptions{Width: width, Height: height})
	default:
		return nil, fmt.Errorf("unsupported output format %q", ext)
	}
}

func printInfo(w io.Writer, name string, elems []element.Element) {
	counts := map[element.Kind]int{}
	var bounds geom.Rect
	for i, e := range elems {
		counts[e.Kind()]++
		if i == 0 {
			bounds = element.VisualBounds(e)
		} else {
			bounds = bounds.Union(element.VisualBounds(e))
		}
	}

	fmt.Fprintln(w, "File name:", name)
	fmt.Fprintln(w, "Elements:", len(elems))
	if len(elems) > 0 {
		fmt.Fprintf(w, "Bounds: %d,%d %dx%d\n", bounds.X, bounds.Y, bounds.W, bounds.H)
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	slices.Sort(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-14s %d\n", k, counts[element.Kind(k)])
	}
}
