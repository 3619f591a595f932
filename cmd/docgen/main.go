// Command docgen turns the rows of an xlsx worksheet into a paginated DOCX
// document, one formatted record per page or a grid of records per page.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aerissecure/docgen"
	"github.com/aerissecure/docgen/docx"
	"github.com/aerissecure/docgen/xlsx"
)

// defaultFieldCount is how many leading columns are used when the config
// selects none.
const defaultFieldCount = 3

type options struct {
	configPath  string
	inPath      string
	sheet       string
	outPath     string
	preview     int
	previewPath string
	inspectPath string
	verbose     bool
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "YAML render config (defaults apply when empty)")
	flag.StringVar(&o.inPath, "in", "", "input .xlsx file")
	flag.StringVar(&o.sheet, "sheet", "", "worksheet name (default: first sheet)")
	flag.StringVar(&o.outPath, "out", "", "output .docx file")
	flag.IntVar(&o.preview, "preview", -1, "write an HTML preview of the first N records")
	flag.StringVar(&o.previewPath, "preview-out", "", "preview HTML file (default: stdout)")
	flag.StringVar(&o.inspectPath, "inspect", "", "print an existing .docx as HTML and exit")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if o.verbose {
		log = log.Level(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, log); err != nil {
		log.Error().Err(err).Msg("docgen failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, log zerolog.Logger) error {
	if o.inspectPath != "" {
		return inspect(o.inspectPath, os.Stdout)
	}
	if o.inPath == "" {
		return errors.New("-in is required")
	}
	if o.outPath == "" && o.preview < 0 {
		return errors.New("nothing to do: set -out and/or -preview")
	}

	cfg := docgen.Defaults()
	if o.configPath != "" {
		var err error
		if cfg, err = docgen.LoadConfig(o.configPath); err != nil {
			return err
		}
	}

	table, err := readTable(o.inPath, o.sheet)
	if err != nil {
		return err
	}
	log.Info().Str("file", o.inPath).Str("sheet", table.Sheet).Int("records", len(table.Records)).Msg("read table")

	if len(cfg.ToFields) == 0 {
		cfg.ToFields = defaultFields(table.Columns)
		log.Info().Int("fields", len(cfg.ToFields)).Msg("no fields configured, using leading columns")
	}

	a, err := docgen.NewAssembler(cfg, docgen.WithLogger(log))
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if o.preview >= 0 {
		if err := writePreview(a, table, o.preview, o.previewPath); err != nil {
			return err
		}
	}

	if o.outPath != "" {
		w := docx.NewWriter(log)
		if err := a.Run(ctx, table, w); err != nil {
			return err
		}
		if err := w.SaveToFile(o.outPath); err != nil {
			return err
		}
		log.Info().Str("file", o.outPath).Msg("document generated")
	}
	return nil
}

func readTable(path, sheet string) (xlsx.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return xlsx.Table{}, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return xlsx.Table{}, err
	}

	var opts []xlsx.ReadOption
	if sheet != "" {
		opts = append(opts, xlsx.WithSheet(sheet))
	}
	return xlsx.ReadTable(f, info.Size(), opts...)
}

func defaultFields(cols []string) []docgen.FieldSpec {
	n := min(len(cols), defaultFieldCount)
	fields := make([]docgen.FieldSpec, n)
	for i := range fields {
		fields[i] = docgen.FieldSpec{Column: cols[i], Label: cols[i]}
	}
	return fields
}

// writePreview renders the head of the source table followed by the preview
// of the first n records.
func writePreview(a *docgen.Assembler, table xlsx.Table, n int, path string) error {
	rows, err := table.Rows()
	if err != nil {
		return err
	}
	doc, err := docx.RenderHTML(a.Preview(rows, n))
	if err != nil {
		return err
	}
	page := xlsx.RenderTableHTML(table, n) + doc

	if path == "" {
		_, err = io.WriteString(os.Stdout, page)
		return err
	}
	return os.WriteFile(path, []byte(page), 0644)
}

func inspect(path string, out io.Writer) error {
	if !strings.EqualFold(filepath.Ext(path), ".docx") {
		return fmt.Errorf("%s: not a .docx file", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	html, err := docx.DocxToHTML(f, info.Size())
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, html)
	return err
}
