package docgen

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Source supplies the table rows in order. It is read once per run.
type Source interface {
	Rows() ([]Row, error)
}

// Sink receives the complete command stream of a run.
type Sink interface {
	Emit(cmds []Command) error
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger used for run diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Assembler) { a.log = l }
}

// Assembler turns rows into a command stream using one RenderConfig.
type Assembler struct {
	cfg RenderConfig
	log zerolog.Logger
}

// NewAssembler validates cfg and returns an Assembler for it. Config errors
// are reported here, before any row is looked at.
func NewAssembler(cfg RenderConfig, opts ...Option) (*Assembler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Assembler{cfg: cfg, log: zerolog.Nop()}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

// Config returns the configuration the assembler was built with.
func (a *Assembler) Config() RenderConfig { return a.cfg }

// Block renders the commands of a single record, without any breaks.
func (a *Assembler) Block(row Row) []Command {
	cfg := a.cfg
	block := make([]Command, 0, 2*len(cfg.ToFields)+4)

	if cfg.ToHeading != "" {
		block = append(block, LineCmd(RenderLabel(ApplyCase(cfg.ToHeading, cfg.Case), cfg.ToLabelFontSize, cfg.ToLabelBold)))
	}
	for _, f := range cfg.ToFields {
		line, blank := RenderField(row, f, cfg, cfg.ToDataFontSize)
		block = append(block, LineCmd(line))
		if blank {
			block = append(block, BlankLine)
		}
	}

	if cfg.FromField != nil {
		if cfg.FromHeading != "" {
			block = append(block, LineCmd(RenderLabel(ApplyCase(cfg.FromHeading, cfg.Case), cfg.FromLabelFontSize, cfg.FromLabelBold)))
		}
		line, blank := RenderField(row, *cfg.FromField, cfg, cfg.FromDataFontSize)
		block = append(block, LineCmd(line))
		if blank {
			block = append(block, BlankLine)
		}
	}

	if cfg.RecordSpacer {
		block = append(block, BlankLine)
	}
	return block
}

// Generate returns the command stream for all rows.
func (a *Assembler) Generate(rows []Row) []Command {
	cmds, _ := a.generate(context.Background(), rows, -1)
	return cmds
}

// Preview returns the command stream for at most maxRecords records. It is always
// a prefix of Generate over the same rows, ending on a record boundary.
func (a *Assembler) Preview(rows []Row, maxRecords int) []Command {
	if maxRecords < 0 {
		maxRecords = 0
	}
	cmds, _ := a.generate(context.Background(), rows, maxRecords)
	return cmds
}

// Run reads every row from src, generates the stream and hands it to sink.
// The context is checked between records.
func (a *Assembler) Run(ctx context.Context, src Source, sink Sink) error {
	rows, err := src.Rows()
	if err != nil {
		return fmt.Errorf("failed to read rows: %w", err)
	}
	cmds, err := a.generate(ctx, rows, -1)
	if err != nil {
		return err
	}
	if err := sink.Emit(cmds); err != nil {
		return fmt.Errorf("failed to emit document: %w", err)
	}
	return nil
}

// generate is the single code path behind Generate, Preview and Run. A
// negative limit means no limit.
func (a *Assembler) generate(ctx context.Context, rows []Row, limit int) ([]Command, error) {
	n := len(rows)
	if limit >= 0 && limit < n {
		n = limit
	}

	planner := NewPlanner(a.cfg.Layout)
	out := make([]Command, 0, n*(len(a.cfg.ToFields)+2))
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return out, fmt.Errorf("stopped after %d of %d records: %w", i, n, err)
		}
		out = append(out, planner.Place(a.Block(rows[i]))...)
	}
	planner.Finish()

	a.log.Debug().
		Int("records", n).
		Int("rows", len(rows)).
		Int("commands", len(out)).
		Stringer("layout", a.cfg.Layout).
		Stringer("case", a.cfg.Case).
		Msg("generated document stream")
	return out, nil
}
