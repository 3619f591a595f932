package docgen

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config validation errors. Validate wraps them with the offending field so
// callers can match with errors.Is.
var (
	ErrDuplicateColumn = errors.New("duplicate column reference")
	ErrInvalidLayout   = errors.New("invalid layout dimensions")
	ErrInvalidFontSize = errors.New("invalid font size")
	ErrEmptyColumn     = errors.New("empty column name")
)

// DefaultFontSize matches the size the formatter has always used when none
// is configured.
const DefaultFontSize = 14

// MaxGridSide bounds the rows and columns of a grid layout. Every grid page
// is a rows x cols table, so larger grids only produce unreadable pages.
const MaxGridSide = 10

// RenderConfig is the fully resolved formatting configuration for one run.
// It is never modified by the engine.
type RenderConfig struct {
	Case CaseMode `yaml:"case"`

	ToHeading   string      `yaml:"to_heading"`
	ToFields    []FieldSpec `yaml:"to_fields"`
	FromHeading string      `yaml:"from_heading"`
	FromField   *FieldSpec  `yaml:"from_field"`

	ToLabelFontSize   int  `yaml:"to_label_font_size"`
	ToDataFontSize    int  `yaml:"to_data_font_size"`
	FromLabelFontSize int  `yaml:"from_label_font_size"`
	FromDataFontSize  int  `yaml:"from_data_font_size"`
	ToLabelBold       bool `yaml:"to_label_bold"`
	FromLabelBold     bool `yaml:"from_label_bold"`

	// Labels (as typed, before casing) that render bold or are followed by
	// a blank line, in addition to the per-field flags.
	BoldLabels       []string `yaml:"bold_labels"`
	BlankAfterLabels []string `yaml:"blank_after_labels"`

	RecordSpacer bool   `yaml:"record_spacer"`
	Layout       Layout `yaml:"layout"`
}

// Defaults returns the configuration the formatter starts from: upper case,
// 14pt everywhere, a spacer line after each record, one record per page.
func Defaults() RenderConfig {
	return RenderConfig{
		Case:              CaseUpper,
		RecordSpacer:      true,
		ToLabelFontSize:   DefaultFontSize,
		ToDataFontSize:    DefaultFontSize,
		FromLabelFontSize: DefaultFontSize,
		FromDataFontSize:  DefaultFontSize,
		Layout:            Layout{Mode: OnePerPage, Rows: 1, Cols: 1},
	}
}

// Validate checks every config invariant and reports all violations at once.
func (c RenderConfig) Validate() error {
	var errs []error

	seen := make(map[string]int, len(c.ToFields))
	for i, f := range c.ToFields {
		if f.Column == "" {
			errs = append(errs, fmt.Errorf("to_fields[%d]: %w", i, ErrEmptyColumn))
			continue
		}
		if j, ok := seen[f.Column]; ok {
			errs = append(errs, fmt.Errorf("to_fields[%d] and to_fields[%d] both use %q: %w", j, i, f.Column, ErrDuplicateColumn))
			continue
		}
		seen[f.Column] = i
	}
	if c.FromField != nil && c.FromField.Column == "" {
		errs = append(errs, fmt.Errorf("from_field: %w", ErrEmptyColumn))
	}

	sizes := []struct {
		name string
		v    int
	}{
		{"to_label_font_size", c.ToLabelFontSize},
		{"to_data_font_size", c.ToDataFontSize},
		{"from_label_font_size", c.FromLabelFontSize},
		{"from_data_font_size", c.FromDataFontSize},
	}
	for _, s := range sizes {
		if s.v < 1 {
			errs = append(errs, fmt.Errorf("%s=%d: %w", s.name, s.v, ErrInvalidFontSize))
		}
	}

	if c.Layout.Mode == Grid && (c.Layout.Rows < 1 || c.Layout.Cols < 1 ||
		c.Layout.Rows > MaxGridSide || c.Layout.Cols > MaxGridSide) {
		errs = append(errs, fmt.Errorf("grid %dx%d: %w", c.Layout.Rows, c.Layout.Cols, ErrInvalidLayout))
	}

	return errors.Join(errs...)
}

// ParseConfig decodes a YAML config on top of Defaults. Unknown keys are
// rejected. The result is not validated.
func ParseConfig(r io.Reader) (RenderConfig, error) {
	cfg := Defaults()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return RenderConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and validates the YAML config at path.
func LoadConfig(path string) (RenderConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return RenderConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RenderConfig{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
