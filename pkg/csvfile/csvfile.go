// Package csvfile applies the HTML converter to one named column of CSV
// files: single files in memory, single files as a record stream, and
// glob-driven batches. All other columns and the header row pass through
// untouched.
package csvfile

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/treecell/treecell/internal/logger"
	"github.com/treecell/treecell/pkg/converter"
	"github.com/treecell/treecell/pkg/sanitize"
)

// DefaultColumn is the column converted when none is configured.
const DefaultColumn = "Body HTML"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// Options configures a CSV conversion.
type Options struct {
	// Column is the header name of the column holding raw HTML. An empty
	// value means DefaultColumn; a whitespace-only value is rejected.
	Column string `validate:"notblank"`

	// MaxCellSize passes cells larger than this many bytes through
	// unconverted, with a warning. 0 means unlimited.
	MaxCellSize uint64

	// DocumentOrder selects document-order block output; see converter.Config.
	DocumentOrder bool

	// Sanitize runs the sanitize pre-pass on each cell before conversion.
	Sanitize bool
}

// DefaultOptions returns Options targeting the default column.
func DefaultOptions() Options {
	return Options{Column: DefaultColumn}
}

func (o *Options) normalize() error {
	if o.Column == "" {
		o.Column = DefaultColumn
	}
	return validate.Struct(o)
}

// Warning is a non-fatal, per-file diagnostic. Row is the 1-based data row
// the warning applies to, or 0 for file-level warnings.
type Warning struct {
	Row     int    `json:"row,omitempty"`
	Message string `json:"message"`
}

// FileResult summarizes one converted file.
type FileResult struct {
	Path        string    `json:"path"`
	OutputPath  string    `json:"output_path"`
	Rows        int       `json:"rows"`
	Converted   int       `json:"converted"`
	ColumnFound bool      `json:"column_found"`
	Warnings    []Warning `json:"warnings,omitempty"`
}

func (r *FileResult) addWarning(row int, message string) {
	r.Warnings = append(r.Warnings, Warning{Row: row, Message: message})
	logger.Warn(message, "path", r.Path, "row", row)
}

// ConvertFile reads a whole CSV file, converts the configured column and
// writes the result. A row that cannot be converted keeps its original cell
// and is recorded as a warning; only I/O failures are returned as errors.
func ConvertFile(inPath, outPath string, opts Options) (*FileResult, error) {
	if err := opts.normalize(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	in, err := os.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = in.Close() }()

	reader := csv.NewReader(in)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	result := &FileResult{Path: inPath, OutputPath: outPath}

	col := -1
	if len(records) > 0 {
		col = columnIndex(records[0], opts.Column)
	}
	if col >= 0 {
		result.ColumnFound = true
		for i, row := range records[1:] {
			result.Rows++
			convertRow(row, col, i+1, opts, result)
		}
	} else if len(records) > 0 {
		result.Rows = len(records) - 1
		result.addWarning(0, fmt.Sprintf("column %q not found, file passed through unmodified", opts.Column))
	}

	if err := writeAll(outPath, records); err != nil {
		return nil, err
	}
	return result, nil
}

// convertRow converts one row's target cell in place. Converter warnings are
// recorded against the row; a failure keeps the original cell.
func convertRow(row []string, col, rowNum int, opts Options, result *FileResult) {
	if col >= len(row) {
		result.addWarning(rowNum, "row has too few fields, passed through")
		return
	}
	out, convWarnings, fail := convertCell(row[col], opts)
	for _, w := range convWarnings {
		result.addWarning(rowNum, w.String())
	}
	if fail != "" {
		result.addWarning(rowNum, fail)
		return
	}
	row[col] = out
	result.Converted++
}

// convertCell converts one cell's HTML to its JSON tree form. Converter
// warnings come back alongside the converted cell; a non-empty fail message
// means the cell must be left as is.
func convertCell(cell string, opts Options) (out string, warnings []converter.Warning, fail string) {
	if opts.MaxCellSize > 0 && uint64(len(cell)) > opts.MaxCellSize {
		return "", nil, fmt.Sprintf("cell exceeds size limit (%d > %d bytes), passed through",
			len(cell), opts.MaxCellSize)
	}
	html := cell
	if opts.Sanitize {
		html = sanitize.Clean(html)
	}
	res := converter.ConvertWithResult(html, &converter.Config{DocumentOrder: opts.DocumentOrder})
	serialized, err := json.Marshal(res.Root)
	if err != nil {
		return "", res.Warnings, fmt.Sprintf("conversion failed (%v), passed through", err)
	}
	return string(serialized), res.Warnings, ""
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func writeAll(outPath string, records [][]string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { _ = out.Close() }()

	writer := csv.NewWriter(out)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
