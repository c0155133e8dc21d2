package csvfile

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func readRecords(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return records
}

func TestConvertFile_ConvertsColumn(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv",
		"Handle,Body HTML,Price\n"+
			"mug,<p>Hello <em>world</em></p>,9.99\n"+
			"cap,<h2>Title</h2>,4.50\n")
	out := filepath.Join(dir, "out.csv")

	result, err := ConvertFile(in, out, DefaultOptions())
	if err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}
	if result.Rows != 2 || result.Converted != 2 || !result.ColumnFound {
		t.Errorf("result = %+v, want 2 rows, 2 converted, column found", result)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	records := readRecords(t, out)
	if got := strings.Join(records[0], ","); got != "Handle,Body HTML,Price" {
		t.Errorf("header changed: %s", got)
	}
	wantCell := `{"type":"root","children":[{"type":"paragraph","children":[` +
		`{"type":"text","value":"Hello "},` +
		`{"type":"text","value":"world","italic":true}]}]}`
	if records[1][1] != wantCell {
		t.Errorf("converted cell = %s, want %s", records[1][1], wantCell)
	}
	if records[1][0] != "mug" || records[1][2] != "9.99" {
		t.Errorf("other columns altered: %v", records[1])
	}
	if !strings.Contains(records[2][1], `"type":"heading"`) {
		t.Errorf("second row not converted: %s", records[2][1])
	}
}

func TestConvertFile_MissingColumnPassesThrough(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv",
		"Handle,Description\nmug,<p>kept as html</p>\n")
	out := filepath.Join(dir, "out.csv")

	result, err := ConvertFile(in, out, DefaultOptions())
	if err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}
	if result.ColumnFound {
		t.Error("column should not be found")
	}
	if result.Converted != 0 {
		t.Errorf("converted = %d, want 0", result.Converted)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Row != 0 {
		t.Fatalf("warnings = %v, want one file-level warning", result.Warnings)
	}

	records := readRecords(t, out)
	if records[1][1] != "<p>kept as html</p>" {
		t.Errorf("cell modified despite missing column: %s", records[1][1])
	}
}

func TestConvertFile_OversizedCellPassesThrough(t *testing.T) {
	dir := t.TempDir()
	big := "<p>" + strings.Repeat("x", 100) + "</p>"
	in := writeFile(t, dir, "in.csv",
		"Body HTML\n"+big+"\n<p>small</p>\n")
	out := filepath.Join(dir, "out.csv")

	opts := DefaultOptions()
	opts.MaxCellSize = 50
	result, err := ConvertFile(in, out, opts)
	if err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}
	if result.Converted != 1 {
		t.Errorf("converted = %d, want 1", result.Converted)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Row != 1 {
		t.Fatalf("warnings = %v, want one warning for row 1", result.Warnings)
	}

	records := readRecords(t, out)
	if records[1][0] != big {
		t.Error("oversized cell should be byte-identical to input")
	}
	if !strings.Contains(records[2][0], `"value":"small"`) {
		t.Errorf("small cell not converted: %s", records[2][0])
	}
}

func TestConvertFile_RaggedRow(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv",
		"Handle,Body HTML\nmug,<p>x</p>\nshort\n")
	out := filepath.Join(dir, "out.csv")

	result, err := ConvertFile(in, out, DefaultOptions())
	if err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}
	if result.Converted != 1 {
		t.Errorf("converted = %d, want 1", result.Converted)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Row != 2 {
		t.Errorf("warnings = %v, want one warning for row 2", result.Warnings)
	}
}

func TestConvertFile_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv", "")
	out := filepath.Join(dir, "out.csv")

	result, err := ConvertFile(in, out, DefaultOptions())
	if err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}
	if result.Rows != 0 {
		t.Errorf("rows = %d, want 0", result.Rows)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output file not created: %v", err)
	}
}

func TestConvertFile_MissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := ConvertFile(filepath.Join(dir, "nope.csv"), filepath.Join(dir, "out.csv"), DefaultOptions())
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestConvertFile_ConverterWarningsSurfaced(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv",
		"Handle,Body HTML\nmug,<p>fine</p>\ncap,<ul><li>never closed\n")
	out := filepath.Join(dir, "out.csv")

	result, err := ConvertFile(in, out, DefaultOptions())
	if err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}
	if result.Converted != 2 {
		t.Errorf("converted = %d, want 2", result.Converted)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v, want the converter diagnostic surfaced", result.Warnings)
	}
	w := result.Warnings[0]
	if w.Row != 2 || !strings.Contains(w.Message, "unterminated") {
		t.Errorf("warning = %+v, want row 2 unterminated-tag diagnostic", w)
	}

	records := readRecords(t, out)
	if records[2][1] != `{"type":"root","children":[]}` {
		t.Errorf("warned cell = %s, want the (empty) converted tree", records[2][1])
	}
}

func TestOptions_BlankColumnRejected(t *testing.T) {
	opts := Options{Column: "   "}
	if err := opts.normalize(); err == nil {
		t.Fatal("whitespace-only column should fail validation")
	}

	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv", "Body HTML\n<p>x</p>\n")
	if _, err := ConvertFile(in, filepath.Join(dir, "out.csv"), Options{Column: "\t"}); err == nil {
		t.Fatal("ConvertFile should reject a blank column option")
	}
}

func TestOptions_DefaultColumnApplied(t *testing.T) {
	opts := Options{}
	if err := opts.normalize(); err != nil {
		t.Fatalf("normalize() error = %v", err)
	}
	if opts.Column != DefaultColumn {
		t.Errorf("column = %q, want %q", opts.Column, DefaultColumn)
	}
}
