package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ConvertFileStream converts a CSV file one record at a time, so files
// larger than memory can be processed. Records are written in input order
// and the per-row semantics match ConvertFile exactly.
func ConvertFileStream(inPath, outPath string, opts Options) (*FileResult, error) {
	if err := opts.normalize(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	in, err := os.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	defer func() { _ = out.Close() }()

	reader := csv.NewReader(in)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	writer := csv.NewWriter(out)

	result := &FileResult{Path: inPath, OutputPath: outPath}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		writer.Flush()
		return result, writer.Error()
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}

	col := columnIndex(header, opts.Column)
	if col < 0 {
		result.addWarning(0, fmt.Sprintf("column %q not found, file passed through unmodified", opts.Column))
	} else {
		result.ColumnFound = true
	}

	for rowNum := 1; ; rowNum++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", rowNum, err)
		}
		if col >= 0 {
			result.Rows++
			convertRow(row, col, rowNum, opts, result)
		} else {
			result.Rows++
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return result, nil
}
