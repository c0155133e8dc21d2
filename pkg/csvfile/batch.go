package csvfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/treecell/treecell/internal/logger"
)

// FileEntry is one file's outcome within a batch.
type FileEntry struct {
	Path       string      `json:"path"`
	OutputPath string      `json:"output_path,omitempty"`
	Result     *FileResult `json:"result,omitempty"`
	Err        error       `json:"-"`
}

// BatchResult summarizes a glob batch.
type BatchResult struct {
	Total     int         `json:"total"`
	Succeeded int         `json:"succeeded"`
	Files     []FileEntry `json:"files"`
}

// ConvertGlob converts every CSV file matching pattern into outDir, which is
// created if absent. One file's failure is recorded in its entry and the
// remaining files still run; a pattern matching nothing is a hard error.
func ConvertGlob(pattern, outDir string, opts Options) (*BatchResult, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern %q", pattern)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	batch := &BatchResult{Total: len(matches)}
	for _, path := range matches {
		outPath := filepath.Join(outDir, filepath.Base(path))
		entry := FileEntry{Path: path, OutputPath: outPath}

		result, err := ConvertFile(path, outPath, opts)
		if err != nil {
			entry.Err = err
			entry.OutputPath = ""
			logger.Error("batch file failed", "path", path, "error", err)
		} else {
			entry.Result = result
			batch.Succeeded++
			logger.Debug("batch file converted",
				"path", path, "rows", result.Rows, "converted", result.Converted)
		}
		batch.Files = append(batch.Files, entry)
	}
	return batch, nil
}
