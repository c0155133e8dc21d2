package commands

import (
	"github.com/spf13/cobra"

	"github.com/treecell/treecell/internal/logger"
	"github.com/treecell/treecell/pkg/csvfile"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every CSV file matching a glob pattern",
	Long: `Convert the HTML column of every CSV file matching a glob pattern,
writing each converted file under the output directory with its original
name. One file's failure does not stop the rest of the batch.

Examples:
  treecell batch -g "exports/*.csv" -o converted/
  treecell batch -g "dump/**.csv" -o out/ --column "Description HTML"`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	flags := batchCmd.Flags()
	flags.StringP("glob", "g", "", "glob pattern for input CSV files (required)")
	flags.StringP("out-dir", "o", "", "output directory, created if absent (required)")
	flags.String("column", csvfile.DefaultColumn, "header name of the HTML column")
	flags.Bool("document-order", false, "order blocks by document position instead of grouped pass order")
	flags.Bool("sanitize", false, "strip scripts, styles and comments before converting")

	_ = batchCmd.MarkFlagRequired("glob")
	_ = batchCmd.MarkFlagRequired("out-dir")
}

func runBatch(cmd *cobra.Command, args []string) error {
	initLogger()

	pattern, _ := cmd.Flags().GetString("glob")
	outDir, _ := cmd.Flags().GetString("out-dir")

	opts, err := csvOptions(cmd)
	if err != nil {
		return err
	}

	batch, err := csvfile.ConvertGlob(pattern, outDir, opts)
	if err != nil {
		logger.Error("batch failed", "pattern", pattern, "error", err)
		return err
	}

	for _, entry := range batch.Files {
		if entry.Err != nil {
			logger.Warn("file failed", "path", entry.Path, "error", entry.Err)
		}
	}
	logger.Info("batch complete",
		"total", batch.Total,
		"succeeded", batch.Succeeded,
		"output_dir", outDir)
	return nil
}
