package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treecell/treecell/internal/logger"
	"github.com/treecell/treecell/internal/output"
	"github.com/treecell/treecell/pkg/converter"
	"github.com/treecell/treecell/pkg/sanitize"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a single HTML snippet or file",
	Long: `Convert one HTML fragment to its structured tree form.

The fragment comes from --html or from a file via --input; one of the two
is required. Output goes to stdout unless --output names a file.

Examples:
  treecell convert --html "<p>Hello <em>world</em></p>"
  treecell convert -i description.html -o description.json
  treecell convert -i description.html --format yaml`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	flags.String("html", "", "HTML string to convert")
	flags.StringP("input", "i", "", "path to a file holding the HTML")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, yaml")
	flags.Bool("pretty", true, "pretty-print JSON output")
	flags.Bool("document-order", false, "order blocks by document position instead of grouped pass order")
	flags.Bool("sanitize", false, "strip scripts, styles and comments before converting")
}

func runConvert(cmd *cobra.Command, args []string) error {
	initLogger()

	html, _ := cmd.Flags().GetString("html")
	inputPath, _ := cmd.Flags().GetString("input")
	if html == "" && inputPath == "" {
		return fmt.Errorf("either --html or --input is required")
	}
	if html == "" {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		html = string(data)
	}

	if doSanitize, _ := cmd.Flags().GetBool("sanitize"); doSanitize {
		html = sanitize.Clean(html)
	}

	documentOrder, _ := cmd.Flags().GetBool("document-order")
	result := converter.ConvertWithResult(html, &converter.Config{DocumentOrder: documentOrder})
	for _, w := range result.Warnings {
		logger.Warn(w.Message, "phase", w.Phase, "context", w.Context)
	}
	logger.Debug("converted", "blocks", result.Stats.Blocks(), "runs", result.Stats.Runs)

	out := os.Stdout
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	formatStr, _ := cmd.Flags().GetString("format")
	pretty, _ := cmd.Flags().GetBool("pretty")
	writer, err := output.NewWriter(out, output.Format(formatStr), pretty)
	if err != nil {
		return err
	}
	defer func() { _ = writer.Close() }()

	doc, err := serializable(result, output.Format(formatStr))
	if err != nil {
		return err
	}
	return writer.Write(doc)
}

// serializable prepares the tree for the chosen writer. YAML does not see
// the tree's custom JSON marshaling, so the canonical JSON form is decoded
// back into plain values first.
func serializable(result *converter.Result, format output.Format) (any, error) {
	if format != output.FormatYAML {
		return result.Root, nil
	}
	raw, err := json.Marshal(result.Root)
	if err != nil {
		return nil, fmt.Errorf("serialize tree: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("serialize tree: %w", err)
	}
	return doc, nil
}
