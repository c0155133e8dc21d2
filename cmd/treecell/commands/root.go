// Package commands implements the CLI commands for treecell.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/treecell/treecell/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "treecell",
	Short: "Convert HTML in CSV cells to structured JSON trees",
	Long: `Treecell converts the flat HTML found in product-description CSV
columns into a structured JSON tree of paragraphs, headings, lists and
formatted text runs.

Examples:
  # Convert a single HTML snippet
  treecell convert --html "<p>Hello <em>world</em></p>"

  # Convert one CSV file, replacing the "Body HTML" column
  treecell csv -i products.csv -o products-out.csv

  # Stream a large file without loading it into memory
  treecell csv -i products.csv -o products-out.csv --stream

  # Convert every export in a directory
  treecell batch -g "exports/*.csv" -o converted/`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.treecell.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".treecell")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TREECELL")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// initLogger applies the persistent logging flags. Called by every RunE.
func initLogger() {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
