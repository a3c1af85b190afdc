package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aerissecure/chatedit/config"
)

var (
	configPath string
	jsonOutput bool

	cfg    = config.Default()
	logger = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:   "chatedit",
	Short: "Apply spreadsheet edit actions to workbooks",
	Long: `Apply structured edit actions (sort, filter, split, formulas, styles...)
to Excel workbooks and inspect the result.

Commands:
  apply   Apply a list of JSON actions to a workbook and save it.
  render  Render a workbook as an HTML table.
  tables  Import the tables of a Word document as a workbook.

Examples:
  chatedit apply -i data.xlsx -a actions.json -o out.xlsx --html out.html
  chatedit render -i out.xlsx --all-sheets
  chatedit tables -i report.docx -o report.xlsx`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = cfg.Logger(cmd.ErrOrStderr())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output raw JSON instead of human-formatted summaries")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
