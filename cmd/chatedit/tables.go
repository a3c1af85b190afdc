package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tablesOpts struct {
	input  string
	output string
	html   string
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Import the tables of a Word document as a workbook",
	Long: `Every table of the .docx becomes a sheet, named after the heading
above it (or "Table N"). The first table row becomes the header row.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := readTables(tablesOpts.input)
		if err != nil {
			return err
		}
		logger.Info("tables.imported", "sheets", len(s.Sheets), "input", tablesOpts.input)
		if tablesOpts.output != "" {
			if err := writeWorkbook(tablesOpts.output, s); err != nil {
				return fmt.Errorf("write %s: %w", tablesOpts.output, err)
			}
		}
		if tablesOpts.html != "" || tablesOpts.output == "" {
			cfg.Render.AllSheets = true
			return writeHTML(tablesOpts.html, cmd.OutOrStdout(), s, nil)
		}
		return nil
	},
}

func init() {
	f := tablesCmd.Flags()
	f.StringVarP(&tablesOpts.input, "input", "i", "", "input .docx document")
	f.StringVarP(&tablesOpts.output, "output", "o", "", "output .xlsx workbook")
	f.StringVar(&tablesOpts.html, "html", "", "render the imported sheets as HTML (default stdout when -o is not set)")
	_ = tablesCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(tablesCmd)
}
