package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aerissecure/chatedit"
)

var renderOpts struct {
	input     string
	output    string
	sheet     string
	allSheets bool
	highlight []string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a workbook as HTML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := readWorkbook(renderOpts.input)
		if err != nil {
			return err
		}
		if renderOpts.sheet != "" && renderOpts.sheet != s.CurrentSheet {
			if _, ok := s.Sheet(renderOpts.sheet); !ok {
				return fmt.Errorf("no sheet named %q", renderOpts.sheet)
			}
			s = chatedit.SwitchSheet(s, renderOpts.sheet).Data
		}
		if renderOpts.allSheets {
			cfg.Render.AllSheets = true
		}
		return writeHTML(renderOpts.output, cmd.OutOrStdout(), s, renderOpts.highlight)
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOpts.input, "input", "i", "", "input .xlsx workbook")
	f.StringVarP(&renderOpts.output, "output", "o", "-", "output HTML file, - for stdout")
	f.StringVarP(&renderOpts.sheet, "sheet", "s", "", "sheet to render (default: first)")
	f.BoolVar(&renderOpts.allSheets, "all-sheets", false, "render every sheet")
	f.StringSliceVar(&renderOpts.highlight, "highlight", nil, "cell references to outline, e.g. B2,C5")
	_ = renderCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(renderCmd)
}
