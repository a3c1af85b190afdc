package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aerissecure/chatedit/action"
)

var applyOpts struct {
	input   string
	actions string
	output  string
	html    string
	undo    int
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply JSON actions to a workbook",
	Long: `Apply a JSON action (or an array of actions) to the active sheet of a
workbook, in order. Application stops at the first action that is rejected
or fails; nothing is written in that case.

--undo N reverts the last N applied actions before saving.`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	f := applyCmd.Flags()
	f.StringVarP(&applyOpts.input, "input", "i", "", "input .xlsx workbook")
	f.StringVarP(&applyOpts.actions, "actions", "a", "-", "JSON actions file, - for stdin")
	f.StringVarP(&applyOpts.output, "output", "o", "", "output .xlsx workbook")
	f.StringVar(&applyOpts.html, "html", "", "also render the result as HTML to this file")
	f.IntVar(&applyOpts.undo, "undo", 0, "undo this many applied actions before saving")
	_ = applyCmd.MarkFlagRequired("input")
	_ = applyCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(applyCmd)
}

// report is the --json form of one outcome.
type report struct {
	Type        action.Type   `json:"type"`
	Status      action.Status `json:"status"`
	Description string        `json:"description"`
	Changes     int           `json:"changes"`
	Highlight   []string      `json:"highlight,omitempty"`
	Error       string        `json:"error,omitempty"`
}

func runApply(cmd *cobra.Command, _ []string) error {
	snap, err := readWorkbook(applyOpts.input)
	if err != nil {
		return err
	}
	data, err := readInput(applyOpts.actions, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read actions: %w", err)
	}
	actions, err := action.ParseList(data)
	if err != nil {
		return err
	}

	session := action.NewSession(snap, action.NewDispatcher(action.WithLogger(logger)), cfg.History.Limit)
	defer session.Close()
	outcomes := session.ApplyAll(actions)
	if err := printOutcomes(cmd.OutOrStdout(), outcomes); err != nil {
		return err
	}
	if n := len(outcomes); n > 0 && outcomes[n-1].Status != action.StatusApplied {
		last := outcomes[n-1]
		return fmt.Errorf("action %d (%s) %s: %w", n, last.Type, last.Status, last.Err)
	}

	var highlight []string
	if len(outcomes) > 0 {
		highlight = outcomes[len(outcomes)-1].Highlight
	}
	for i := 0; i < applyOpts.undo; i++ {
		desc, ok := session.Undo()
		if !ok {
			break
		}
		highlight = nil
		logger.Info("undo", "description", desc)
	}

	result := session.Current()
	if err := writeWorkbook(applyOpts.output, result); err != nil {
		return fmt.Errorf("write %s: %w", applyOpts.output, err)
	}
	if applyOpts.html != "" {
		if err := writeHTML(applyOpts.html, cmd.OutOrStdout(), result, highlight); err != nil {
			return fmt.Errorf("write %s: %w", applyOpts.html, err)
		}
	}
	return nil
}

func printOutcomes(w io.Writer, outcomes []action.Outcome) error {
	if jsonOutput {
		reports := make([]report, 0, len(outcomes))
		for _, o := range outcomes {
			r := report{
				Type:        o.Type,
				Status:      o.Status,
				Description: o.Description,
				Changes:     len(o.Changes),
				Highlight:   o.Highlight,
			}
			if o.Err != nil {
				r.Error = o.Err.Error()
			}
			reports = append(reports, r)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}
	for i, o := range outcomes {
		line := fmt.Sprintf("%d. %s [%s] %s", i+1, o.Type, o.Status, o.Description)
		var e *action.Error
		if errors.As(o.Err, &e) {
			line += fmt.Sprintf(" (%s: %s)", e.Code, e.Message)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
