package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-labels/pkg/labels"
	"github.com/mattsolo1/grove-labels/pkg/models"
	"github.com/mattsolo1/grove-labels/pkg/service"
)

func NewListCmd(svc **service.Service) *cobra.Command {
	var (
		listJSON    bool
		listAll     bool
		listExclude bool
		listSelect  string
		listEdit    bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List notes passing the label filter",
		Aliases: []string{"ls"},
		Long: `List the notes whose labels match the active labels.

Examples:
  nbl list                  # Notes with at least one visible label
  nbl list --exclude        # Notes with none of them
  nbl list --select active  # Ignore parent state, use each label's own flag
  nbl list --all            # Every note, unfiltered`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			if listSelect != "" {
				sel, err := labels.ParseSelection(listSelect)
				if err != nil {
					return err
				}
				s.SetSelection(sel)
			}

			var result []*models.Note
			switch {
			case listAll:
				result = s.Notes()
			case listExclude:
				result = s.Visible(labels.Exclusive)
			default:
				result = s.Visible(labels.Inclusive)
			}

			if listJSON {
				return outputJSON(cmd.OutOrStdout(), result)
			}
			if len(result) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No notes found")
				return nil
			}
			printNotesTable(cmd.OutOrStdout(), result, listEdit)
			return nil
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&listAll, "all", false, "List every note without filtering")
	cmd.Flags().BoolVarP(&listExclude, "exclude", "x", false, "List notes carrying none of the active labels")
	cmd.Flags().StringVar(&listSelect, "select", "", "Which labels feed the filter: visible, active or all")
	cmd.Flags().BoolVar(&listEdit, "editable", false, "Show only user-editable labels")

	return cmd
}

func printNotesTable(out io.Writer, notes []*models.Note, editableOnly bool) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	// Print header
	fmt.Fprintln(w, "DATE\tORIGIN\tTITLE\tLABELS")
	fmt.Fprintln(w, "----------\t------\t-----------------------------\t------")

	for _, note := range notes {
		dateStr := ""
		if !note.Date.IsZero() {
			dateStr = note.Date.Format("2006-01-02")
		}
		labelList := note.Labels
		if editableOnly {
			labelList = labels.Editable(labelList, false)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			dateStr,
			note.Origin.DisplayName(),
			truncateString(note.Title, 29),
			strings.Join(labelList, ", "))
	}

	w.Flush()
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func outputJSON(out io.Writer, notes []*models.Note) error {
	if notes == nil {
		notes = []*models.Note{}
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(notes)
}
