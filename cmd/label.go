package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-labels/pkg/service"
)

// NewLabelCmd creates the `label` subcommand.
func NewLabelCmd(svc **service.Service) *cobra.Command {
	var add, remove []string

	cmd := &cobra.Command{
		Use:   "label <note.md>",
		Short: "Add or remove labels on a local note",
		Long: `Add or remove labels in a local note's frontmatter.

The origin labels (local, remote) are managed automatically and cannot be
edited.

Examples:
  nbl label ~/notes/idea.md --add work/backend
  nbl label ~/notes/idea.md --remove draft --add review`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(add) == 0 && len(remove) == 0 {
				return fmt.Errorf("nothing to do: pass --add or --remove")
			}
			s := *svc

			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			updated, err := s.EditLabels(path, add, remove)
			if err != nil {
				return err
			}
			if len(updated) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s has no labels\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], strings.Join(updated, ", "))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&add, "add", nil, "Labels to add")
	cmd.Flags().StringSliceVar(&remove, "remove", nil, "Labels to remove")

	return cmd
}
