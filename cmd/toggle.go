package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-labels/pkg/service"
)

// NewToggleCmd creates the `toggle` subcommand.
func NewToggleCmd(svc **service.Service) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "toggle <label>",
		Short: "Flip a label between active and inactive",
		Long: `Flip a label between active and inactive and remember the choice.

Labels are addressed by their identity as shown by 'nbl tree --json'.
When the same identity hangs under several parents, pick one with --parent.

Examples:
  nbl toggle local
  nbl toggle local/work --parent local`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			node, err := s.ToggleLabel(args[0], parent)
			if err != nil {
				return err
			}

			state := "inactive"
			if node.Active {
				state = "active"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", node.Path, state)
			return nil
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "", "Identity of the label's parent (empty for a root label)")

	return cmd
}
