package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-labels/cmd/config"
	"github.com/mattsolo1/grove-labels/pkg/convert"
	"github.com/mattsolo1/grove-labels/pkg/notes"
)

// NewConvertCmd creates the `convert` subcommand.
func NewConvertCmd() *cobra.Command {
	var (
		pattern string
		extra   []string
	)

	cmd := &cobra.Command{
		Use:   "convert <messages.json> <notes.json>",
		Short: "Convert exported chat messages into a notes file",
		Long: `Convert a JSON array of chat messages ({date, sender, link, msg}) into a
notes envelope that can be listed under remote_files.

Only messages containing a reader link are kept. Messages pointing at the
same link are merged into one note.`,
		Args:        cobra.ExactArgs(2),
		Annotations: noService,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := config.Logger()

			if pattern == "" {
				pattern = viper.GetString("convert.link_pattern")
			}
			conv, err := convert.New(pattern, extra)
			if err != nil {
				return err
			}

			messages, err := convert.ReadMessages(args[0])
			if err != nil {
				return fmt.Errorf("read messages: %w", err)
			}
			env, err := conv.Convert(messages)
			if err != nil {
				return err
			}
			if err := notes.WriteEnvelope(args[1], env); err != nil {
				return err
			}

			logger.WithField("output", args[1]).WithField("notes", len(env.Notes)).Info("Converted messages")
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d notes from %d messages to %s\n", len(env.Notes), len(messages), args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "Link regex with a (?P<url>...) group (default from convert.link_pattern)")
	cmd.Flags().StringSliceVarP(&extra, "label", "l", nil, "Label to attach to every converted note")

	return cmd
}
