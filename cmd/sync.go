package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-labels/cmd/config"
	"github.com/mattsolo1/grove-labels/pkg/sync"
	"github.com/mattsolo1/grove-labels/pkg/sync/github"
)

// NewSyncCmd creates the `sync` subcommand.
func NewSyncCmd() *cobra.Command {
	var only string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch remote notes",
		Long: `Fetches the remotes configured under 'remotes:' (GitHub issues and pull
requests via the gh CLI) and stores them as remote notes.`,
		Annotations: noService,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := config.Sources()
			if err != nil {
				return fmt.Errorf("read remotes config: %w", err)
			}
			if only != "" {
				var filtered []sync.Source
				for _, src := range sources {
					if src.Name == only {
						filtered = append(filtered, src)
					}
				}
				if len(filtered) == 0 {
					return fmt.Errorf("no remote named %q", only)
				}
				sources = filtered
			}
			if len(sources) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No remotes configured")
				return nil
			}

			syncer := sync.NewSyncer(config.RemoteDir(), config.Logger())
			syncer.RegisterProvider("github", func() sync.Provider {
				return github.NewProvider()
			})

			reports, err := syncer.Sync(cmd.Context(), sources)
			for _, report := range reports {
				fmt.Fprintf(cmd.OutOrStdout(), "Synced %s (%s): %d notes -> %s\n",
					report.Source, report.Provider, report.Notes, report.Output)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&only, "remote", "", "Sync only the remote with this name")

	return cmd
}
