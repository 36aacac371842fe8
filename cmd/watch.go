package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-labels/cmd/config"
	"github.com/mattsolo1/grove-labels/pkg/labels"
	"github.com/mattsolo1/grove-labels/pkg/render"
	"github.com/mattsolo1/grove-labels/pkg/service"
	"github.com/mattsolo1/grove-labels/pkg/watch"
)

// NewWatchCmd creates the `watch` subcommand.
func NewWatchCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the label tree whenever notes change",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			plain := !isatty.IsTerminal(os.Stdout.Fd())

			show := func() {
				fmt.Fprint(cmd.OutOrStdout(), render.Tree(s.Forest(), render.Options{Plain: plain, Cursor: -1}))
				fmt.Fprintf(cmd.OutOrStdout(), "-- %d notes, %d shown\n\n", len(s.Notes()), len(s.Visible(labels.Inclusive)))
			}
			show()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := watch.New(s.WatchPaths(), func() error {
				if err := s.Rebuild(); err != nil {
					return err
				}
				show()
				return nil
			}, config.Logger())
			return w.Run(ctx)
		},
	}
	return cmd
}
