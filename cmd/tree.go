package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-labels/pkg/labels"
	"github.com/mattsolo1/grove-labels/pkg/render"
	"github.com/mattsolo1/grove-labels/pkg/service"
)

// treeNode is the JSON shape of one label.
type treeNode struct {
	Label   string `json:"label"`
	Parent  string `json:"parent,omitempty"`
	Active  bool   `json:"isActive"`
	Visible bool   `json:"visible"`
	Depth   int    `json:"depth"`
}

// NewTreeCmd creates the `tree` subcommand.
func NewTreeCmd(svc **service.Service) *cobra.Command {
	var (
		plain   bool
		jsonOut bool
		showAll bool
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the label hierarchy",
		Long: `Show the label hierarchy built from every note.

Prefixes: ▼ active with children, ▶ inactive with children,
⊙ active leaf, ∅ inactive leaf. Children of inactive labels are hidden
unless --json is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			forest := s.Forest()

			if jsonOut {
				return outputTreeJSON(cmd, forest)
			}

			if forest.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No labels found")
				return nil
			}

			plain = plain || !isatty.IsTerminal(os.Stdout.Fd())
			if showAll {
				// Expand every label for display without touching stored state.
				expanded := labels.ApplyActivation(forest, allActive(forest))
				fmt.Fprint(cmd.OutOrStdout(), render.Tree(expanded, render.Options{Plain: plain, Cursor: -1}))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Tree(forest, render.Options{Plain: plain, Cursor: -1}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Disable colors")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output every label as JSON")
	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "Expand inactive labels")

	return cmd
}

func allActive(forest *labels.Forest) []labels.Entry {
	var entries []labels.Entry
	for _, p := range forest.Paths() {
		entries = append(entries, labels.Entry{Label: p, IsActive: true})
	}
	return entries
}

func outputTreeJSON(cmd *cobra.Command, forest *labels.Forest) error {
	nodes := []treeNode{}
	for _, n := range forest.Nodes() {
		tn := treeNode{
			Label:   n.Path,
			Active:  n.Active,
			Visible: forest.Visible(n.ID),
			Depth:   len(forest.Ancestors(n.ID)),
		}
		if p, ok := forest.Parent(n.ID); ok {
			tn.Parent = p.Path
		}
		nodes = append(nodes, tn)
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(nodes)
}
