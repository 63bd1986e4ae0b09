package menu

import (
	"fmt"

	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/config"
	"github.com/SoloCapybara/HRMS-NEXT/pkg/gate"
	"github.com/SoloCapybara/HRMS-NEXT/pkg/menu"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// MenuCmd prints the navigation menu of the current session.
var MenuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show the navigation menu for your role",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, snap, err := config.MustFromContext(cmd.Context()).ClientProvider.Session(cmd.Context(), gate.HomePath)
		if err != nil {
			return err
		}

		entries := menu.Build(snap)
		pterm.DefaultSection.Printf("Menu for %s\n", snap.Role)
		return pterm.DefaultTree.WithRoot(toTree(entries)).Render()
	},
}

func init() {
	MenuCmd.AddCommand(navCmd)
}

// toTree converts menu entries into a pterm tree rooted at an unnamed node.
func toTree(entries []menu.Entry) pterm.TreeNode {
	root := pterm.TreeNode{}
	for _, e := range entries {
		root.Children = append(root.Children, entryNode(e))
	}
	return root
}

func entryNode(e menu.Entry) pterm.TreeNode {
	node := pterm.TreeNode{Text: e.Label}
	if e.Href != "" {
		node.Text = fmt.Sprintf("%s (%s)", e.Label, e.Href)
	}
	for _, c := range e.Children {
		node.Children = append(node.Children, entryNode(c))
	}
	return node
}
