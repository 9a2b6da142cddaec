package commands

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kutbudev/joplin-mcp/internal/api"
	"github.com/kutbudev/joplin-mcp/internal/models"
)

func NewNotebooksCommand() *cli.Command {
	return &cli.Command{
		Name:  "notebooks",
		Usage: "List notebooks as a tree",
		Action: func(c *cli.Context) error {
			client := api.NewClient()
			notebooks, err := client.ListNotebooks(c.Context)
			if err != nil {
				return err
			}
			if len(notebooks) == 0 {
				fmt.Println("No notebooks found.")
				return nil
			}
			printNotebookTree(notebooks)
			return nil
		},
	}
}

func printNotebookTree(notebooks []models.Notebook) {
	ids := make(map[string]bool, len(notebooks))
	for _, nb := range notebooks {
		ids[nb.ID] = true
	}
	children := make(map[string][]models.Notebook)
	for _, nb := range notebooks {
		parent := nb.ParentID
		if parent != "" && !ids[parent] {
			parent = ""
		}
		children[parent] = append(children[parent], nb)
	}

	var walk func(parentID string, level int)
	walk = func(parentID string, level int) {
		for _, nb := range children[parentID] {
			fmt.Printf("%s📁 %s  (%s)\n", strings.Repeat("  ", level), nb.Title, nb.ID)
			walk(nb.ID, level+1)
		}
	}
	walk("", 0)
}
