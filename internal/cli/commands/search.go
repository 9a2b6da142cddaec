package commands

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kutbudev/joplin-mcp/internal/api"
)

func NewSearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search notes with Joplin query syntax (title:, tag:, notebook:, type:todo, ...)",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "maximum results"},
		},
		Action: func(c *cli.Context) error {
			query := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(query) == "" {
				return fmt.Errorf("search query is required")
			}

			client := api.NewClient()
			notes, err := client.SearchNotes(c.Context, query, c.Int("limit"))
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				fmt.Printf("No notes found matching %q.\n", query)
				return nil
			}
			printNoteList(notes)
			return nil
		},
	}
}
