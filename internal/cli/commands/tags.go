package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kutbudev/joplin-mcp/internal/api"
)

func NewTagsCommand() *cli.Command {
	return &cli.Command{
		Name:  "tags",
		Usage: "List all tags",
		Action: func(c *cli.Context) error {
			client := api.NewClient()
			tags, err := client.ListTags(c.Context)
			if err != nil {
				return err
			}
			if len(tags) == 0 {
				fmt.Println("No tags found.")
				return nil
			}
			sort.Slice(tags, func(i, j int) bool {
				return strings.ToLower(tags[i].Title) < strings.ToLower(tags[j].Title)
			})
			for _, tag := range tags {
				fmt.Printf("🏷️  %s  (%s)\n", tag.Title, tag.ID)
			}
			return nil
		},
	}
}
