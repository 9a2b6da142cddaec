package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/kutbudev/joplin-mcp/internal/api"
	"github.com/kutbudev/joplin-mcp/internal/models"
)

func NewNotesCommand() *cli.Command {
	return &cli.Command{
		Name:  "notes",
		Usage: "List, read, create and delete notes",
		Subcommands: []*cli.Command{
			newNotesListCommand(),
			newNotesReadCommand(),
			newNotesCreateCommand(),
			newNotesDeleteCommand(),
		},
	}
}

func newNotesListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List notes, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "notebook", Aliases: []string{"n"}, Usage: "filter by notebook `ID`"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "maximum notes to show"},
		},
		Action: func(c *cli.Context) error {
			client := api.NewClient()
			notes, err := client.ListNotes(c.Context, api.NoteQuery{
				NotebookID: c.String("notebook"),
				OrderDesc:  true,
				Limit:      c.Int("limit"),
			})
			if err != nil {
				return err
			}
			printNoteList(notes)
			return nil
		},
	}
}

func newNotesReadCommand() *cli.Command {
	return &cli.Command{
		Name:      "read",
		Usage:     "Read a note's full content",
		ArgsUsage: "<note-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "copy", Usage: "copy the note body to the clipboard"},
			&cli.BoolFlag{Name: "raw", Usage: "print raw Markdown without terminal rendering"},
		},
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return fmt.Errorf("note id is required")
			}

			client := api.NewClient()
			note, err := client.GetNote(c.Context, id, true)
			if err != nil {
				return err
			}

			if c.Bool("copy") {
				if err := clipboard.WriteAll(note.Body); err != nil {
					fmt.Printf("⚠️ Could not copy to clipboard: %v\n", err)
				} else {
					fmt.Println("📋 Body copied to clipboard.")
				}
			}

			fmt.Printf("# %s\n\n", note.Title)
			fmt.Printf("ID: %s  |  Updated: %s\n\n", note.ID, formatNoteTime(note.UpdatedTime))

			// Render Markdown nicely when attached to a terminal.
			if !c.Bool("raw") && term.IsTerminal(int(os.Stdout.Fd())) {
				if out, err := glamour.Render(note.Body, "dark"); err == nil {
					fmt.Print(out)
					return nil
				}
			}
			fmt.Println(note.Body)
			return nil
		},
	}
}

func newNotesCreateCommand() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a note",
		ArgsUsage: "<title>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "body", Aliases: []string{"b"}, Usage: "note content in Markdown"},
			&cli.StringFlag{Name: "notebook", Aliases: []string{"n"}, Usage: "target notebook `ID`"},
			&cli.BoolFlag{Name: "todo", Usage: "create as a to-do item"},
		},
		Action: func(c *cli.Context) error {
			title := c.Args().First()
			if title == "" {
				return fmt.Errorf("title is required")
			}

			client := api.NewClient()
			note, err := client.CreateNote(c.Context, api.NewNote{
				Title:      title,
				Body:       c.String("body"),
				NotebookID: c.String("notebook"),
				IsTodo:     c.Bool("todo"),
			})
			if err != nil {
				return err
			}
			fmt.Printf("✅ Created note %q (%s)\n", note.Title, note.ID)
			return nil
		},
	}
}

func newNotesDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a note",
		ArgsUsage: "<note-id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return fmt.Errorf("note id is required")
			}

			client := api.NewClient()
			if err := client.DeleteNote(c.Context, id); err != nil {
				if api.IsNotFound(err) {
					fmt.Printf("🗑️ Note already deleted (%s)\n", id)
					return nil
				}
				return err
			}
			fmt.Printf("🗑️ Deleted note (%s)\n", id)
			return nil
		},
	}
}

func printNoteList(notes []models.Note) {
	if len(notes) == 0 {
		fmt.Println("No notes found.")
		return
	}
	for _, n := range notes {
		marker := "  "
		if n.Todo() {
			if n.Completed() {
				marker = "✅"
			} else {
				marker = "⬜"
			}
		}
		fmt.Printf("%s %s  %s  %s\n", marker, n.ID, formatNoteTime(n.UpdatedTime), n.Title)
	}
	fmt.Printf("\n%d notes\n", len(notes))
}

func formatNoteTime(ms int64) string {
	if ms == 0 {
		return "unknown"
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}
