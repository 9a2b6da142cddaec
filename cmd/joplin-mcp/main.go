package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kutbudev/joplin-mcp/internal/cli/commands"
)

// Version will be set during build with ldflags
var Version = "1.2.0"

func main() {
	app := &cli.App{
		Name:    "joplin-mcp",
		Usage:   "MCP bridge and CLI for the local Joplin note service",
		Version: Version,
		Commands: []*cli.Command{
			commands.NewMcpCommand(),
			commands.NewSetupCommand(),

			commands.NewNotebooksCommand(),
			commands.NewNotesCommand(),
			commands.NewTagsCommand(),
			commands.NewSearchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
