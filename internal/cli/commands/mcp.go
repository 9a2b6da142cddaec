package commands

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"github.com/kutbudev/joplin-mcp/internal/api"
	"github.com/kutbudev/joplin-mcp/internal/config"
	"github.com/kutbudev/joplin-mcp/internal/mcp"
)

func NewMcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "MCP (Model Context Protocol) server management",
		Subcommands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the MCP server (stdio by default)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "http",
						Usage: "serve MCP over HTTP on `ADDR` (e.g. :3330) instead of stdio",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					opts := mcp.Options{
						Client:     api.NewClient(),
						AutoLaunch: cfg.AutoLaunch,
					}

					if addr := c.String("http"); addr != "" {
						handler, err := mcp.HTTPHandler(opts)
						if err != nil {
							return err
						}
						gin.SetMode(gin.ReleaseMode)
						r := gin.New()
						r.Use(gin.Recovery())
						r.Any("/mcp", gin.WrapH(handler))
						r.Any("/mcp/*path", gin.WrapH(handler))
						fmt.Printf("MCP server listening on %s/mcp\n", addr)
						return r.Run(addr)
					}
					return mcp.ServeStdio(opts)
				},
			},
			{
				Name:  "config",
				Usage: "Print MCP config snippets for client applications",
				Action: func(c *cli.Context) error {
					fmt.Println(`Add to your MCP client configuration:

{
  "mcpServers": {
    "joplin": {
      "command": "joplin-mcp",
      "args": ["mcp", "serve"],
      "env": {
        "JOPLIN_TOKEN": "<your Web Clipper token>"
      }
    }
  }
}

The token lives in Joplin under Tools > Options > Web Clipper.
Run 'joplin-mcp setup' to store it in the system keyring instead.`)
					return nil
				},
			},
		},
	}
}
