package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/kutbudev/joplin-mcp/internal/api"
	"github.com/kutbudev/joplin-mcp/internal/config"
)

func NewSetupCommand() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Store the Joplin Web Clipper API token",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-verify",
				Usage: "skip the connection check against the running Joplin instance",
			},
		},
		Action: func(c *cli.Context) error {
			fmt.Println("Find your token in Joplin under Tools > Options > Web Clipper.")
			fmt.Print("Enter your API token: ")

			token, err := readToken()
			if err != nil {
				return fmt.Errorf("could not read token: %w", err)
			}
			if token == "" {
				return fmt.Errorf("no token entered")
			}

			if !c.Bool("no-verify") {
				if err := verifyToken(token); err != nil {
					fmt.Printf("⚠️ Could not verify the token against Joplin: %v\n", err)
					fmt.Println("Saving anyway; make sure Joplin is running with Web Clipper enabled.")
				} else {
					fmt.Println("✅ Joplin answered; token accepted.")
				}
			}

			where, err := config.StoreToken(token)
			if err != nil {
				return fmt.Errorf("could not save token: %w", err)
			}
			fmt.Printf("✅ Token saved to %s\n", where)
			return nil
		},
	}
}

// readToken reads the token without echoing when attached to a terminal,
// and falls back to plain line input when piped.
func readToken() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}

	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func verifyToken(token string) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	client := api.NewClient()
	client.BaseURL = cfg.BaseURL()
	client.Token = token

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Ping(ctx)
}
