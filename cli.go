package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"brandsmith/internal/services"
	"brandsmith/internal/utils"
)

const usage = `usage: brandsmith <command>

commands:
  serve                              run the HTTP API (default)
  mcp                                serve MCP over stdio
  user create --name NAME            create a user and print its token
  user list                          list users
  keys set PROVIDER (--key K | --file F)
  keys delete PROVIDER
  keys list
  version`

var errUsage = errors.New(usage)

// run dispatches a command line. Output meant for the user goes to out.
func run(ctx context.Context, app *App, args []string, out io.Writer) error {
	cmd := "serve"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}
	switch cmd {
	case "serve":
		if err := app.startup(ctx); err != nil {
			return err
		}
		return app.serve(ctx)
	case "mcp":
		if err := app.startup(ctx); err != nil {
			return err
		}
		app.log.Info("starting stdio transport")
		return app.mcpServer("stdio").Run(ctx, &sdkmcp.StdioTransport{})
	case "user":
		return runUser(ctx, app, args, out)
	case "keys":
		return runKeys(app, args, out)
	case "version":
		_, err := fmt.Fprintln(out, version)
		return err
	case "help", "-h", "--help":
		_, err := fmt.Fprintln(out, usage)
		return err
	default:
		return fmt.Errorf("unknown command %q\n%w", cmd, errUsage)
	}
}

func runUser(ctx context.Context, app *App, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	if err := app.openDB(); err != nil {
		return err
	}
	users := services.NewDbServices(app.db, services.Generators{}, app.log).Users

	switch args[0] {
	case "create":
		fs := flag.NewFlagSet("user create", flag.ContinueOnError)
		fs.SetOutput(out)
		name := fs.String("name", "", "user name")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		u, token, err := users.Register(ctx, *name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "created user %d (%s)\ntoken: %s\n", u.ID, u.Name, token)
		fmt.Fprintln(out, "the token is shown once; store it now")
		return nil
	case "list":
		list, err := users.List(ctx, 100, 0)
		if err != nil {
			return err
		}
		for _, u := range list {
			fmt.Fprintf(out, "%d\t%s\t%s\n", u.ID, u.Name, u.CreatedAt.Format("2006-01-02"))
		}
		return nil
	default:
		return errUsage
	}
}

func runKeys(app *App, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	keys := app.keyring()
	if keys == nil {
		return errors.New("keyring unavailable")
	}

	switch args[0] {
	case "set":
		if len(args) < 2 {
			return errUsage
		}
		provider := args[1]
		fs := flag.NewFlagSet("keys set", flag.ContinueOnError)
		fs.SetOutput(out)
		key := fs.String("key", "", "api key")
		file := fs.String("file", "", "file whose first non-comment line is the api key")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		value := strings.TrimSpace(*key)
		if *file != "" {
			lines, err := utils.ReadNonEmptyLines(*file)
			if err != nil {
				return fmt.Errorf("read key file: %w", err)
			}
			if len(lines) == 0 {
				return fmt.Errorf("key file %s is empty", *file)
			}
			value = lines[0]
		}
		if err := keys.StoreApiKey(provider, []byte(value)); err != nil {
			return err
		}
		fmt.Fprintf(out, "stored %s key\n", provider)
		return nil
	case "delete":
		if len(args) < 2 {
			return errUsage
		}
		if err := keys.DeleteApiKey(args[1]); err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted %s key\n", args[1])
		return nil
	case "list":
		list, err := keys.ListApiKeys()
		if err != nil {
			return err
		}
		for _, k := range list {
			fmt.Fprintln(out, k["provider"])
		}
		return nil
	default:
		return errUsage
	}
}
