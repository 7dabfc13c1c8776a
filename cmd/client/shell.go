package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atinyakov/FotoShop/internal/client/app"
	"github.com/atinyakov/FotoShop/internal/client/prompt"
)

const shellHelp = "Available commands: help, login, register, logout, whoami, catalog, add <id> [qty], remove <id>, cart, clear, checkout, exit"

func newShellCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive storefront",
		RunE: withApp(g, true, func(ctx context.Context, cmd *cobra.Command, a *app.App, _ []string) error {
			repl(ctx, a, cmd.InOrStdin(), cmd.OutOrStdout())
			return nil
		}),
	}
}

// repl runs the interactive loop until exit or end of input. Failures are
// already shown by the app, so the loop only keeps going.
func repl(ctx context.Context, a *app.App, in io.Reader, out io.Writer) {
	forms := prompt.New(in, out)

	for {
		line, err := forms.Line("fotoshop> ")
		if err != nil {
			fmt.Fprintln(out)
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			fmt.Fprintln(out, shellHelp)
		case "login":
			email, password, ferr := forms.Login()
			if ferr != nil {
				return
			}
			_ = a.Login(ctx, email, password)
		case "register":
			name, email, password, ferr := forms.Register()
			if ferr != nil {
				return
			}
			_ = a.Register(ctx, name, email, password)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			a.WhoAmI(ctx)
		case "catalog":
			_ = a.View.RenderCatalog(ctx)
		case "add":
			if len(args) < 2 || len(args) > 3 {
				fmt.Fprintln(out, "Usage: add <id> [qty]")
				continue
			}
			id, qty, perr := parseItemArgs(args[1:])
			if perr != nil {
				a.View.Alert(perr.Error())
				continue
			}
			if a.AddToCart(ctx, id, qty) == nil {
				a.View.RenderCart()
			}
		case "remove":
			if len(args) != 2 {
				fmt.Fprintln(out, "Usage: remove <id>")
				continue
			}
			id, _, perr := parseItemArgs(args[1:])
			if perr != nil {
				a.View.Alert(perr.Error())
				continue
			}
			if a.RemoveFromCart(ctx, id) == nil {
				a.View.RenderCart()
			}
		case "cart":
			a.View.RenderCart()
		case "clear":
			if a.ClearCart(ctx) == nil {
				a.View.RenderCart()
			}
		case "checkout":
			_ = a.Checkout(ctx)
		case "exit":
			fmt.Fprintln(out, "Bye")
			return
		default:
			fmt.Fprintln(out, "Unknown command. Type 'help' for a list of commands.")
		}
	}
}
