package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/atinyakov/FotoShop/internal/client/app"
	"github.com/atinyakov/FotoShop/internal/client/prompt"
)

// withApp runs fn against a freshly restored container and closes it after.
func withApp(g *globalFlags, interactive bool, fn func(ctx context.Context, cmd *cobra.Command, a *app.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a, err := g.loadApp(ctx, cmd, interactive)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(ctx, cmd, a, args)
	}
}

func newLoginCmd(g *globalFlags) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		RunE: withApp(g, false, func(ctx context.Context, cmd *cobra.Command, a *app.App, _ []string) error {
			if email == "" || password == "" {
				var err error
				email, password, err = prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()).Login()
				if err != nil {
					return err
				}
			}
			return shown(a.Login(ctx, email, password))
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newRegisterCmd(g *globalFlags) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: withApp(g, false, func(ctx context.Context, cmd *cobra.Command, a *app.App, _ []string) error {
			if name == "" || email == "" || password == "" {
				var err error
				name, email, password, err = prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()).Register()
				if err != nil {
					return err
				}
			}
			return shown(a.Register(ctx, name, email, password))
		}),
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session and empty the cart",
		RunE: withApp(g, false, func(ctx context.Context, _ *cobra.Command, a *app.App, _ []string) error {
			return shown(a.Logout(ctx))
		}),
	}
}

// whoami and the other read commands rely on the region the view renders
// after restore.
func newWhoAmICmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: withApp(g, false, func(context.Context, *cobra.Command, *app.App, []string) error {
			return nil
		}),
	}
}

func newCatalogCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the images on sale",
		RunE: withApp(g, false, func(ctx context.Context, _ *cobra.Command, a *app.App, _ []string) error {
			return shown(a.View.RenderCatalog(ctx))
		}),
	}
}

func newCartCmd(g *globalFlags) *cobra.Command {
	cart := &cobra.Command{Use: "cart", Short: "Inspect and edit the cart"}

	cart.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		RunE: withApp(g, false, func(_ context.Context, _ *cobra.Command, a *app.App, _ []string) error {
			a.View.RenderCart()
			return nil
		}),
	})

	cart.AddCommand(&cobra.Command{
		Use:   "add <id> [quantity]",
		Short: "Add an image to the cart",
		Args:  cobra.RangeArgs(1, 2),
		RunE: withApp(g, false, func(ctx context.Context, _ *cobra.Command, a *app.App, args []string) error {
			id, qty, err := parseItemArgs(args)
			if err != nil {
				return err
			}
			if err := a.AddToCart(ctx, id, qty); err != nil {
				return shown(err)
			}
			a.View.RenderCart()
			return nil
		}),
	})

	cart.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an image from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(g, false, func(ctx context.Context, _ *cobra.Command, a *app.App, args []string) error {
			id, _, err := parseItemArgs(args)
			if err != nil {
				return err
			}
			if err := a.RemoveFromCart(ctx, id); err != nil {
				return shown(err)
			}
			a.View.RenderCart()
			return nil
		}),
	})

	cart.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: withApp(g, false, func(ctx context.Context, _ *cobra.Command, a *app.App, _ []string) error {
			if err := a.ClearCart(ctx); err != nil {
				return shown(err)
			}
			a.View.RenderCart()
			return nil
		}),
	})
	return cart
}

func newCheckoutCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart",
		RunE: withApp(g, false, func(ctx context.Context, _ *cobra.Command, a *app.App, _ []string) error {
			return shown(a.Checkout(ctx))
		}),
	}
}

// parseItemArgs reads "<id> [quantity]"; quantity defaults to 1.
func parseItemArgs(args []string) (id int64, qty int, err error) {
	id, err = strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, 0, fmt.Errorf("invalid image id %q", args[0])
	}
	qty = 1
	if len(args) > 1 {
		qty, err = strconv.Atoi(args[1])
		if err != nil || qty < 1 {
			return 0, 0, fmt.Errorf("invalid quantity %q", args[1])
		}
	}
	return id, qty, nil
}
