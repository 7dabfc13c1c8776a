package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/atinyakov/FotoShop/internal/client/app"
	"github.com/atinyakov/FotoShop/internal/client/config"
	"github.com/atinyakov/FotoShop/internal/logger"
)

var (
	version   string
	buildDate string
)

// errShown marks errors the view has already presented to the user.
type errShown struct{ error }

func (e errShown) Unwrap() error { return e.error }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return errShown{err}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var s errShown
		if !errors.As(err, &s) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand; set flags win over the config
// file and the environment.
type globalFlags struct {
	configPath string
	serverURL  string
	storePath  string
	backend    string
	caFile     string
	logLevel   string
	timeout    time.Duration
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "fotoshop",
		Short:         "Terminal photo storefront",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", config.DefaultPath(), "path to YAML config file")
	pf.StringVar(&g.serverURL, "url", "", "storefront API base URL")
	pf.StringVar(&g.storePath, "store", "", "local state path")
	pf.StringVar(&g.backend, "backend", "", "local state backend: file|sqlite|memory")
	pf.StringVar(&g.caFile, "ca", "", "CA certificate trusted for the server")
	pf.StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.DurationVar(&g.timeout, "timeout", 0, "HTTP request timeout")

	root.AddCommand(
		newLoginCmd(g),
		newRegisterCmd(g),
		newLogoutCmd(g),
		newWhoAmICmd(g),
		newCatalogCmd(g),
		newCartCmd(g),
		newCheckoutCmd(g),
		newShellCmd(g),
		newVersionCmd(),
	)
	return root
}

func (g *globalFlags) options(cmd *cobra.Command) (config.Options, error) {
	opts, err := config.Load(g.configPath)
	if err != nil {
		return config.Options{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("url") {
		opts.ServerURL = g.serverURL
	}
	if flags.Changed("store") {
		opts.StorePath = g.storePath
	}
	if flags.Changed("backend") {
		opts.Backend = g.backend
	}
	if flags.Changed("ca") {
		opts.CAFile = g.caFile
	}
	if flags.Changed("log-level") {
		opts.LogLevel = g.logLevel
	}
	if flags.Changed("timeout") {
		opts.Timeout = g.timeout
	}
	return opts, nil
}

// loadApp builds the container for one command. The caller must Close it.
func (g *globalFlags) loadApp(ctx context.Context, cmd *cobra.Command, interactive bool) (*app.App, error) {
	opts, err := g.options(cmd)
	if err != nil {
		return nil, err
	}
	l := logger.New()
	if err := l.Init(opts.LogLevel); err != nil {
		return nil, err
	}
	return app.New(ctx, app.Options{Config: opts, Interactive: interactive}, cmd.OutOrStdout(), l.Log)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build version and date",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "FotoShop Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		},
	}
}
