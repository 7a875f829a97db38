package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/mmynk/fairly/internal/cli"
	"github.com/mmynk/fairly/internal/config"
)

func main() {
	// Only CURRENCY matters here; the rest of the server settings are ignored.
	currency := "USD"
	if cfg, err := config.Load(); err == nil {
		currency = cfg.Currency
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range cli.Commands(os.Stdout, os.Stderr, currency) {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
