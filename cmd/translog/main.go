// FILE: lixenwraith/translog/cmd/translog/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/translog"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "translog",
		Usage: "Emit, stress and configure batched log transports",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Configuration file path (.toml, .yaml)",
			},
			&cli.StringSliceFlag{
				Name:    "set",
				Aliases: []string{"s"},
				Usage:   "Configuration override as key=value, repeatable",
			},
		},
		Commands: []*cli.Command{
			emitCommand(),
			stressCommand(),
			configCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file when given and applies overrides
func loadConfig(cmd *cli.Command) (*translog.Config, error) {
	cfg := translog.DefaultConfig()
	if path := cmd.String("config"); path != "" {
		loaded, err := translog.NewConfigFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if overrides := cmd.StringSlice("set"); len(overrides) > 0 {
		if err := cfg.ApplyOverride(overrides...); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
