// FILE: lixenwraith/translog/cmd/translog/config.go
package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// configCommand groups configuration file helpers
func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration files",
		Commands: []*cli.Command{
			{
				Name:      "save",
				Usage:     "Write the effective configuration to a file",
				ArgsUsage: "<path>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.Args().First()
					if path == "" {
						return fmt.Errorf("expected <path>")
					}
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					if err := cfg.SaveConfig(path); err != nil {
						return err
					}
					fmt.Printf("Configuration written to %s\n", path)
					return nil
				},
			},
			{
				Name:  "validate",
				Usage: "Load and validate the configuration",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					fmt.Printf("Configuration valid (level=%s console=%t file=%t)\n",
						cfg.Level, cfg.EnableConsole, cfg.EnableFile)
					return nil
				},
			},
		},
	}
}
