// FILE: lixenwraith/translog/cmd/translog/emit.go
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/lixenwraith/translog"
	"github.com/urfave/cli/v3"
)

// emitCommand logs a single entry through the configured transports
func emitCommand() *cli.Command {
	return &cli.Command{
		Name:      "emit",
		Usage:     "Log one message",
		ArgsUsage: "<level> <message> [params...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "meta",
				Aliases: []string{"m"},
				Usage:   "Metadata as key=value, repeatable",
			},
			&cli.StringFlag{
				Name:  "label",
				Usage: "Label of the emitting logger",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() < 2 {
				return fmt.Errorf("expected <level> <message>")
			}

			level, err := translog.ParseLevel(cmd.Args().Get(0))
			if err != nil {
				return err
			}

			meta, err := parseMeta(cmd.StringSlice("meta"))
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger, err := translog.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			defer logger.Destroy()

			if label := cmd.String("label"); label != "" {
				logger = logger.Child(translog.WithLabel(label))
			}

			rest := cmd.Args().Slice()[2:]
			params := make([]any, 0, len(rest)+1)
			for _, p := range rest {
				params = append(params, p)
			}
			if len(meta) > 0 {
				params = append(params, meta)
			}

			logger.Log(level, cmd.Args().Get(1), params...)
			return nil
		},
	}
}

// parseMeta converts key=value pairs into metadata
func parseMeta(pairs []string) (translog.Meta, error) {
	meta := make(translog.Meta, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid metadata '%s', expected key=value", pair)
		}
		meta[strings.TrimSpace(key)] = value
	}
	return meta, nil
}
