package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"github.com/five82/storefront/internal/config"
	"github.com/five82/storefront/internal/logtail"
)

const defaultLogLines = 50

func (r *runner) logsCommand() *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "show recent storefront log entries",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "lines", Aliases: []string{"n"}, Value: defaultLogLines, Usage: "lines to read from the end of the log"},
			&cli.StringFlag{Name: "level", Value: "debug", Usage: "minimum level to show"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = cfg.WithDataDir(c.String("data-dir"))

			level, err := zapcore.ParseLevel(c.String("level"))
			if err != nil {
				return fmt.Errorf("%w: --level: %v", errUsage, err)
			}
			entries, err := logtail.ReadEntries(cfg.LogPath(), c.Int("lines"), level)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(r.out, "No log entries")
				return nil
			}
			for _, line := range logtail.FormatAll(entries) {
				fmt.Fprintln(r.out, line)
			}
			return nil
		},
	}
}
