package cli

import (
	"fmt"
	"io"
	"time"

	"timedread/infrastructure/logging"
	"timedread/infrastructure/settings"
	"timedread/infrastructure/telemetry/readstats"
	"timedread/presentation/runners/probe"

	"github.com/urfave/cli/v2"
)

const (
	PackageName = "timedread"

	flagConfig        = "config"
	flagReadTimeoutMs = "read-timeout-ms"
	flagDialTimeoutMs = "dial-timeout-ms"
	flagBufferSize    = "buffer-size"
	flagCount         = "count"
	flagParallel      = "parallel"
	flagVerbose       = "verbose"
)

// NewApp builds the command line interface. Results go to out.
func NewApp(out io.Writer) *cli.App {
	app := &cli.App{
		Name:   PackageName,
		Usage:  "read from network endpoints with a bounded idle timeout",
		Writer: out,
	}
	app.Commands = []*cli.Command{
		{
			Name:      "read",
			Usage:     "Read from each target until EOF, error or --count reads.",
			ArgsUsage: "<tcp://host:port | ws://url | wss://url>...",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagConfig,
					Aliases: []string{"c"},
					Usage:   "YAML or JSON configuration `FILE`",
				},
				&cli.IntFlag{
					Name:  flagReadTimeoutMs,
					Usage: "maximum idle time of one read, in milliseconds",
				},
				&cli.IntFlag{
					Name:  flagDialTimeoutMs,
					Usage: "dial timeout, in milliseconds",
				},
				&cli.IntFlag{
					Name:  flagBufferSize,
					Usage: "read buffer capacity in bytes",
				},
				&cli.IntFlag{
					Name:    flagCount,
					Aliases: []string{"n"},
					Usage:   "reads per target (0 reads until EOF)",
				},
				&cli.IntFlag{
					Name:  flagParallel,
					Value: 4,
					Usage: "targets probed concurrently (0 means all)",
				},
				&cli.BoolFlag{
					Name:    flagVerbose,
					Aliases: []string{"v"},
					Usage:   "enable debug logging",
				},
			},
			Action: readAction(out),
		},
	}
	return app
}

func readAction(out io.Writer) cli.ActionFunc {
	return func(c *cli.Context) error {
		targets, err := probe.ParseTargets(c.Args().Slice())
		if err != nil {
			return err
		}

		cfg, err := resolveConfiguration(c)
		if err != nil {
			return err
		}

		zl, err := logging.NewProduction(c.Bool(flagVerbose))
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer func() {
			_ = zl.Sync()
		}()

		runner := probe.NewRunner(
			cfg,
			probe.Options{Count: c.Int(flagCount), Parallel: c.Int(flagParallel)},
			probe.NewDefaultDialer(cfg),
			logging.NewZapLogger(zl),
			readstats.NewCollector(time.Second, 0.3),
			out,
		)
		_, err = runner.Run(c.Context, targets)
		return err
	}
}

// resolveConfiguration loads --config when given and lets explicit flags
// override file values.
func resolveConfiguration(c *cli.Context) (settings.Configuration, error) {
	var cfg settings.Configuration
	if path := c.String(flagConfig); path != "" {
		loaded, err := settings.LoadConfiguration(path)
		if err != nil {
			return settings.Configuration{}, err
		}
		cfg = loaded
	}
	if c.IsSet(flagReadTimeoutMs) {
		cfg.Read.ReadTimeoutMs = settings.ReadTimeoutMs(c.Int(flagReadTimeoutMs))
	}
	if c.IsSet(flagBufferSize) {
		cfg.Read.BufferSize = c.Int(flagBufferSize)
	}
	if c.IsSet(flagDialTimeoutMs) {
		cfg.DialTimeoutMs = settings.DialTimeoutMs(c.Int(flagDialTimeoutMs))
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return settings.Configuration{}, err
	}
	return cfg, nil
}
