// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file (TOML or YAML)",
		Value:   "config.toml",
	}
}

// outputFlags are shared by every command that prints catalog data.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, markdown, csv or json",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "script",
			Usage: "Apply the configured script before printing",
		},
	}
}

func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "init",
		Usage:  "Write an example configuration file",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Init,
	}
}

func demoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "demo",
		Usage:  "Run the built-in example library scenario",
		Action: r.Demo,
	}
}

func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Seed the catalog from config and execute its script",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Print progress for every step",
			},
			&cli.BoolFlag{
				Name:  "log",
				Usage: "Print the transaction log after the run",
				Value: true,
			},
		},
		Action: r.Run,
	}
}

func booksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "books",
		Usage:  "List books",
		Flags:  outputFlags(),
		Action: r.Books,
	}
}

func membersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "members",
		Usage:  "List members",
		Flags:  outputFlags(),
		Action: r.Members,
	}
}

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search book titles (case-insensitive substring)",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "keyword",
			},
		},
		Flags:  outputFlags(),
		Action: r.Search,
	}
}

func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Show catalog statistics",
		Flags:  outputFlags(),
		Action: r.Stats,
	}
}

func metricsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "metrics",
		Usage:  "Run the configured script and print Prometheus metrics",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Metrics,
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Browse the catalog interactively",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the TUI is running",
				Value: "./tmp/shelf-tui.log",
			},
		},
		Action: r.TUI,
	}
}
