// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func sourceFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "source",
		Aliases: []string{"s"},
		Usage:   "Task file (.json or .csv), defaults to todos.source from the config",
	}
}

// insertCommand appends one task
func insertCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "insert",
		Aliases:   []string{"add"},
		Usage:     "Append a task to the file",
		ArgsUsage: "<task...>",
		Flags: []cli.Flag{
			sourceFlag(),
			&cli.BoolFlag{
				Name:    "done",
				Aliases: []string{"d"},
				Usage:   "Mark the task as done",
			},
		},
		Action: r.Insert,
	}
}

// listCommand prints tasks
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List tasks in file order",
		Flags: []cli.Flag{
			sourceFlag(),
			&cli.BoolFlag{
				Name:    "done",
				Aliases: []string{"d"},
				Usage:   "Only list done tasks",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.List,
	}
}

// migrateCommand copies every task into another file
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Append every task of the source file to the output file, converting the encoding",
		Flags: []cli.Flag{
			sourceFlag(),
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Destination task file (.json or .csv)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Only print the summary",
			},
		},
		Action: r.Migrate,
	}
}

// historyCommand lists recorded migrations
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recorded migrations, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of migrations to show",
				Value: 20,
			},
			&cli.StringFlag{
				Name:  "status",
				Usage: "Only show migrations with this status (pending, running, completed, failed)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		},
		Action: r.History,
	}
}

// exportCommand renders tasks as a document
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export tasks as markdown or plain text",
		Flags: []cli.Flag{
			sourceFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: markdown, text",
				Value:   "markdown",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
		},
		Action: r.Export,
	}
}

// serveCommand exposes a task file over HTTP
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the task file at /todos",
		Flags: []cli.Flag{
			sourceFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (default: server.host from the config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (default: server.port from the config)",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for the configuration and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the config file if missing, then initialize the history database",
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for browsing a task file.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Browse and add tasks interactively",
		Flags:   []cli.Flag{sourceFlag()},
		Action:  r.TUI,
	}
}
