package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/desertthunder/todox/internal/formatter"
	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/shared"
	"github.com/urfave/cli/v3"
)

// Insert appends the task given as arguments to the source file.
//
// Multiple arguments are joined with single spaces, so quoting is optional.
func (r *Runner) Insert(ctx context.Context, cmd *cli.Command) error {
	task := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(task) == "" {
		return fmt.Errorf("%w: missing task text", shared.ErrMissingArgument)
	}

	s, err := r.openStore(cmd, "source")
	if err != nil {
		return err
	}

	if err := s.Insert(task, cmd.Bool("done")); err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	r.logger.Debug("task inserted", "path", s.Path(), "format", s.Format(), "done", cmd.Bool("done"))
	return nil
}

// List prints the tasks of the source file in file order.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStore(cmd, "source")
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		records, err := s.ReadAll()
		if err != nil {
			return err
		}
		return r.writeJSON(models.FilterDone(records, cmd.Bool("done")), false)
	}

	return s.ListTo(r.output, cmd.Bool("done"))
}

// Export renders the source file as markdown or plain text.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseExportFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidFlag, err)
	}

	s, err := r.openStore(cmd, "source")
	if err != nil {
		return err
	}

	records, err := s.ReadAll()
	if err != nil {
		return err
	}

	title := strings.TrimSuffix(filepath.Base(s.Path()), filepath.Ext(s.Path()))
	outputPath := cmd.String("output")

	if outputPath == "" {
		data, err := formatter.Render(format, title, records)
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := formatter.WriteExport(format, title, records, outputPath); err != nil {
		return err
	}

	r.logger.Info("export complete", "path", outputPath, "format", format, "tasks", len(records))
	return r.writePlain("✓ Exported %d tasks to %s\n", len(records), outputPath)
}
