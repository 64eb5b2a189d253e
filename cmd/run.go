package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/metrics"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/desertthunder/shelf/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Demo runs the embedded example scenario: three books, two members, two checkouts, a search and a return.
func (r *Runner) Demo(ctx context.Context, cmd *cli.Command) error {
	return r.runScript(ctx, shared.DefaultConfig(), false, true)
}

// Run seeds the catalog from config and executes its script.
func (r *Runner) Run(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	return r.runScript(ctx, config, cmd.Bool("verbose"), cmd.Bool("log"))
}

// Metrics runs the configured script with a metrics collector attached and prints the registry.
func (r *Runner) Metrics(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	var c *catalog.Catalog
	collector := metrics.NewCollector(func() models.Stats { return c.GenerateStats() })

	engine, err := r.openCatalog(ctx, config, catalog.WithObserver(collector))
	if err != nil {
		return err
	}
	c = engine.Catalog()

	if _, err := engine.Run(ctx, tasks.StepsFromConfig(config.Script), nil); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStepFailed, err)
	}

	return collector.WriteText(r.output)
}

func (r *Runner) runScript(ctx context.Context, config *shared.Config, verbose, printLog bool) error {
	engine, err := r.openCatalog(ctx, config)
	if err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, len(config.Script)+1)
	result, runErr := engine.Run(ctx, tasks.StepsFromConfig(config.Script), progress)
	close(progress)

	if verbose {
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
		}
	}

	if result == nil {
		return fmt.Errorf("%w: %v", shared.ErrStepFailed, runErr)
	}

	if err := r.writePlainHeader(engine.Catalog().Name()); err != nil {
		return err
	}

	for _, sr := range result.Steps {
		if err := r.writeStep(config.Catalog.Name, sr); err != nil {
			return err
		}
	}

	if printLog {
		if err := r.writePlainln("Transactions:"); err != nil {
			return err
		}
		data, err := formatter.Transactions(result.Transactions, formatter.Text)
		if err != nil {
			return err
		}
		if err := r.write(data); err != nil {
			return err
		}
	}

	if runErr != nil {
		var stepErr *tasks.StepError
		if errors.As(runErr, &stepErr) {
			r.logger.Error("script stopped", "step", stepErr.Index, "op", stepErr.Op)
		}
		return fmt.Errorf("%w: %v", shared.ErrStepFailed, runErr)
	}
	return nil
}

func (r *Runner) writeStep(name string, sr tasks.StepResult) error {
	switch sr.Step.Op {
	case tasks.OpSearch:
		if err := r.writePlainln("Search %q: %d match(es)", sr.Step.Keyword, len(sr.Books)); err != nil {
			return err
		}
		data, err := formatter.Books(sr.Books, formatter.Text)
		if err != nil {
			return err
		}
		return r.write(data)
	case tasks.OpStats:
		if err := r.writePlain("\n"); err != nil {
			return err
		}
		data, err := formatter.Stats(name, *sr.Stats, formatter.Text)
		if err != nil {
			return err
		}
		return r.write(data)
	default:
		mark := "✓"
		if !sr.Result.OK() {
			mark = "•"
		}
		return r.writePlain("%s %s (%s)\n", mark, sr.Step, sr.Result)
	}
}
