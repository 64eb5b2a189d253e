package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// Books lists every book in the seeded catalog.
func (r *Runner) Books(ctx context.Context, cmd *cli.Command) error {
	config, engine, err := r.seededCatalog(ctx, cmd)
	if err != nil {
		return err
	}

	format, err := r.outputFormat(cmd, config)
	if err != nil {
		return err
	}

	data, err := formatter.Books(engine.Catalog().Books(), format)
	if err != nil {
		return err
	}
	return r.write(data)
}

// Members lists every member in the seeded catalog.
func (r *Runner) Members(ctx context.Context, cmd *cli.Command) error {
	config, engine, err := r.seededCatalog(ctx, cmd)
	if err != nil {
		return err
	}

	format, err := r.outputFormat(cmd, config)
	if err != nil {
		return err
	}

	data, err := formatter.Members(engine.Catalog().Members(), format)
	if err != nil {
		return err
	}
	return r.write(data)
}

// Search prints the books whose title contains the keyword argument.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	keyword := cmd.StringArg("keyword")
	if keyword == "" {
		return fmt.Errorf("%w: keyword", shared.ErrMissingArgument)
	}

	config, engine, err := r.seededCatalog(ctx, cmd)
	if err != nil {
		return err
	}

	format, err := r.outputFormat(cmd, config)
	if err != nil {
		return err
	}

	found := engine.Catalog().SearchBooks(keyword)
	r.logger.Debug("search", "keyword", keyword, "matches", len(found))

	if len(found) == 0 && format == formatter.Text {
		return r.writePlain("No books match %q\n", keyword)
	}

	data, err := formatter.Books(found, format)
	if err != nil {
		return err
	}
	return r.write(data)
}

// Stats prints aggregate counts for the seeded catalog.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	config, engine, err := r.seededCatalog(ctx, cmd)
	if err != nil {
		return err
	}

	format, err := r.outputFormat(cmd, config)
	if err != nil {
		return err
	}

	c := engine.Catalog()
	data, err := formatter.Stats(c.Name(), c.GenerateStats(), format)
	if err != nil {
		return err
	}
	return r.write(data)
}
