package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/desertthunder/shelf/internal/tasks"
	"github.com/urfave/cli/v3"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	styled     bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	Styled     bool // Styled enables lipgloss headers; set when output is a terminal
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		styled:     opts.Styled,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	if l != nil {
		r.logger = l
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		initCommand, demoCommand, runCommand, booksCommand, membersCommand, searchCommand, statsCommand, metricsCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig resolves the config for cmd, preferring its --config flag over the runner's config.
func (r *Runner) loadConfig(cmd *cli.Command) (*shared.Config, error) {
	path := r.configPath
	if cmd != nil && cmd.IsSet("config") {
		path = cmd.String("config")
	}
	if path == "" {
		return r.config, nil
	}

	config, err := shared.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	return config, nil
}

// openCatalog builds a catalog from config seeds and returns an engine bound to it.
func (r *Runner) openCatalog(ctx context.Context, config *shared.Config, opts ...catalog.Option) (*tasks.CatalogEngine, error) {
	shared.SetLogLevel(r.logger, shared.ParseLogLevel(config.Catalog.LogLevel))

	opts = append([]catalog.Option{catalog.WithLogger(r.logger)}, opts...)
	engine := tasks.NewCatalogEngine(catalog.New(config.Catalog.Name, opts...))

	if err := engine.Seed(ctx, config.Books, config.Members, nil); err != nil {
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	r.logger.Debug("catalog seeded", "books", len(config.Books), "members", len(config.Members))
	return engine, nil
}

// seededCatalog loads config for cmd and returns the seeded engine, optionally after running the configured script.
func (r *Runner) seededCatalog(ctx context.Context, cmd *cli.Command) (*shared.Config, *tasks.CatalogEngine, error) {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	engine, err := r.openCatalog(ctx, config)
	if err != nil {
		return nil, nil, err
	}

	if cmd != nil && cmd.Bool("script") {
		if _, err := engine.Run(ctx, tasks.StepsFromConfig(config.Script), nil); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", shared.ErrStepFailed, err)
		}
	}
	return config, engine, nil
}

// outputFormat resolves --json and --format against the config default.
func (r *Runner) outputFormat(cmd *cli.Command, config *shared.Config) (formatter.Format, error) {
	if cmd != nil && cmd.Bool("json") {
		return formatter.JSON, nil
	}
	if cmd != nil && cmd.IsSet("format") {
		return formatter.ParseFormat(cmd.String("format"))
	}
	return formatter.ParseFormat(config.Catalog.Format)
}

func (r *Runner) write(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		if _, err := r.output.Write([]byte("\n")); err != nil {
			return fmt.Errorf("failed to write newline: %w", err)
		}
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) error {
	if r.styled {
		return r.writePlain("%s\n", headerStyle.Render(title))
	}
	if err := r.writePlain("═══════════════════════════════════════\n"); err != nil {
		return err
	}
	if err := r.writePlain("%v\n", title); err != nil {
		return err
	}
	return r.writePlain("═══════════════════════════════════════\n")
}
