package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytag/internal/auth"
	"github.com/desertthunder/ytag/internal/services"
	"github.com/desertthunder/ytag/internal/shared"
	"github.com/desertthunder/ytag/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	store  *auth.Store
	logger *log.Logger
	output io.Writer
	engine tasks.Engine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Store  *auth.Store
	Logger *log.Logger
	Output io.Writer

	// Service pre-builds the engine, bypassing interactive authorization.
	Service services.Service
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
	if opts.Store == nil {
		opts.Store = auth.NewStore(auth.Opts{
			SecretsPath: opts.Config.Credentials.YouTube.ClientSecretsPath,
			TokenPath:   opts.Config.Credentials.YouTube.TokenPath,
			Host:        opts.Config.Server.Host,
			Port:        opts.Config.Server.Port,
			Logger:      opts.Logger,
		})
	}

	r := &Runner{
		config: opts.Config,
		store:  opts.Store,
		logger: opts.Logger,
		output: opts.Output,
	}

	if opts.Service != nil {
		r.engine = tasks.NewTagEngine(opts.Service)
	}

	return r
}

// SetLogger swaps the runner's logger, used when the TUI redirects logs to a file.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// ensureEngine lazily builds the tag engine, obtaining a credential first.
// The interactive authorization flow runs here when no valid token is stored.
func (r *Runner) ensureEngine(ctx context.Context) (tasks.Engine, error) {
	if r.engine != nil {
		return r.engine, nil
	}

	token, err := r.store.Obtain(ctx)
	if err != nil {
		return nil, err
	}

	client, err := r.store.Client(ctx, token)
	if err != nil {
		return nil, err
	}

	svc, err := services.NewYouTubeService(ctx, client, r.config.Analysis.RequestsPerSecond)
	if err != nil {
		return nil, err
	}

	r.engine = tasks.NewTagEngine(svc)
	return r.engine, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, analyzeCommand, playlistCommand, historyCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
