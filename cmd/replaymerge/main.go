package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	app "github.com/okian/replaymerge/internal/app"
	"github.com/okian/replaymerge/internal/config"
	"github.com/okian/replaymerge/internal/domain/lookup"
	"github.com/okian/replaymerge/internal/domain/match"
	"github.com/okian/replaymerge/internal/domain/naming"
	"github.com/okian/replaymerge/pkg/logger"
)

const (
	flagConfig = "config"
	flagP1     = "p1"
	flagP2     = "p2"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		os.Stderr.WriteString("replaymerge: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "replaymerge",
		Usage: "group replay recordings into games and plan their archive",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Usage:   "YAML config file",
				EnvVars: []string{config.EnvFile},
			},
		},
		Commands: []*cli.Command{
			newPlanCommand(),
			newInspectCommand(),
		},
	}
}

// env is what every command runs with.
type env struct {
	cfg     *config.Config
	log     logger.Logger
	engine  *match.Engine
	encoder *naming.Encoder
}

// setup loads the configuration and builds the logger, lookup tables and
// name encoder from it. Logs go to the app's error writer so stdout only
// carries command output.
func setup(c *cli.Context) (*env, error) {
	ctx := c.Context
	cfg, err := config.LoadFile(ctx, c.String(flagConfig))
	if err != nil {
		return nil, err
	}

	if err := logger.Init(logger.WithWriter(c.App.ErrWriter), logger.WithFormat(cfg.LogFormat)); err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	log := logger.Named("cli")
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	var tableOpts []lookup.Option
	if cfg.NamesFile != "" {
		tableOpts, err = lookup.Load(ctx, cfg.NamesFile)
		if err != nil {
			return nil, err
		}
		log.Debug(ctx, "loaded name overrides", logger.String("names_file", cfg.NamesFile))
	}

	encoder := naming.New(
		naming.WithExtension(cfg.Extension),
		naming.WithPlaceholders(cfg.PlaceholderPlayer1, cfg.PlaceholderPlayer2),
		naming.WithTransliteration(cfg.Transliterate),
	)
	return &env{
		cfg:     cfg,
		log:     log,
		engine:  match.New(match.WithNames(lookup.New(tableOpts...))),
		encoder: encoder,
	}, nil
}

func (e *env) service() *app.Service {
	return app.New(
		app.WithLogger(logger.Named("import")),
		app.WithEngine(e.engine),
		app.WithEncoder(e.encoder),
		app.WithDedupeSize(e.cfg.DedupeSize),
		app.WithDecodeWorkers(e.cfg.DecodeWorkers),
	)
}

// readUpload reads the parser output at path. The replay file archived for
// it is the sibling with the configured extension when one exists, the
// parser output itself otherwise.
func (e *env) readUpload(path string) (app.Upload, error) {
	parsed, err := os.ReadFile(path)
	if err != nil {
		return app.Upload{}, err
	}
	replayPath := strings.TrimSuffix(path, filepath.Ext(path)) + "." + strings.TrimPrefix(e.cfg.Extension, ".")
	if data, err := os.ReadFile(replayPath); err == nil && replayPath != path {
		return app.Upload{File: match.File{Name: filepath.Base(replayPath), Data: data}, Parsed: parsed}, nil
	}
	return app.Upload{File: match.File{Name: filepath.Base(path), Data: parsed}, Parsed: parsed}, nil
}

func printTeams(w io.Writer, teams []match.Team) {
	for _, t := range teams {
		status := "lost"
		if t.Winner {
			status = "won"
		}
		fmt.Fprintf(w, "    %s (%s):", t.ID, status)
		for _, p := range t.Players {
			mark := ""
			if p.Resigned {
				mark = " resigned"
			}
			fmt.Fprintf(w, " %s [%s, color %d%s]", p.Name, p.Civ, p.Color, mark)
		}
		fmt.Fprintln(w)
	}
}
