// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-social-graph/internal/adapter"
	"github.com/MKhiriev/go-social-graph/internal/config"
	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/internal/tui"
	"github.com/urfave/cli/v2"
)

const (
	flagAddress = "address"
	flagTimeout = "timeout"
	flagSession = "session"
	flagVerbose = "verbose"
)

// AdapterFactory builds the transport used by the commands.
type AdapterFactory func(cfg config.ClientAdapter, logger *logger.Logger) (adapter.ServerAdapter, error)

// PromptFunc asks the user for a value. Secret prompts must not echo.
type PromptFunc func(ctx context.Context, label string, secret bool) (string, error)

// App is the command-line client.
type App struct {
	cli *cli.App

	newAdapter AdapterFactory
	prompt     PromptFunc
	in         io.Reader
	out        io.Writer
	errOut     io.Writer
}

// Option customises an [App].
type Option func(*App)

// WithAdapterFactory replaces the REST adapter.
func WithAdapterFactory(f AdapterFactory) Option {
	return func(a *App) { a.newAdapter = f }
}

// WithPrompt replaces the interactive prompt.
func WithPrompt(p PromptFunc) Option {
	return func(a *App) { a.prompt = p }
}

// WithIO redirects the terminal streams.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *App) {
		a.in = in
		a.out = out
		a.errOut = errOut
	}
}

var _ Client = (*App)(nil)

// NewApp assembles the client commands.
func NewApp(version string, opts ...Option) *App {
	a := &App{
		newAdapter: adapter.NewHTTPServerAdapter,
		in:         os.Stdin,
		out:        os.Stdout,
		errOut:     os.Stderr,
	}
	a.prompt = func(ctx context.Context, label string, secret bool) (string, error) {
		return tui.Prompt(ctx, label, secret, a.in, a.errOut)
	}
	for _, opt := range opts {
		opt(a)
	}

	a.cli = &cli.App{
		Name:      "gsg",
		Usage:     "go-social-graph command-line client",
		Version:   version,
		Writer:    a.out,
		ErrWriter: a.errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagAddress, Aliases: []string{"a"}, Usage: "server address, overrides ADAPTER_ADDRESS"},
			&cli.DurationFlag{Name: flagTimeout, Usage: "request timeout, overrides ADAPTER_REQUEST_TIMEOUT"},
			&cli.StringFlag{Name: flagSession, Value: DefaultSessionPath(), Usage: "session file"},
			&cli.BoolFlag{Name: flagVerbose, Usage: "log requests to stderr"},
		},
		Commands: a.commands(),
		// errors are returned to the caller instead of exiting here
		ExitErrHandler: func(*cli.Context, error) {},
	}

	return a
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	return a.cli.RunContext(ctx, args)
}

// session is the per-invocation state shared by the commands.
type session struct {
	server adapter.ServerAdapter
	file   *SessionFile
	logger *logger.Logger
}

func (a *App) open(c *cli.Context) (*session, error) {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, err
	}
	if err = cfg.Override(c.String(flagAddress), c.Duration(flagTimeout)); err != nil {
		return nil, err
	}

	log := logger.NewConsoleLogger("client", a.errOut, c.Bool(flagVerbose))

	server, err := a.newAdapter(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	file := NewSessionFile(c.String(flagSession))
	creds, err := file.Load()
	if err != nil {
		return nil, err
	}
	server.SetCredentials(creds)

	log.Debug().
		Str("address", cfg.Adapter.HTTPAddress).
		Int64("user_id", creds.UserID).
		Msg("session loaded")

	return &session{server: server, file: file, logger: log}, nil
}

func (s *session) save() error {
	return s.file.Save(s.server.Credentials())
}
