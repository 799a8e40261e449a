// Package main is the entry point for the tasker CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"tasker/internal/api"
	"tasker/internal/backend/resttasks"
	"tasker/internal/cli"
	"tasker/internal/commands"
	"tasker/internal/config"
	"tasker/internal/credstore"
	"tasker/internal/service"
	"tasker/internal/session"
)

var errNoBaseURL = errors.New("backend URL not configured (set TASKER_API_URL or base_url in tasker.toml)")

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Wire the real backend: credential store, HTTP client, session
	// manager (for reactive demotion on 401/403), REST task service.
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		if cfg.BaseURL == "" {
			return nil, errNoBaseURL
		}
		store := credstore.New(cfg.TokenPath())
		client := api.New(cfg.BaseURL, store)
		if cfg.Debug {
			client.SetLogger(log.NewWithOptions(os.Stderr, log.Options{
				Level:           log.DebugLevel,
				ReportTimestamp: false,
			}))
		}
		if _, ok, err := store.Load(); err != nil {
			return nil, err
		} else if !ok {
			return nil, api.ErrAuthRequired
		}
		session.New(store, client)
		return resttasks.New(client), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
