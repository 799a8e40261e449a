package commands

import (
	"io"

	"github.com/charmbracelet/log"

	"tasker/internal/api"
	"tasker/internal/config"
	"tasker/internal/credstore"
	"tasker/internal/session"
)

// newSession wires the credential store, HTTP client and session manager.
// Account commands (login, register, logout, tui) run before any Service
// exists, so they build the stack themselves from cfg.
func newSession(cfg *config.Config, errOut io.Writer) (*session.Manager, *api.Client, error) {
	if cfg.BaseURL == "" {
		return nil, nil, errNoBaseURL
	}
	store := credstore.New(cfg.TokenPath())
	client := api.New(cfg.BaseURL, store)
	mgr := session.New(store, client)
	if cfg.Debug {
		logger := log.NewWithOptions(errOut, log.Options{Level: log.DebugLevel, ReportTimestamp: false})
		client.SetLogger(logger)
		mgr.SetLogger(logger)
	}
	return mgr, client, nil
}
