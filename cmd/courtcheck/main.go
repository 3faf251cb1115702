// Command courtcheck is the civil court records search CLI.
package main

import (
	"context"
	"fmt"
	"os"

	authfile "github.com/custodia-labs/courtcheck/internal/adapters/driven/auth/file"
	configfile "github.com/custodia-labs/courtcheck/internal/adapters/driven/config/file"
	"github.com/custodia-labs/courtcheck/internal/adapters/driven/courts/broward"
	"github.com/custodia-labs/courtcheck/internal/adapters/driven/courts/miamidade"
	"github.com/custodia-labs/courtcheck/internal/adapters/driven/courts/newyork"
	"github.com/custodia-labs/courtcheck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/courtcheck/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/courtcheck/internal/adapters/driving/cli"
	"github.com/custodia-labs/courtcheck/internal/core/ports/driven"
	"github.com/custodia-labs/courtcheck/internal/core/services"
	"github.com/custodia-labs/courtcheck/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initialising config store: %w", err)
	}

	credentialsStore, err := authfile.NewCredentialsStore("")
	if err != nil {
		return fmt.Errorf("initialising credentials store: %w", err)
	}

	// History is best-effort: a broken local database should never
	// prevent searching.
	var historyStore driven.HistoryStore
	sqliteStore, err := sqlite.NewHistoryStore("")
	if err != nil {
		logger.Warn("history disabled: %v", err)
	} else {
		historyStore = sqliteStore
		defer sqliteStore.Close()
	}

	registry := services.NewAdapterRegistry()
	registry.Register("miami-dade", func() driven.CountyAdapter {
		return miamidade.New()
	})
	registry.Register("broward", func() driven.CountyAdapter {
		return broward.New(credentialsStore)
	})
	registry.Register("new-york", func() driven.CountyAdapter {
		return newyork.New()
	})

	settingsService := services.NewSettingsService(configStore)
	jobService := services.NewJobService(memory.NewJobStore(), registry, historyStore, settingsService)
	historyService := services.NewHistoryService(historyStore)

	// Reload settings when the config file changes on disk.
	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	go func() {
		if err := configStore.Watch(watchCtx); err != nil && watchCtx.Err() == nil {
			logger.Warn("config watch stopped: %v", err)
		}
	}()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Jobs:        jobService,
		History:     historyService,
		Settings:    settingsService,
		Credentials: credentialsStore,
	})

	return cli.Execute()
}
