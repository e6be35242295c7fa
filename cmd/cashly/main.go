package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/app"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/client"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/config"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/conversation"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/logging"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "cashly:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to an alternate config file")
	baseURL := flag.String("base-url", "", "override the backend base URL")
	logLevel := flag.String("log-level", "", "override the log level (debug|info|warn|error)")
	flag.Parse()

	var (
		cfg config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	logPath, err := config.LogPath()
	if err != nil {
		return err
	}
	log, closer, err := logging.OpenFile(logPath, logging.ParseLevel(cfg.LogLevel()))
	if err != nil {
		return err
	}
	defer closer.Close()

	api, err := client.New(cfg.BaseURL())
	if err != nil {
		return err
	}
	clientAPI := app.NewClientAPI(api)

	exportDir, err := cfg.ExportDir()
	if err != nil {
		return err
	}

	var recents app.RecentsStore
	dbPath, err := config.RecentsDBPath()
	if err == nil {
		if recentsStore, storeErr := store.OpenRecentsStore(dbPath); storeErr == nil {
			defer recentsStore.Close()
			recents = recentsStore
		} else {
			log.Warn("recents cache unavailable", logging.F("error", storeErr.Error()))
		}
	}

	model := app.NewModel(app.Options{
		Conversations: clientAPI,
		Finance:       clientAPI,
		Recents:       recents,
		Orchestrator:  conversation.New(log),
		Config:        cfg,
		Logger:        log,
		ExportDir:     exportDir,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(model, opts...)
	_, err = program.Run()
	return err
}
