package app

import (
	"context"
	"fmt"

	"incidentdesk/internal/config"
	"incidentdesk/internal/handler"
	"incidentdesk/internal/server"
	incidentsvc "incidentdesk/internal/service/incident"
	"incidentdesk/internal/summarizer"
)

type App struct {
	server *server.Server
	closer func() error
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Dependencies
	store, closeStore, err := initIncidentStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	llm, err := initLLMClient(ctx, cfg)
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	sum, err := summarizer.NewCached(summarizer.New(llm), cfg.SummaryCacheSize)
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	svc := incidentsvc.New(store, sum)
	incidentHandler := handler.NewIncidentHandler(svc)

	// Routing & Server
	mux := server.NewMux(incidentHandler)
	srv := server.New(cfg.Port, mux)

	return &App{
		server: srv,
		closer: func() error {
			_ = llm.Close()
			return closeStore()
		},
	}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if a.closer != nil {
		_ = a.closer()
	}
	return err
}
