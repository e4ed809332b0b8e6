package app

import (
	"context"
	"fmt"
	"log"

	"incidentdesk/internal/config"
	"incidentdesk/internal/llmclient"
	incidentrepo "incidentdesk/internal/repository/incident"
)

func noopClose() error { return nil }

// initIncidentStore picks the persistence backend: Firestore when a
// project is configured, postgres when DATABASE_URL is set, otherwise
// an in-memory store for local runs.
func initIncidentStore(ctx context.Context, cfg *config.Config) (incidentrepo.Store, func() error, error) {
	if cfg.Firestore.ProjectID != "" {
		store, err := incidentrepo.NewFirestoreStore(ctx, cfg.Firestore.ProjectID, cfg.Firestore.Collection)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize firestore store: %w", err)
		}
		log.Printf("incident store: firestore project=%s collection=%s", cfg.Firestore.ProjectID, cfg.Firestore.Collection)
		return store, store.Close, nil
	}
	if cfg.DatabaseURL != "" {
		store, err := incidentrepo.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres store: %w", err)
		}
		log.Printf("incident store: postgres")
		return store, store.Close, nil
	}
	log.Printf("incident store: using in-memory fallback (no firestore project or database url configured)")
	return incidentrepo.NewMemoryStore(), noopClose, nil
}

func initLLMClient(ctx context.Context, cfg *config.Config) (llmclient.Client, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		cli, err := llmclient.NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
		}
		log.Printf("llm client: %s", cli.Name())
		return cli, nil
	default:
		cli, err := llmclient.NewOpenAIClient(cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize openai client: %w", err)
		}
		log.Printf("llm client: %s", cli.Name())
		return cli, nil
	}
}
