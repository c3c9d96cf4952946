package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/outreach-pipeline/internal/db"
	"github.com/jonathan/outreach-pipeline/internal/llm"
	"github.com/jonathan/outreach-pipeline/internal/outreach"
	"github.com/jonathan/outreach-pipeline/internal/store"
)

// openStore opens the Postgres store when a database URL is configured and
// falls back to the in-memory store otherwise. In-memory state only lives
// for the duration of one process, which the stage commands warn about.
func openStore(ctx context.Context, databaseURL string, warnEphemeral bool) (store.Store, error) {
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		if warnEphemeral {
			fmt.Fprintln(os.Stderr, "Warning: no DATABASE_URL configured; using in-memory store, state is lost on exit")
		}
		return store.NewMemory(), nil
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// newService builds the tool service, attaching an LLM client when an API
// key is available so AI enrichment mode works.
func newService(ctx context.Context, st store.Store, apiKey string) (*outreach.Service, func(), error) {
	svc := outreach.New(st)
	cleanup := func() {}

	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey != "" {
		client, err := llm.NewGeminiClient(ctx, apiKey, llm.DefaultModel)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		svc.WithLLMClient(client)
		cleanup = func() { _ = client.Close() }
	}

	return svc, cleanup, nil
}
