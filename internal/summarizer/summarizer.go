// Package summarizer produces a short technical summary of an incident
// description by delegating to an external text-generation model.
package summarizer

import (
	"context"
	"fmt"

	"incidentdesk/internal/llmclient"
)

const systemInstruction = "Respondeme en español y dame la descripción técnica de la incidencia"

const promptTemplate = `
Analiza la siguiente descripción de incidencia y solo dame un pequeño resumen técnico en base a esta descripción

Descripción:
%q
`

// Summarizer turns a free-text description into a concise technical summary.
type Summarizer interface {
	Summarize(ctx context.Context, description string) (string, error)
}

// Service is the LLM-backed Summarizer. Stateless; one outbound call
// per Summarize.
type Service struct {
	llm llmclient.Client
}

func New(llm llmclient.Client) *Service {
	return &Service{llm: llm}
}

// Summarize returns the model's answer verbatim, with no post-processing.
func (s *Service) Summarize(ctx context.Context, description string) (string, error) {
	prompt := fmt.Sprintf(promptTemplate, description)
	out, err := s.llm.Complete(ctx, systemInstruction, prompt)
	if err != nil {
		return "", fmt.Errorf("summarize incident: %w", err)
	}
	return out, nil
}
