package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/branda-app/branda/internal/llm"
	"github.com/rs/zerolog"
)

const fallbackPrompt = `Tu es Branda, un assistant amical pour gérants de petites entreprises.
Réponds en français, de façon brève et utile. Si la question sort de ton domaine,
dis-le poliment et rappelle ce que tu sais faire (finances, ventes, marketing, employés).`

// FallbackBot answers anything the specialist bots do not cover
type FallbackBot struct {
	router       *llm.Router
	providerName string
	logger       zerolog.Logger
}

// NewFallbackBot creates the fallback handler
func NewFallbackBot(router *llm.Router, providerName string, logger zerolog.Logger) *FallbackBot {
	return &FallbackBot{
		router:       router,
		providerName: providerName,
		logger:       logger.With().Str("bot", "fallback").Logger(),
	}
}

// Handle produces a general conversational reply
func (b *FallbackBot) Handle(ctx context.Context, req Request) (string, error) {
	provider, err := b.router.GetProvider(b.providerName)
	if err != nil {
		return "", fmt.Errorf("no llm provider: %w", err)
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: fallbackPrompt},
	}
	for _, msg := range lastMessages(req.History, 6) {
		messages = append(messages, llm.Message{Role: string(msg.Role), Content: msg.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: req.Message})

	reply, err := provider.Complete(ctx, messages, llm.Options{Temperature: 0.7, MaxTokens: 512})
	if err != nil {
		return "", fmt.Errorf("fallback generation failed: %w", err)
	}
	return strings.TrimSpace(reply), nil
}
