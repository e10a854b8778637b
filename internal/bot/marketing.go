package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/branda-app/branda/internal/domain"
	"github.com/branda-app/branda/internal/llm"
	"github.com/rs/zerolog"
)

const marketingPrompt = `Tu es un conseiller marketing pour une petite entreprise.
Propose des actions concrètes, peu coûteuses et adaptées au contexte local.
Réponds en français, en 3 à 5 phrases maximum.`

// MarketingBot produces marketing advice grounded in recent sales data
type MarketingBot struct {
	router       *llm.Router
	providerName string
	sales        domain.SaleRepository
	logger       zerolog.Logger
}

// NewMarketingBot creates the marketing handler
func NewMarketingBot(router *llm.Router, providerName string, sales domain.SaleRepository, logger zerolog.Logger) *MarketingBot {
	return &MarketingBot{
		router:       router,
		providerName: providerName,
		sales:        sales,
		logger:       logger.With().Str("bot", "marketing").Logger(),
	}
}

// Handle generates advice with the month's sales as context
func (b *MarketingBot) Handle(ctx context.Context, req Request) (string, error) {
	provider, err := b.router.GetProvider(b.providerName)
	if err != nil {
		return "", fmt.Errorf("no llm provider: %w", err)
	}

	period := ParsePeriod("ce mois", time.Now())
	contextInfo := "Aucune donnée de vente disponible."
	if sales, err := b.sales.ListByPeriod(ctx, period.Start, period.End); err == nil && len(sales) > 0 {
		var total float64
		for _, sale := range sales {
			total += sale.TotalAmount
		}
		contextInfo = fmt.Sprintf("Ce mois-ci : %d vente(s) pour %.2f FCFA.", len(sales), total)
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: marketingPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Contexte de l'activité : %s\n\nQuestion : %s", contextInfo, req.Message)},
	}

	reply, err := provider.Complete(ctx, messages, llm.Options{Temperature: 0.7, MaxTokens: 512})
	if err != nil {
		return "", fmt.Errorf("marketing generation failed: %w", err)
	}
	return strings.TrimSpace(reply), nil
}
