package bot

import (
	"context"

	"github.com/rs/zerolog"
)

const infoMessage = `Je suis Branda, votre assistant de gestion d'entreprise. Je peux vous aider à :
- suivre votre chiffre d'affaires, vos dépenses et vos bénéfices,
- consulter vos ventes, vos produits et votre stock,
- trouver des idées marketing pour développer votre activité,
- gérer vos employés, leurs plannings et leurs évaluations.

Posez-moi simplement votre question !`

// InfoBot describes the assistant's capabilities
type InfoBot struct {
	logger zerolog.Logger
}

// NewInfoBot creates the info handler
func NewInfoBot(logger zerolog.Logger) *InfoBot {
	return &InfoBot{logger: logger.With().Str("bot", "info").Logger()}
}

// Handle returns the static capability overview
func (b *InfoBot) Handle(ctx context.Context, req Request) (string, error) {
	return infoMessage, nil
}
