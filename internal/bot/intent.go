package bot

import (
	"context"
	"strings"

	"github.com/branda-app/branda/internal/domain"
	"github.com/branda-app/branda/internal/llm"
	"github.com/rs/zerolog"
)

// Intent identifies which specialist bot answers a message
type Intent string

const (
	IntentAccounting   Intent = "accounting"
	IntentBusinessData Intent = "business-data"
	IntentMarketing    Intent = "marketing"
	IntentHR           Intent = "hr"
	IntentInfo         Intent = "info"
	IntentFallback     Intent = "fallback"
)

// Intents lists every routable intent. The set is closed; anything the
// classifier produces outside of it collapses to fallback.
var Intents = []Intent{
	IntentAccounting,
	IntentBusinessData,
	IntentMarketing,
	IntentHR,
	IntentInfo,
	IntentFallback,
}

// MapIntent normalizes a raw classifier label to an Intent. Total over all
// string inputs: any label outside the known set maps to fallback.
func MapIntent(label string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(label))
	normalized = strings.Trim(normalized, `"'.`)

	switch normalized {
	case "accounting", "comptable", "comptabilite", "comptabilité", "finance", "finances":
		return IntentAccounting
	case "business-data", "business_data", "businessdata", "data", "donnees", "données", "ventes", "sales":
		return IntentBusinessData
	case "marketing", "communication", "publicite", "publicité":
		return IntentMarketing
	case "hr", "rh", "ressources humaines", "human resources", "personnel":
		return IntentHR
	case "info", "infos", "information", "aide", "help":
		return IntentInfo
	default:
		return IntentFallback
	}
}

const classifyPrompt = `Tu es un routeur d'intentions pour un assistant de gestion de petite entreprise.
Classe le message de l'utilisateur dans exactement une de ces catégories :
- accounting : finances, chiffre d'affaires, dépenses, bénéfices, comptabilité
- business-data : produits, stocks, ventes, clients, statistiques d'activité
- marketing : promotion, publicité, communication, idées pour attirer des clients
- hr : employés, plannings, horaires, évaluations du personnel
- info : questions sur l'assistant lui-même et ses capacités
- fallback : tout le reste

Réponds avec le nom de la catégorie uniquement, sans autre texte.`

// Classifier routes a message to an intent using an LLM
type Classifier struct {
	router       *llm.Router
	providerName string
	logger       zerolog.Logger
}

// NewClassifier creates a new intent classifier
func NewClassifier(router *llm.Router, providerName string, logger zerolog.Logger) *Classifier {
	return &Classifier{
		router:       router,
		providerName: providerName,
		logger:       logger.With().Str("component", "intent_classifier").Logger(),
	}
}

// Classify returns the intent for a message. Any classification failure
// degrades to fallback so a chat turn never dies on routing.
func (c *Classifier) Classify(ctx context.Context, message string, history []domain.Message) Intent {
	provider, err := c.router.GetProvider(c.providerName)
	if err != nil {
		c.logger.Warn().Err(err).Msg("no llm provider for classification")
		return IntentFallback
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: classifyPrompt},
	}
	// A few recent turns help disambiguate short follow-ups
	for _, msg := range lastMessages(history, 4) {
		messages = append(messages, llm.Message{Role: string(msg.Role), Content: msg.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})

	label, err := provider.Complete(ctx, messages, llm.Options{Temperature: 0, MaxTokens: 16})
	if err != nil {
		c.logger.Warn().Err(err).Msg("intent classification failed")
		return IntentFallback
	}

	intent := MapIntent(label)
	c.logger.Debug().Str("label", label).Str("intent", string(intent)).Msg("message classified")
	return intent
}

func lastMessages(history []domain.Message, n int) []domain.Message {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
