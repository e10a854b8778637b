package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/branda-app/branda/internal/domain"
	"github.com/branda-app/branda/internal/llm"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const summaryPrompt = `Tu es un assistant qui résume des conversations entre un gérant de petite entreprise et son assistant de gestion.
Analyse la conversation et réponds UNIQUEMENT avec un objet JSON de cette forme exacte :
{"summary": "résumé en 2 ou 3 phrases", "keyPoints": ["point clé 1", "point clé 2"], "entities": [{"type": "produit", "value": "nom"}]}
Le résumé et les points clés sont en français. N'ajoute aucun texte hors du JSON.`

// degradedSummary is stored when every extraction strategy fails. The
// summarization job still succeeds so it is not retried forever.
const degradedSummary = "Résumé indisponible pour cette conversation."

var (
	summaryFieldRe = regexp.MustCompile(`"summary"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	keyPointsRe    = regexp.MustCompile(`(?s)"keyPoints"\s*:\s*\[(.*?)\]`)
	quotedStringRe = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)
)

// SummaryService condenses conversations into structured summaries
type SummaryService struct {
	router       *llm.Router
	providerName string
	convRepo     domain.ConversationRepository
	summaryRepo  domain.SummaryRepository
	logger       zerolog.Logger
}

// NewSummaryService creates a new summary service
func NewSummaryService(
	router *llm.Router,
	providerName string,
	convRepo domain.ConversationRepository,
	summaryRepo domain.SummaryRepository,
	logger zerolog.Logger,
) *SummaryService {
	return &SummaryService{
		router:       router,
		providerName: providerName,
		convRepo:     convRepo,
		summaryRepo:  summaryRepo,
		logger:       logger.With().Str("service", "summary").Logger(),
	}
}

// GenerateAndSave summarizes a conversation and upserts the result. A
// conversation with no messages is an error, and so is an unreachable
// model, so the job retries; an unparseable model output is not, it
// degrades instead.
func (s *SummaryService) GenerateAndSave(ctx context.Context, userID, conversationID uuid.UUID) (*domain.ConversationSummary, error) {
	conv, err := s.convRepo.Get(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if len(conv.Messages) == 0 {
		return nil, domain.NewValidationError("conversation %s has no messages to summarize", conversationID)
	}

	content, err := s.summarize(ctx, conv.Messages)
	if err != nil {
		return nil, err
	}

	summary := &domain.ConversationSummary{
		TenantID:             conv.TenantID,
		UserID:               userID,
		ConversationID:       conversationID,
		Summary:              content.Summary,
		KeyPoints:            content.KeyPoints,
		Entities:             content.Entities,
		LastMessageTimestamp: conv.Messages[len(conv.Messages)-1].Timestamp,
	}
	if err := s.summaryRepo.Upsert(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to store summary: %w", err)
	}
	return summary, nil
}

// GetByConversation returns the stored summary for one conversation
func (s *SummaryService) GetByConversation(ctx context.Context, conversationID uuid.UUID) (*domain.ConversationSummary, error) {
	return s.summaryRepo.GetByConversation(ctx, conversationID)
}

// ListByPeriod returns summaries whose last message falls in the window
func (s *SummaryService) ListByPeriod(ctx context.Context, start, end time.Time) ([]domain.ConversationSummary, error) {
	return s.summaryRepo.ListByPeriod(ctx, start, end)
}

// summarize runs the model and walks the extraction ladder: strict JSON
// parse, then regex field extraction, then the degraded placeholder. The
// ladder only applies to model output; a model that cannot be reached at
// all is an infrastructure failure and propagates so the job retries.
func (s *SummaryService) summarize(ctx context.Context, messages []domain.Message) (domain.SummaryContent, error) {
	raw, err := s.complete(ctx, messages)
	if err != nil {
		s.logger.Warn().Err(err).Msg("summary generation failed")
		return domain.SummaryContent{}, domain.NewUpstreamError("llm", err)
	}

	if content, ok := parseSummaryJSON(raw); ok {
		return content, nil
	}
	if content, ok := extractSummaryFields(raw); ok {
		s.logger.Warn().Msg("summary JSON malformed, recovered fields by pattern")
		return content, nil
	}

	s.logger.Warn().Str("raw", truncate(raw, 200)).Msg("summary output unusable, storing placeholder")
	return degradedContent(), nil
}

func (s *SummaryService) complete(ctx context.Context, messages []domain.Message) (string, error) {
	provider, err := s.router.GetProvider(s.providerName)
	if err != nil {
		return "", err
	}

	var transcript strings.Builder
	for _, msg := range messages {
		fmt.Fprintf(&transcript, "%s: %s\n", msg.Role, msg.Content)
	}

	return provider.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: summaryPrompt},
		{Role: llm.RoleUser, Content: transcript.String()},
	}, llm.Options{Temperature: 0.2, MaxTokens: 1024, JSONMode: true})
}

func parseSummaryJSON(raw string) (domain.SummaryContent, bool) {
	trimmed := strings.TrimSpace(raw)
	// Models sometimes wrap the object in a markdown fence
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var content domain.SummaryContent
	if err := json.Unmarshal([]byte(trimmed), &content); err != nil {
		return domain.SummaryContent{}, false
	}
	if content.Summary == "" {
		return domain.SummaryContent{}, false
	}
	return content, true
}

func extractSummaryFields(raw string) (domain.SummaryContent, bool) {
	match := summaryFieldRe.FindStringSubmatch(raw)
	if match == nil {
		return domain.SummaryContent{}, false
	}

	content := domain.SummaryContent{Summary: unescapeJSONString(match[1])}

	if kp := keyPointsRe.FindStringSubmatch(raw); kp != nil {
		for _, quoted := range quotedStringRe.FindAllStringSubmatch(kp[1], -1) {
			content.KeyPoints = append(content.KeyPoints, unescapeJSONString(quoted[1]))
		}
	}
	return content, true
}

func unescapeJSONString(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return s
	}
	return out
}

func degradedContent() domain.SummaryContent {
	return domain.SummaryContent{
		Summary:   degradedSummary,
		KeyPoints: []string{},
		Entities:  []domain.SummaryEntity{},
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
