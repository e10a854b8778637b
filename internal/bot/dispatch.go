package bot

import (
	"context"

	"github.com/branda-app/branda/internal/domain"
	"github.com/rs/zerolog"
)

// ApologyMessage is the static reply returned whenever a handler fails.
// The user never sees a raw error.
const ApologyMessage = "Désolé, je rencontre un problème technique. Veuillez réessayer dans quelques instants."

// Request carries everything a handler needs to answer one message
type Request struct {
	User    domain.UserContext
	Message string
	History []domain.Message
}

// Handler answers messages for one intent
type Handler interface {
	Handle(ctx context.Context, req Request) (string, error)
}

// Dispatcher routes a classified message to its handler. Dispatch is total:
// every intent resolves to a handler and every handler error resolves to
// the apology message.
type Dispatcher struct {
	handlers map[Intent]Handler
	fallback Handler
	logger   zerolog.Logger
}

// NewDispatcher creates a dispatcher. The fallback handler answers both the
// fallback intent and any intent without a registered handler.
func NewDispatcher(fallback Handler, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[Intent]Handler),
		fallback: fallback,
		logger:   logger.With().Str("component", "bot_dispatcher").Logger(),
	}
}

// Register binds a handler to an intent
func (d *Dispatcher) Register(intent Intent, handler Handler) {
	d.handlers[intent] = handler
}

// Dispatch answers a request. Never returns an error; failures become the
// apology message.
func (d *Dispatcher) Dispatch(ctx context.Context, intent Intent, req Request) string {
	handler, ok := d.handlers[intent]
	if !ok {
		handler = d.fallback
	}

	reply, err := handler.Handle(ctx, req)
	if err != nil {
		d.logger.Error().Err(err).
			Str("intent", string(intent)).
			Str("user_id", req.User.UserID.String()).
			Msg("bot handler failed")
		return ApologyMessage
	}
	return reply
}
