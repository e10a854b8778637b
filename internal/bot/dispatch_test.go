package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubHandler struct {
	reply string
	err   error
	calls int
}

func (h *stubHandler) Handle(ctx context.Context, req Request) (string, error) {
	h.calls++
	return h.reply, h.err
}

func TestDispatcher_RoutesToRegisteredHandler(t *testing.T) {
	fallback := &stubHandler{reply: "fallback reply"}
	accounting := &stubHandler{reply: "accounting reply"}

	d := NewDispatcher(fallback, zerolog.Nop())
	d.Register(IntentAccounting, accounting)

	got := d.Dispatch(context.Background(), IntentAccounting, Request{Message: "CA du jour ?"})
	assert.Equal(t, "accounting reply", got)
	assert.Equal(t, 1, accounting.calls)
	assert.Equal(t, 0, fallback.calls)
}

func TestDispatcher_UnregisteredIntentFallsBack(t *testing.T) {
	fallback := &stubHandler{reply: "fallback reply"}
	d := NewDispatcher(fallback, zerolog.Nop())

	got := d.Dispatch(context.Background(), IntentMarketing, Request{})
	assert.Equal(t, "fallback reply", got)
	assert.Equal(t, 1, fallback.calls)
}

func TestDispatcher_HandlerErrorBecomesApology(t *testing.T) {
	fallback := &stubHandler{reply: "fallback reply"}
	failing := &stubHandler{err: errors.New("db down")}

	d := NewDispatcher(fallback, zerolog.Nop())
	d.Register(IntentHR, failing)

	got := d.Dispatch(context.Background(), IntentHR, Request{})
	assert.Equal(t, ApologyMessage, got)
}

func TestDispatcher_TotalOverAllIntents(t *testing.T) {
	fallback := &stubHandler{reply: "fallback reply"}
	d := NewDispatcher(fallback, zerolog.Nop())

	// No handler registered anywhere: every intent still resolves
	for _, intent := range Intents {
		got := d.Dispatch(context.Background(), intent, Request{})
		assert.Equal(t, "fallback reply", got, "intent %s", intent)
	}

	// Even an intent value outside the known set resolves
	got := d.Dispatch(context.Background(), Intent("made-up"), Request{})
	assert.Equal(t, "fallback reply", got)
}
