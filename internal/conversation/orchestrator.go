// Package conversation owns the lifecycle of one chat conversation: sending
// turns, folding backend replies and their action batches into UI state, and
// loading stored transcripts.
package conversation

import (
	"github.com/google/uuid"

	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/actions"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/logging"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"
)

const (
	apologyMessage = "I'm sorry, I ran into a problem reaching the server. Please try again."
	sendErrorText  = "Failed to send message"
)

// Reply is the backend's answer to one conversation turn.
type Reply struct {
	Message string           `json:"message"`
	Actions []actions.Action `json:"actions,omitempty"`
}

// Orchestrator owns the canonical conversation state and routes every
// backend action through the forecast sub-handler first, then the generic
// dispatcher. All methods run on the single UI goroutine.
//
// Turns are guarded by a generation counter: a reply or failure for a
// superseded turn is dropped instead of clobbering newer state.
type Orchestrator struct {
	state      *actions.State
	ledger     *actions.Ledger
	dispatcher *actions.Dispatcher
	forecast   *ForecastHandler
	log        logging.Logger
	newID      func() string
	generation int
}

func New(log logging.Logger) *Orchestrator {
	if log == nil {
		log = logging.Nop()
	}
	ledger := actions.NewLedger()
	return &Orchestrator{
		state:      actions.NewState(),
		ledger:     ledger,
		dispatcher: actions.NewDispatcher(ledger, log),
		forecast:   NewForecastHandler(log),
		log:        log,
		newID:      uuid.NewString,
	}
}

func (o *Orchestrator) State() *actions.State {
	return o.state
}

func (o *Orchestrator) Forecast() *ForecastHandler {
	return o.forecast
}

func (o *Orchestrator) Dispatcher() *actions.Dispatcher {
	return o.dispatcher
}

// BeginTurn appends the user message, resets every per-turn display surface
// and marks the turn in flight. It returns the generation token the caller
// must hand back to ApplyReply or FailTurn. The dedup ledger survives turns;
// only Clear and LoadTranscript reset it.
func (o *Orchestrator) BeginTurn(text string) (*types.Message, int) {
	msg := &types.Message{
		ID:      o.newID(),
		Role:    types.MessageRoleUser,
		Content: text,
	}
	o.state.AppendMessage(msg)
	o.state.Loading = true
	o.state.Error = ""
	o.state.ResetTurnSurfaces()
	o.forecast.Clear()
	o.generation++
	return msg, o.generation
}

// History returns the transcript to send along with a new query.
func (o *Orchestrator) History() []*types.Message {
	return o.state.Messages
}

// ApplyReply folds one backend reply into state: the assistant message is
// appended, then each action is offered to the forecast sub-handler and, if
// declined, dispatched generically. It returns how many actions applied.
// Stale replies (superseded generation) are dropped whole.
func (o *Orchestrator) ApplyReply(generation int, reply Reply) int {
	if generation != o.generation {
		o.log.Debug("dropping stale reply",
			logging.F("generation", generation),
			logging.F("current", o.generation))
		return 0
	}
	o.state.Loading = false
	o.appendAssistant(reply.Message)

	applied := 0
	for _, action := range reply.Actions {
		if o.forecast.Handle(action) {
			o.state.Forecast = o.forecast.Current()
			applied++
			continue
		}
		if o.dispatcher.Dispatch(action, o.state, o.appendAssistant) {
			applied++
		}
	}
	return applied
}

// FailTurn converts a transport or parse failure into a user-visible
// apology. The already-appended user message is not rolled back and nothing
// retries automatically.
func (o *Orchestrator) FailTurn(generation int, err error) {
	if generation != o.generation {
		return
	}
	if err != nil {
		o.log.Error("conversation turn failed", logging.F("error", err.Error()))
	}
	o.state.Loading = false
	o.state.Error = sendErrorText
	o.appendAssistant(apologyMessage)
}

// Clear starts a new conversation: every per-turn surface, the dedup ledger
// and the forecast slice reset. Messages stay visible until a new
// conversation's transcript is loaded in.
func (o *Orchestrator) Clear() {
	o.state.ResetTurnSurfaces()
	o.state.Loading = false
	o.state.Error = ""
	o.ledger.Reset()
	o.forecast.Clear()
	o.generation++
}

// LoadTranscript replaces the message history wholesale from a stored
// conversation. Messages lacking an id get a synthesized local one. Actions
// are not persisted server-side, so nothing is replayed.
func (o *Orchestrator) LoadTranscript(messages []*types.Message) {
	o.Clear()
	loaded := make([]*types.Message, 0, len(messages))
	for _, msg := range messages {
		if msg == nil {
			continue
		}
		copied := *msg
		if copied.ID == "" {
			copied.ID = o.newID()
		}
		loaded = append(loaded, &copied)
	}
	o.state.Messages = loaded
}

func (o *Orchestrator) appendAssistant(content string) {
	o.state.AppendMessage(&types.Message{
		ID:      o.newID(),
		Role:    types.MessageRoleAssistant,
		Content: content,
	})
}
