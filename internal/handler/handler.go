package handler

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg-relay/internal/service"
)

// Handler wires telego updates onto the relay core. All state lives in
// the injected registry and pending store; the handler itself is
// stateless glue.
type Handler struct {
	bot        *telego.Bot
	transport  service.Transport
	registry   *service.Registry
	pending    *service.PendingStore
	router     *service.Router
	dispatcher *service.Dispatcher
	controls   *service.Controls
}

// NewHandler creates the update handler.
func NewHandler(
	bot *telego.Bot,
	transport service.Transport,
	registry *service.Registry,
	pending *service.PendingStore,
	router *service.Router,
	dispatcher *service.Dispatcher,
	controls *service.Controls,
) *Handler {
	return &Handler{
		bot:        bot,
		transport:  transport,
		registry:   registry,
		pending:    pending,
		router:     router,
		dispatcher: dispatcher,
		controls:   controls,
	}
}

// Register attaches all update handlers to the bot handler.
func (h *Handler) Register(bh *th.BotHandler) {
	bh.HandleMessage(h.onMessage)

	bh.Handle(h.onMyChatMember, th.AnyMyChatMember())

	bh.HandleCallbackQuery(h.onCallbackQuery)
}
