package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// timestampLayout is ISO-8601 in UTC with millisecond precision
const timestampLayout = "2006-01-02T15:04:05.000Z"

// ContextBuilder produces the portfolio snapshot for one chat request
type ContextBuilder interface {
	Build(ctx context.Context) services.PortfolioContext
}

// Completer sends the assembled prompt and the visitor message upstream
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

type chatHandler struct {
	responder  Responder
	logger     zerolog.Logger
	aggregator ContextBuilder
	completer  Completer
	prompt     services.PromptOptions
	now        func() time.Time
}

func newChatHandler(aggregator ContextBuilder, completer Completer, prompt services.PromptOptions) chatHandler {
	logger := log.With().Str("handlerName", "chatHandler").Logger()

	return chatHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		aggregator: aggregator,
		completer:  completer,
		prompt:     prompt,
		now:        time.Now,
	}
}

var chatMessages = messageOverrides{
	"message.required": "Message is required",
	"message.min":      "Message cannot be empty",
	"message.max":      "Message cannot exceed 1000 characters",
}

// chat answers a visitor question about the portfolio
// @Summary Chat with the portfolio assistant
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Visitor message"
// @Success 200 {object} ChatResponse "Assistant reply"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid message"
// @Failure 401 {object} ErrorResponse "Unauthorized - Invalid upstream API key"
// @Failure 402 {object} ErrorResponse "Payment Required - Upstream quota exceeded"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Completion failed"
// @Router /api/chat [post]
func (h chatHandler) chat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := validateStruct(req, chatMessages); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if h.completer == nil || h.aggregator == nil {
			h.responder.WriteError(w, errs.NewServiceUnavailableError("Chat assistant"))
			return
		}

		portfolio := h.aggregator.Build(r.Context())
		systemPrompt := services.BuildSystemPrompt(portfolio, h.prompt)

		reply, err := h.completer.Complete(r.Context(), systemPrompt, strings.TrimSpace(*req.Message))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ChatResponse{
			Response:  reply,
			Timestamp: h.now().UTC().Format(timestampLayout),
		})
	}
}

// chatHistory is a placeholder; conversations are not persisted
// @Summary Get chat history
// @Tags Chat
// @Produce json
// @Success 200 {object} ChatHistoryResponse "Empty history"
// @Router /api/chat/history [get]
func (h chatHandler) chatHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, ChatHistoryResponse{
			Message: "Chat history feature not implemented yet",
			History: []any{},
		})
	}
}
