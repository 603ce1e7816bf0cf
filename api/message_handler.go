package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const notifyTimeout = 10 * time.Second

type messageHandler struct {
	responder   Responder
	logger      zerolog.Logger
	messageRepo *database.MessageRepo
	notifier    services.ContactNotifier
}

func newMessageHandler(messageRepo *database.MessageRepo, notifier services.ContactNotifier) messageHandler {
	logger := log.With().Str("handlerName", "messageHandler").Logger()

	return messageHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		messageRepo: messageRepo,
		notifier:    notifier,
	}
}

// getAllMessages retrieves all contact messages
// @Summary Get all messages
// @Tags Messages
// @Produce json
// @Success 200 {array} models.Message "Messages, newest first"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching messages"
// @Router /api/messages [get]
func (h messageHandler) getAllMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := h.messageRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "messages", err))
			return
		}

		h.responder.WriteJSON(w, messages)
	}
}

// getMessage retrieves a single message
// @Summary Get message
// @Tags Messages
// @Produce json
// @Param id path string true "Message ID" format(uuid)
// @Success 200 {object} models.Message "Message"
// @Failure 404 {object} ErrorResponse "Not Found - Message not found"
// @Router /api/messages/{id} [get]
func (h messageHandler) getMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Message")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message, err := h.messageRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "Message", err))
			return
		}

		h.responder.WriteJSON(w, message)
	}
}

// createMessage stores a contact form submission and notifies the owner
// @Summary Create message
// @Tags Messages
// @Accept json
// @Produce json
// @Param message body MessageRequest true "Contact message"
// @Success 201 {object} models.Message "Stored message"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid message data"
// @Router /api/messages [post]
func (h messageHandler) createMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MessageRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if err := validateStruct(req, nil); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message := models.Message{
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
			Status:  models.MessageStatus(req.Status),
		}
		if err := h.messageRepo.Add(r.Context(), &message); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "Message", err))
			return
		}

		h.notify(r.Context(), &message)
		h.responder.WriteJSONStatus(w, http.StatusCreated, message)
	}
}

// notify is best effort; the message is already stored
func (h messageHandler) notify(ctx context.Context, message *models.Message) {
	if h.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err := h.notifier.NotifyContact(ctx, message); err != nil {
		h.logger.Error().Err(err).Str("messageID", message.ID.String()).Msg("failed to notify owner of new message")
	}
}

// updateMessageStatus marks a message unread, read or replied
// @Summary Update message status
// @Tags Messages
// @Accept json
// @Produce json
// @Param id path string true "Message ID" format(uuid)
// @Param status body MessageStatusRequest true "New status"
// @Success 200 {object} models.Message "Updated message"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid status"
// @Failure 404 {object} ErrorResponse "Not Found - Message not found"
// @Router /api/messages/{id}/status [patch]
func (h messageHandler) updateMessageStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Message")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req MessageStatusRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateStruct(req, nil); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message, err := h.messageRepo.UpdateStatus(r.Context(), id, models.MessageStatus(req.Status))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "Message", err))
			return
		}

		if subject, ok := ctxGetAdminSubject(r.Context()); ok {
			h.logger.Info().Str("admin", subject).Str("messageID", id.String()).Str("status", req.Status).Msg("message status changed")
		}

		h.responder.WriteJSON(w, message)
	}
}

// deleteMessage deletes a message by ID
// @Summary Delete message
// @Tags Messages
// @Produce json
// @Param id path string true "Message ID" format(uuid)
// @Success 200 {object} DeleteResponse "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Message not found"
// @Router /api/messages/{id} [delete]
func (h messageHandler) deleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Message")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.messageRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "Message", err))
			return
		}

		h.responder.WriteJSON(w, deleted("Message"))
	}
}
