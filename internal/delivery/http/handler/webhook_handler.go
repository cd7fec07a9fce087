package handler

import (
	"encoding/json"
	"net/http"

	"clinic-whatsapp-scheduler/internal/delivery/dto"
	"clinic-whatsapp-scheduler/internal/usecase"
	"clinic-whatsapp-scheduler/pkg/response"

	"github.com/sirupsen/logrus"
)

type WebhookHandler struct {
	conversationUsecase usecase.ConversationUsecase
	verifyToken         string
	log                 *logrus.Logger
}

func NewWebhookHandler(conversationUsecase usecase.ConversationUsecase, verifyToken string, log *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{
		conversationUsecase: conversationUsecase,
		verifyToken:         verifyToken,
		log:                 log,
	}
}

// Verify handles the Meta webhook verification handshake
// @Summary Verify webhook subscription
// @Description Echoes hub.challenge when the verify token matches
// @Tags Webhook
// @Produce plain
// @Success 200 {string} string
// @Failure 403 {string} string
// @Router /whatsapp/webhook [get]
func (h *WebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	mode := query.Get("hub.mode")
	token := query.Get("hub.verify_token")
	challenge := query.Get("hub.challenge")

	if mode == "subscribe" && h.verifyToken != "" && token == h.verifyToken {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	http.Error(w, "Forbidden", http.StatusForbidden)
}

// Receive handles inbound WhatsApp messages
// @Summary Receive webhook delivery
// @Description Dispatches inbound text messages to the booking conversation
// @Tags Webhook
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /whatsapp/webhook [post]
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var payload dto.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		// Malformed deliveries are acknowledged so the provider does not
		// retry them forever.
		response.Success(w, http.StatusOK, "Webhook processed", nil)
		return
	}

	// Process sequentially to preserve delivery order within the batch.
	for _, message := range payload.IncomingMessages() {
		if message.From == "" {
			continue
		}

		if message.IsText() {
			if err := h.conversationUsecase.HandleMessage(r.Context(), message.From, message.Text.Body); err != nil {
				h.log.Warnf("Failed to handle message from %s: %+v", message.From, err)
			}
			continue
		}

		if err := h.conversationUsecase.HandleUnsupported(r.Context(), message.From); err != nil {
			h.log.Warnf("Failed to handle unsupported message from %s: %+v", message.From, err)
		}
	}

	response.Success(w, http.StatusOK, "Webhook processed", nil)
}
