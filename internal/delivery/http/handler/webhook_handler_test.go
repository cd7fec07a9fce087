package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type conversationCall struct {
	phone string
	text  string
}

// fakeConversationUsecase records which messages were dispatched to the
// conversation layer.
type fakeConversationUsecase struct {
	handled     []conversationCall
	unsupported []string
	err         error
}

func (f *fakeConversationUsecase) HandleMessage(_ context.Context, phone, text string) error {
	f.handled = append(f.handled, conversationCall{phone: phone, text: text})
	return f.err
}

func (f *fakeConversationUsecase) HandleUnsupported(_ context.Context, phone string) error {
	f.unsupported = append(f.unsupported, phone)
	return f.err
}

func newWebhookHandler(conversation *fakeConversationUsecase, verifyToken string) *WebhookHandler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewWebhookHandler(conversation, verifyToken, log)
}

func TestVerifyEchoesChallenge(t *testing.T) {
	h := newWebhookHandler(&fakeConversationUsecase{}, "verify-me")

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()
	h.Verify(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12345", rec.Body.String())
}

func TestVerifyRejectsBadToken(t *testing.T) {
	h := newWebhookHandler(&fakeConversationUsecase{}, "verify-me")

	cases := map[string]string{
		"wrong token":  "/api/v1/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=nope&hub.challenge=12345",
		"wrong mode":   "/api/v1/whatsapp/webhook?hub.mode=unsubscribe&hub.verify_token=verify-me&hub.challenge=12345",
		"no params":    "/api/v1/whatsapp/webhook",
		"empty values": "/api/v1/whatsapp/webhook?hub.mode=&hub.verify_token=&hub.challenge=",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, target, nil)
			rec := httptest.NewRecorder()
			h.Verify(rec, req)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestVerifyRejectsWhenTokenUnconfigured(t *testing.T) {
	h := newWebhookHandler(&fakeConversationUsecase{}, "")

	// With no configured token even an empty incoming token must not match.
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()
	h.Verify(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestReceiveDispatchesTextMessages(t *testing.T) {
	conversation := &fakeConversationUsecase{}
	h := newWebhookHandler(conversation, "verify-me")

	payload := `{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [
						{"from": "5511999990000", "type": "text", "text": {"body": "oi"}},
						{"from": "5511888880000", "type": "text", "text": {"body": "2025-12-30"}}
					]
				}
			}]
		}]
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/whatsapp/webhook", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Receive(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, conversation.handled, 2)
	assert.Equal(t, conversationCall{phone: "5511999990000", text: "oi"}, conversation.handled[0])
	assert.Equal(t, conversationCall{phone: "5511888880000", text: "2025-12-30"}, conversation.handled[1])
	assert.Empty(t, conversation.unsupported)
}

func TestReceiveRoutesNonTextToUnsupported(t *testing.T) {
	conversation := &fakeConversationUsecase{}
	h := newWebhookHandler(conversation, "verify-me")

	payload := `{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [
						{"from": "5511999990000", "type": "image"},
						{"from": "", "type": "text", "text": {"body": "ignored"}}
					]
				}
			}]
		}]
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/whatsapp/webhook", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Receive(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, conversation.handled)
	assert.Equal(t, []string{"5511999990000"}, conversation.unsupported)
}

func TestReceiveAcknowledgesMalformedPayload(t *testing.T) {
	conversation := &fakeConversationUsecase{}
	h := newWebhookHandler(conversation, "verify-me")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/whatsapp/webhook", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Receive(rec, req)

	// Always 200 so the provider does not retry forever.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, conversation.handled)
}

func TestReceiveAcknowledgesStatusOnlyDelivery(t *testing.T) {
	conversation := &fakeConversationUsecase{}
	h := newWebhookHandler(conversation, "verify-me")

	// Deliveries with no messages array (e.g. status updates) are a no-op.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/whatsapp/webhook",
		strings.NewReader(`{"entry": [{"changes": [{"value": {}}]}]}`))
	rec := httptest.NewRecorder()
	h.Receive(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, conversation.handled)
	assert.Empty(t, conversation.unsupported)
}

func TestReceiveContinuesAfterHandlerError(t *testing.T) {
	conversation := &fakeConversationUsecase{err: assert.AnError}
	h := newWebhookHandler(conversation, "verify-me")

	payload := `{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [
						{"from": "5511999990000", "type": "text", "text": {"body": "oi"}},
						{"from": "5511888880000", "type": "text", "text": {"body": "oi"}}
					]
				}
			}]
		}]
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/whatsapp/webhook", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Receive(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, conversation.handled, 2, "one failing message must not stop the batch")
}
