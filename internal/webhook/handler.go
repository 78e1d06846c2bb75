package webhook

import (
	"io"
	"net/http"

	userrepo "jsonshare/internal/user/repository"
	"jsonshare/pkg/apperr"
	"jsonshare/pkg/logger"

	svix "github.com/svix/svix-webhooks/go"
)

const maxPayloadBytes = 1 << 20

// WebhookHandler ingests signed identity provider events and reconciles
// local user rows. Verification fails closed: nothing is processed unless
// the signature checks out.
type WebhookHandler struct {
	Users    *userrepo.UserRepository
	verifier *svix.Webhook
}

func NewWebhookHandler(users *userrepo.UserRepository, signingSecret string) (*WebhookHandler, error) {
	wh, err := svix.NewWebhook(signingSecret)
	if err != nil {
		return nil, err
	}
	return &WebhookHandler{Users: users, verifier: wh}, nil
}

func (h *WebhookHandler) HandleIdentityEvent(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		apperr.WriteError(w, apperr.InvalidSignature("Could not read webhook payload"))
		return
	}

	if err := h.verifier.Verify(payload, r.Header); err != nil {
		logger.Sugar.Warnf("Webhook signature verification failed: %v", err)
		apperr.WriteError(w, apperr.InvalidSignature("Invalid webhook signature"))
		return
	}

	event, err := ParseEvent(payload)
	if err != nil {
		logger.Sugar.Warnf("Malformed webhook payload: %v", err)
		apperr.WriteError(w, apperr.Validation([]apperr.FieldError{{Field: "body", Message: "malformed event payload"}}))
		return
	}

	switch e := event.(type) {
	case UserCreated:
		err = h.Users.Upsert(r.Context(), e.UserID, e.Email)
		if err == nil {
			logger.Sugar.Infof("User created: %s", e.UserID)
		}
	case UserUpdated:
		err = h.Users.Upsert(r.Context(), e.UserID, e.Email)
		if err == nil {
			logger.Sugar.Infof("User updated: %s", e.UserID)
		}
	case UserDeleted:
		// Cascade removes the user's documents. Deleting an id we never saw
		// is fine; the provider and this service converge either way.
		_, err = h.Users.Delete(r.Context(), e.UserID)
		if err == nil {
			logger.Sugar.Infof("User deleted: %s", e.UserID)
		}
	case Unknown:
		logger.Sugar.Infof("Ignoring unhandled webhook event type %q", e.Type)
	}

	if err != nil {
		logger.Sugar.Errorf("Failed to process webhook event: %v", err)
		apperr.WriteError(w, apperr.FromStore(err))
		return
	}
	apperr.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
