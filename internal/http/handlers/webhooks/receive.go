package webhooks

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"docstore/internal/access"
	"docstore/internal/utils/httpjson"
)

// Receive handles a webhook delivery. The public route mounts it with
// authenticated=false and no identity middleware; the private route
// sits behind the middleware and passes authenticated=true.
func Receive(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, webhookID string, authenticated bool, wr WebhookReceiver) {
	op := pkg + "Receive"

	log = log.With(slog.String("op", op))

	siteID := r.URL.Query().Get("siteId")
	if siteID == "" {
		siteID = access.DefaultSiteID
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Warn("failed to read body", slog.String("error", err.Error()))
		httpjson.WriteJSONError(w, http.StatusBadRequest, "request body is required")
		return
	}

	docID, err := wr.Receive(ctx, siteID, webhookID, authenticated, r.Header.Get("Content-Type"), body)
	if err != nil {
		log.Warn("failed to accept delivery",
			slog.String("webhook_id", webhookID), slog.String("error", err.Error()))
		httpjson.WriteDomainError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"documentId": docID,
	})
}
