package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	gcontext "github.com/edvault/edvault/context"
	"github.com/edvault/edvault/models"
	"github.com/edvault/edvault/objectstore"
)

type serveDocumentParams struct {
	ContentID string `json:"content_id"`
}

// DocumentServe is the access gate for purchased documents: it verifies a
// completed purchase for the caller, resolves the content's backing file
// and streams the bytes inline. It is stateless and idempotent; repeated
// calls re-verify and re-stream. A durable or public URL to the asset is
// never exposed.
func (a *API) DocumentServe(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	log := getLogEntry(r)

	// identity comes first so unauthenticated callers learn nothing about
	// purchases or content
	claims := gcontext.GetClaims(ctx)
	if claims == nil {
		return unauthorizedError("Credentials required to view documents")
	}

	params := &serveDocumentParams{}
	if err := json.NewDecoder(r.Body).Decode(params); err != nil {
		return badRequestError("Could not read document params: %v", err)
	}
	if params.ContentID == "" {
		return badRequestError("Missing content id")
	}
	log = logEntrySetFields(r, logrus.Fields{
		"content_id": params.ContentID,
		"user_id":    claims.ID,
	})

	if _, err := models.GetCompletedPurchase(a.db, claims.ID, params.ContentID); err != nil {
		if models.IsNotFoundError(err) {
			return forbiddenError("You have not purchased this content")
		}
		return internalServerError("Error during database query").WithInternalError(err)
	}

	content, err := models.GetContent(a.db, params.ContentID)
	if err != nil {
		if models.IsNotFoundError(err) {
			return notFoundError("Content not found")
		}
		return internalServerError("Error during database query").WithInternalError(err)
	}
	if content.FileRef == "" {
		return notFoundError("Content has no file attached")
	}

	config := gcontext.GetConfig(ctx)
	if objectstore.IsExternalURL(content.FileRef, config.Storage.ExternalHosts) {
		// no way to enforce purchase gating on a third party's
		// infrastructure; hand the URL back for an unprotected embed
		return unprocessableEntityError("Content is hosted externally and cannot be secured").
			WithExternalURL(content.FileRef)
	}

	store := gcontext.GetObjectStore(ctx)
	key := objectstore.NormalizeKey(config.Storage.Bucket, content.FileRef)
	body, size, err := store.Download(ctx, key)
	if err != nil {
		return internalServerError("Error retrieving document").WithInternalError(err)
	}
	defer body.Close()

	models.LogEvent(a.db, r.RemoteAddr, claims.ID, content.ID, models.EventViewed, nil)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("Cache-Control", "private, max-age=60")
	if size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		log.WithError(err).Warn("Document stream interrupted")
	}
	return nil
}
