package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	gcontext "github.com/edvault/edvault/context"
	"github.com/edvault/edvault/models"
	"github.com/edvault/edvault/sitedata"
)

func (a *API) withContentID(w http.ResponseWriter, r *http.Request) (context.Context, error) {
	contentID := chi.URLParam(r, "content_id")
	logEntrySetField(r, "content_id", contentID)
	return gcontext.WithContentID(r.Context(), contentID), nil
}

// ContentList returns the published catalog, paginated.
func (a *API) ContentList(w http.ResponseWriter, r *http.Request) error {
	log := getLogEntry(r)

	query := a.db.Where("published = ?", true)
	if contentType := r.URL.Query().Get("type"); contentType != "" {
		query = query.Where("type = ?", contentType)
	}

	offset, limit, err := paginate(w, r, query.Model(&models.Content{}))
	if err != nil {
		return badRequestError("Bad Pagination Parameters: %v", err)
	}

	var contents []models.Content
	if result := query.Offset(offset).Limit(limit).Find(&contents); result.Error != nil {
		return internalServerError("Error during database query").WithInternalError(result.Error)
	}

	log.WithField("content_count", len(contents)).Debugf("Successfully retrieved %d contents", len(contents))
	return sendJSON(w, http.StatusOK, contents)
}

// ContentView returns a single content descriptor. Unpublished content is
// only visible to admins.
func (a *API) ContentView(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	content, err := models.GetContent(a.db, gcontext.GetContentID(ctx))
	if err != nil {
		if models.IsNotFoundError(err) {
			return notFoundError("Content not found")
		}
		return internalServerError("Error during database query").WithInternalError(err)
	}

	if !content.Published && !gcontext.IsAdmin(ctx) {
		return notFoundError("Content not found")
	}

	return sendJSON(w, http.StatusOK, content)
}

// ContentRefresh re-reads the content's metadata from the storefront page
// and updates the descriptor. Admin only.
func (a *API) ContentRefresh(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	log := getLogEntry(r)
	config := gcontext.GetConfig(ctx)
	adminClaims := gcontext.GetClaims(ctx)

	content, err := models.GetContent(a.db, gcontext.GetContentID(ctx))
	if err != nil {
		if models.IsNotFoundError(err) {
			return notFoundError("Content not found")
		}
		return internalServerError("Error during database query").WithInternalError(err)
	}
	if content.Path == "" {
		return unprocessableEntityError("Content has no site path to refresh from")
	}

	metas, err := sitedata.Fetch(a.httpClient, config.SiteURL, content.Path)
	if err != nil {
		return internalServerError("Error fetching site metadata").WithInternalError(err)
	}

	meta := sitedata.Match(metas, content.ID)
	if meta == nil {
		return notFoundError("No product metadata for content '%v' at '%v'", content.ID, content.Path)
	}

	changes := []string{}
	if meta.Title != "" && meta.Title != content.Title {
		content.Title = meta.Title
		changes = append(changes, "title")
	}
	if meta.Type != "" && meta.Type != content.Type {
		content.Type = meta.Type
		changes = append(changes, "type")
	}
	if meta.FileRef != "" && meta.FileRef != content.FileRef {
		content.FileRef = meta.FileRef
		changes = append(changes, "file_ref")
	}
	if meta.Published != content.Published {
		content.Published = meta.Published
		changes = append(changes, "published")
	}

	if len(changes) > 0 {
		if result := a.db.Save(content); result.Error != nil {
			return internalServerError("Error saving content").WithInternalError(result.Error)
		}
		models.LogEvent(a.db, r.RemoteAddr, adminClaims.ID, content.ID, models.EventRefreshed, changes)
	}

	log.WithField("changes", changes).Info("Refreshed content metadata")
	return sendJSON(w, http.StatusOK, content)
}
