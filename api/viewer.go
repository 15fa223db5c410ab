package api

import (
	"net/http"

	gcontext "github.com/edvault/edvault/context"
	"github.com/edvault/edvault/viewer"
)

// ViewerSettings returns the site's secure-viewer knobs so every client
// runs with the same cooldown and zoom bounds.
func (a *API) ViewerSettings(w http.ResponseWriter, r *http.Request) error {
	viewerConf := gcontext.GetConfig(r.Context()).Viewer
	return sendJSON(w, http.StatusOK, &viewer.Settings{
		CooldownSeconds: viewerConf.CooldownSeconds,
		MinScale:        viewerConf.MinScale,
		MaxScale:        viewerConf.MaxScale,
	})
}
