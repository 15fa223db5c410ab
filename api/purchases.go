package api

import (
	"net/http"

	gcontext "github.com/edvault/edvault/context"
	"github.com/edvault/edvault/models"
)

// PurchaseList returns the caller's completed purchases. Admins may list
// another user's purchases with ?user_id=.
func (a *API) PurchaseList(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	log := getLogEntry(r)
	claims := gcontext.GetClaims(ctx)

	userID := claims.ID
	if requested := r.URL.Query().Get("user_id"); requested != "" && requested != userID {
		if !gcontext.IsAdmin(ctx) {
			return unauthorizedError("Can't list another user's purchases unless you're an admin")
		}
		userID = requested
	}

	query := a.db.
		Where("user_id = ? and status = ?", userID, models.PurchaseCompleted)

	offset, limit, err := paginate(w, r, query.Model(&models.Purchase{}))
	if err != nil {
		return badRequestError("Bad Pagination Parameters: %v", err)
	}

	var purchases []models.Purchase
	if result := query.Offset(offset).Limit(limit).Find(&purchases); result.Error != nil {
		return internalServerError("Error during database query").WithInternalError(result.Error)
	}

	log.WithField("purchase_count", len(purchases)).Debugf("Successfully retrieved %d purchases", len(purchases))
	return sendJSON(w, http.StatusOK, purchases)
}
