package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// Purchase lifecycle states. The document gate only honors completed
// purchases.
const (
	PurchasePending   = "pending"
	PurchaseCompleted = "completed"
	PurchaseRefunded  = "refunded"
)

// Purchase represents a completed (or in-flight) entitlement to one content
// item. Rows are written by the external payment flow; this service only
// reads them.
type Purchase struct {
	ID string `json:"id"`

	UserID    string `json:"user_id"`
	ContentID string `json:"content_id"`

	Status             string `json:"status"`
	DownloadsRemaining uint64 `json:"downloads_remaining"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-" sql:"index"`
}

// TableName returns the database table name for the Purchase model.
func (Purchase) TableName() string {
	return tableName("purchases")
}

// GetCompletedPurchase returns the completed purchase for (userID,
// contentID), or ModelNotFoundError when the user holds no completed
// entitlement for that content.
func GetCompletedPurchase(db *gorm.DB, userID, contentID string) (*Purchase, error) {
	purchase := &Purchase{}
	result := db.
		Where("user_id = ? and content_id = ? and status = ?", userID, contentID, PurchaseCompleted).
		First(purchase)
	if result.Error != nil {
		if result.RecordNotFound() {
			return nil, ModelNotFoundError{"purchase"}
		}
		return nil, result.Error
	}
	return purchase, nil
}
