package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// Content types sold by the storefront.
const (
	ContentTypeNote         = "note"
	ContentTypeMicroproject = "microproject"
	ContentTypeCapstone     = "capstone"
)

// Content is the descriptor for a purchasable study-material asset. FileRef
// is either a path into the private bucket or an external hosting URL; the
// document gate refuses to proxy the latter.
type Content struct {
	ID string `json:"id"`

	Title string `json:"title"`
	Type  string `json:"type"`

	// Path is the content's page path on the storefront site, used to
	// refresh metadata from the page's embedded product JSON.
	Path string `json:"path"`

	FileRef   string `json:"file_ref"`
	Published bool   `json:"published"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-" sql:"index"`
}

// TableName returns the database table name for the Content model.
func (Content) TableName() string {
	return tableName("contents")
}

// GetContent looks a content item up by ID.
func GetContent(db *gorm.DB, id string) (*Content, error) {
	content := &Content{}
	if result := db.Where("id = ?", id).First(content); result.Error != nil {
		if result.RecordNotFound() {
			return nil, ModelNotFoundError{"content"}
		}
		return nil, result.Error
	}
	return content, nil
}
