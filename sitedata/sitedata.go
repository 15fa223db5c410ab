// Package sitedata reads content metadata straight off the storefront
// pages. Each content page embeds one or more JSON script tags with the
// class "edvault-product"; refreshing a descriptor re-scrapes the page so
// the catalog never drifts from what the site sells.
package sitedata

import (
	"encoding/json"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// ContentMeta is the product metadata embedded in a storefront page.
type ContentMeta struct {
	ID        string `mapstructure:"id"`
	Title     string `mapstructure:"title"`
	Type      string `mapstructure:"type"`
	FileRef   string `mapstructure:"file_ref"`
	Published bool   `mapstructure:"published"`
}

// Fetch downloads the page at siteURL+path and extracts every embedded
// product metadata block.
func Fetch(client *http.Client, siteURL, path string) ([]*ContentMeta, error) {
	resp, err := client.Get(siteURL + path)
	if err != nil {
		return nil, errors.Wrap(err, "fetching content page")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("Unexpected status %d fetching content page %s", resp.StatusCode, path)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "parsing content page")
	}

	metaTags := doc.Find(".edvault-product")
	if metaTags.Length() == 0 {
		return nil, errors.Errorf("No script tag with class edvault-product found at '%v'", path)
	}

	metas := []*ContentMeta{}
	var parseErr error
	metaTags.EachWithBreak(func(_ int, tag *goquery.Selection) bool {
		raw := map[string]interface{}{}
		if parseErr = json.Unmarshal([]byte(tag.Text()), &raw); parseErr != nil {
			return false
		}
		meta := &ContentMeta{}
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           meta,
			WeaklyTypedInput: true,
		})
		if err != nil {
			parseErr = err
			return false
		}
		if parseErr = decoder.Decode(raw); parseErr != nil {
			return false
		}
		metas = append(metas, meta)
		return true
	})
	if parseErr != nil {
		return nil, errors.Wrap(parseErr, "parsing product metadata")
	}

	return metas, nil
}

// Match returns the metadata block for contentID, or the only block when
// the page embeds a single one without an id.
func Match(metas []*ContentMeta, contentID string) *ContentMeta {
	if len(metas) == 1 && metas[0].ID == "" {
		return metas[0]
	}
	for _, meta := range metas {
		if meta.ID == contentID {
			return meta
		}
	}
	return nil
}
