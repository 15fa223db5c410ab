package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edvault/edvault/models"
)

func TestContentList(t *testing.T) {
	t.Run("PublishedOnly", func(t *testing.T) {
		test := NewRouteTest(t)
		recorder := test.TestEndpoint(http.MethodGet, "/contents", nil, "")

		contents := []models.Content{}
		extractPayload(t, http.StatusOK, recorder, &contents)
		assert.Len(t, contents, 4)
		for _, c := range contents {
			assert.True(t, c.Published)
			assert.NotEqual(t, test.Data.contentUnpublished.ID, c.ID)
		}
	})

	t.Run("FilterByType", func(t *testing.T) {
		test := NewRouteTest(t)
		recorder := test.TestEndpoint(http.MethodGet, "/contents?type=capstone", nil, "")

		contents := []models.Content{}
		extractPayload(t, http.StatusOK, recorder, &contents)
		assert.Len(t, contents, 1)
		assert.Equal(t, test.Data.contentExternal.ID, contents[0].ID)
	})
}

func TestContentView(t *testing.T) {
	t.Run("Published", func(t *testing.T) {
		test := NewRouteTest(t)
		recorder := test.TestEndpoint(http.MethodGet, "/contents/"+test.Data.contentNote.ID, nil, "")

		content := &models.Content{}
		extractPayload(t, http.StatusOK, recorder, content)
		assert.Equal(t, test.Data.contentNote.Title, content.Title)
	})

	t.Run("UnpublishedHidden", func(t *testing.T) {
		test := NewRouteTest(t)
		recorder := test.TestEndpoint(http.MethodGet, "/contents/"+test.Data.contentUnpublished.ID, nil, test.Data.userToken)
		validateError(t, http.StatusNotFound, recorder)
	})

	t.Run("UnpublishedVisibleToAdmin", func(t *testing.T) {
		test := NewRouteTest(t)
		recorder := test.TestEndpoint(http.MethodGet, "/contents/"+test.Data.contentUnpublished.ID, nil, test.Data.adminToken)

		content := &models.Content{}
		extractPayload(t, http.StatusOK, recorder, content)
		assert.Equal(t, test.Data.contentUnpublished.ID, content.ID)
	})

	t.Run("Missing", func(t *testing.T) {
		test := NewRouteTest(t)
		recorder := test.TestEndpoint(http.MethodGet, "/contents/nope", nil, "")
		validateError(t, http.StatusNotFound, recorder)
	})
}

func startTestSiteWithProduct(productJSON string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/contents/thermo-101":
			fmt.Fprintf(w, `<html><body>
				<script class="edvault-product" type="application/json">%s</script>
			</body></html>`, productJSON)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestContentRefresh(t *testing.T) {
	t.Run("AdminRequired", func(t *testing.T) {
		test := NewRouteTest(t)
		recorder := test.TestEndpoint(http.MethodPost, "/contents/"+test.Data.contentNote.ID+"/refresh", nil, test.Data.userToken)
		validateError(t, http.StatusUnauthorized, recorder)
	})

	t.Run("UpdatesFromSite", func(t *testing.T) {
		test := NewRouteTest(t)
		site := startTestSiteWithProduct(`{
			"id": "thermo-101",
			"title": "Thermodynamics Notes (2nd Edition)",
			"type": "note",
			"file_ref": "notes/thermodynamics-102.pdf",
			"published": true
		}`)
		defer site.Close()
		test.Config.SiteURL = site.URL

		recorder := test.TestEndpoint(http.MethodPost, "/contents/"+test.Data.contentNote.ID+"/refresh", nil, test.Data.adminToken)

		content := &models.Content{}
		extractPayload(t, http.StatusOK, recorder, content)
		assert.Equal(t, "Thermodynamics Notes (2nd Edition)", content.Title)
		assert.Equal(t, "notes/thermodynamics-102.pdf", content.FileRef)

		stored, err := models.GetContent(test.DB, test.Data.contentNote.ID)
		assert.NoError(t, err)
		assert.Equal(t, "notes/thermodynamics-102.pdf", stored.FileRef)
		assert.Equal(t, 1, test.eventCount(models.EventRefreshed))
	})

	t.Run("NoSitePath", func(t *testing.T) {
		test := NewRouteTest(t)
		recorder := test.TestEndpoint(http.MethodPost, "/contents/"+test.Data.contentExternal.ID+"/refresh", nil, test.Data.adminToken)
		validateError(t, http.StatusUnprocessableEntity, recorder)
	})
}
