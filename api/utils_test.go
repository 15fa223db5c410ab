package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvault/edvault/claims"
	"github.com/edvault/edvault/conf"
	gcontext "github.com/edvault/edvault/context"
	"github.com/edvault/edvault/models"
	"github.com/edvault/edvault/objectstore"
)

const testJWTSecret = "testsecret"

var testDocumentBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

// TestData is the fixture set shared by the route tests.
type TestData struct {
	user  models.User
	admin models.User

	contentNote        models.Content
	contentExternal    models.Content
	contentUnpublished models.Content
	contentMissingFile models.Content
	contentLostFile    models.Content

	purchaseNote     models.Purchase
	purchasePending  models.Purchase
	purchaseExternal models.Purchase

	userToken  string
	adminToken string
}

// RouteTest drives requests through the full API handler against a
// temporary sqlite database and an in-memory object store.
type RouteTest struct {
	T      *testing.T
	DB     *gorm.DB
	Config *conf.Configuration
	Store  *objectstore.MemoryProvider
	Data   TestData
	API    *API
}

func NewRouteTest(t *testing.T) *RouteTest {
	f, err := os.CreateTemp("", "edvault-test-db")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	t.Cleanup(func() { os.Remove(f.Name()) })

	globalConfig := &conf.GlobalConfiguration{}
	globalConfig.DB.Driver = "sqlite3"
	globalConfig.DB.URL = f.Name()
	globalConfig.DB.Automigrate = true

	db, err := models.Connect(globalConfig)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	config := &conf.Configuration{
		SiteURL: "https://study.example.com",
	}
	config.JWT.Secret = testJWTSecret
	config.Storage.Bucket = "edvault-docs"
	config.ApplyDefaults()

	store := objectstore.NewMemoryProvider()
	store.Add("notes/thermodynamics-101.pdf", testDocumentBytes)

	test := &RouteTest{
		T:      t,
		DB:     db,
		Config: config,
		Store:  store,
	}
	test.loadTestData()

	ctx := gcontext.WithConfig(context.Background(), config)
	ctx = gcontext.WithObjectStore(ctx, store)
	test.API = NewAPIWithVersion(ctx, config, db, "testing")

	return test
}

func (test *RouteTest) loadTestData() {
	d := &test.Data

	d.user = models.User{ID: "student-1", Email: "asha@students.example.com"}
	d.admin = models.User{ID: "admin-1", Email: "ops@example.com"}

	d.contentNote = models.Content{
		ID:        "thermo-101",
		Title:     "Thermodynamics Notes",
		Type:      models.ContentTypeNote,
		Path:      "/contents/thermo-101",
		FileRef:   "/edvault-docs/notes/thermodynamics-101.pdf",
		Published: true,
	}
	d.contentExternal = models.Content{
		ID:        "cad-capstone",
		Title:     "CAD Capstone Report",
		Type:      models.ContentTypeCapstone,
		FileRef:   "https://drive.google.com/file/d/abc123/view",
		Published: true,
	}
	d.contentUnpublished = models.Content{
		ID:      "draft-micro",
		Title:   "Draft Microproject",
		Type:    models.ContentTypeMicroproject,
		FileRef: "notes/draft.pdf",
	}
	d.contentMissingFile = models.Content{
		ID:        "no-file",
		Title:     "Descriptor Without File",
		Type:      models.ContentTypeNote,
		Published: true,
	}
	d.contentLostFile = models.Content{
		ID:        "lost-file",
		Title:     "File Gone From Bucket",
		Type:      models.ContentTypeNote,
		FileRef:   "notes/not-in-bucket.pdf",
		Published: true,
	}

	d.purchaseNote = models.Purchase{
		ID:        "purchase-1",
		UserID:    d.user.ID,
		ContentID: d.contentNote.ID,
		Status:    models.PurchaseCompleted,
	}
	d.purchasePending = models.Purchase{
		ID:        "purchase-2",
		UserID:    d.user.ID,
		ContentID: d.contentUnpublished.ID,
		Status:    models.PurchasePending,
	}
	d.purchaseExternal = models.Purchase{
		ID:        "purchase-3",
		UserID:    d.user.ID,
		ContentID: d.contentExternal.ID,
		Status:    models.PurchaseCompleted,
	}

	require.NoError(test.T, test.DB.Create(&d.user).Error)
	require.NoError(test.T, test.DB.Create(&d.admin).Error)
	for _, c := range []*models.Content{
		&d.contentNote, &d.contentExternal, &d.contentUnpublished,
		&d.contentMissingFile, &d.contentLostFile,
	} {
		require.NoError(test.T, test.DB.Create(c).Error)
	}
	for _, p := range []*models.Purchase{&d.purchaseNote, &d.purchasePending, &d.purchaseExternal} {
		require.NoError(test.T, test.DB.Create(p).Error)
	}

	d.userToken = test.signToken(d.user.ID, d.user.Email, nil)
	d.adminToken = test.signToken(d.admin.ID, d.admin.Email, []string{"admin"})
}

func (test *RouteTest) signToken(id, email string, roles []string) string {
	tokenClaims := &claims.JWTClaims{
		ID:    id,
		Email: email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}
	if roles != nil {
		roleValues := []interface{}{}
		for _, role := range roles {
			roleValues = append(roleValues, role)
		}
		tokenClaims.AppMetaData = map[string]interface{}{"roles": roleValues}
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims).SignedString([]byte(testJWTSecret))
	require.NoError(test.T, err)
	return token
}

// TestEndpoint runs one request through the API handler.
func (test *RouteTest) TestEndpoint(method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "http://localhost"+path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	test.API.handler.ServeHTTP(recorder, req)
	return recorder
}

// TestEndpointPreflight runs a CORS preflight request for path.
func (test *RouteTest) TestEndpointPreflight(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("OPTIONS", "http://localhost"+path, nil)
	req.Header.Set("Origin", "https://study.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	recorder := httptest.NewRecorder()
	test.API.handler.ServeHTTP(recorder, req)
	return recorder
}

// ------------------------------------------------------------------------------------------------
// validators and extractors
// ------------------------------------------------------------------------------------------------

func validateError(t *testing.T, code int, recorder *httptest.ResponseRecorder) map[string]interface{} {
	require.Equal(t, code, recorder.Code, "unexpected status: %s", recorder.Body.String())

	errRsp := make(map[string]interface{})
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&errRsp))

	errcode, exists := errRsp["code"]
	assert.True(t, exists)
	assert.EqualValues(t, code, errcode)

	_, exists = errRsp["error"]
	assert.True(t, exists)

	return errRsp
}

func extractPayload(t *testing.T, code int, recorder *httptest.ResponseRecorder, what interface{}) {
	require.Equal(t, code, recorder.Code, "unexpected status: %s", recorder.Body.String())
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(what))
}

func (test *RouteTest) eventCount(eventType models.EventType) int {
	var count int
	require.NoError(test.T, test.DB.Model(&models.Event{}).Where("type = ?", string(eventType)).Count(&count).Error)
	return count
}
