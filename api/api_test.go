package api

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"

	gcontext "github.com/edvault/edvault/context"
)

func TestHealthCheck(t *testing.T) {
	test := NewRouteTest(t)
	recorder := test.TestEndpoint(http.MethodGet, "/health", nil, "")

	payload := map[string]string{}
	extractPayload(t, http.StatusOK, recorder, &payload)
	assert.Equal(t, "EdVault", payload["name"])
	assert.Equal(t, "testing", payload["version"])
}

// The base context carries the long-lived collaborators, but swapping it in
// must not drop the values net/http installs per request.
func TestBaseContextKeepsServerValues(t *testing.T) {
	base := gcontext.WithRequestID(context.Background(), "from-base")
	server := &http.Server{}
	addr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9}

	var seenServer *http.Server
	var seenAddr net.Addr
	var seenRequestID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenServer, _ = r.Context().Value(http.ServerContextKey).(*http.Server)
		seenAddr, _ = r.Context().Value(http.LocalAddrContextKey).(net.Addr)
		seenRequestID = gcontext.GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "http://localhost/health", nil)
	ctx := context.WithValue(req.Context(), http.ServerContextKey, server)
	ctx = context.WithValue(ctx, http.LocalAddrContextKey, addr)

	chi.ServerBaseContext(base, inner).ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))

	assert.Equal(t, server, seenServer)
	assert.Equal(t, addr, seenAddr)
	assert.Equal(t, "from-base", seenRequestID)
}
